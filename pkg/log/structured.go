package log

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StructuredLogger emits operation-scoped structured logs through the global
// zap logger. An operation is built once with its identifying fields; the
// resulting tracer then logs uniform step, success and error events.
type StructuredLogger struct {
	sugar *zap.SugaredLogger
}

// NewDebugLogger returns a named StructuredLogger whose step events log at
// debug level.
func NewDebugLogger(name string) *StructuredLogger {
	return &StructuredLogger{sugar: zap.S().Named(name)}
}

// Operation starts building the field set shared by every event of one
// logical operation.
func (l *StructuredLogger) Operation(name string) *OperationBuilder {
	return &OperationBuilder{
		sugar:  l.sugar,
		fields: []any{"operation", name},
	}
}

type OperationBuilder struct {
	sugar  *zap.SugaredLogger
	fields []any
}

func (b *OperationBuilder) WithUUID(key string, id uuid.UUID) *OperationBuilder {
	b.fields = append(b.fields, key, id.String())
	return b
}

func (b *OperationBuilder) WithString(key, value string) *OperationBuilder {
	b.fields = append(b.fields, key, value)
	return b
}

func (b *OperationBuilder) WithInt(key string, value int) *OperationBuilder {
	b.fields = append(b.fields, key, value)
	return b
}

func (b *OperationBuilder) WithBool(key string, value bool) *OperationBuilder {
	b.fields = append(b.fields, key, value)
	return b
}

// Build finishes the operation context and returns the tracer used for the
// actual logging.
func (b *OperationBuilder) Build() *OperationTracer {
	return &OperationTracer{sugar: b.sugar.With(b.fields...)}
}

// OperationTracer logs the events of one operation with its shared fields
// attached.
type OperationTracer struct {
	sugar *zap.SugaredLogger
}

// Step records an intermediate milestone of the operation at debug level.
func (t *OperationTracer) Step(name string) *EventBuilder {
	return &EventBuilder{sugar: t.sugar, level: zapcore.DebugLevel, message: name}
}

// Warn records a non-fatal problem at warn level.
func (t *OperationTracer) Warn(name string) *EventBuilder {
	return &EventBuilder{sugar: t.sugar, level: zapcore.WarnLevel, message: name}
}

// Success records the operation's completion at info level.
func (t *OperationTracer) Success() *EventBuilder {
	return &EventBuilder{sugar: t.sugar, level: zapcore.InfoLevel, message: "success"}
}

// Error records a failure at error level.
func (t *OperationTracer) Error(err error) *EventBuilder {
	return &EventBuilder{
		sugar:   t.sugar,
		level:   zapcore.ErrorLevel,
		message: "failed",
		fields:  []any{"error", err.Error()},
	}
}

// EventBuilder accumulates the fields of a single event; Log emits it.
type EventBuilder struct {
	sugar   *zap.SugaredLogger
	level   zapcore.Level
	message string
	fields  []any
}

func (e *EventBuilder) WithUUID(key string, id uuid.UUID) *EventBuilder {
	e.fields = append(e.fields, key, id.String())
	return e
}

func (e *EventBuilder) WithString(key, value string) *EventBuilder {
	e.fields = append(e.fields, key, value)
	return e
}

func (e *EventBuilder) WithInt(key string, value int) *EventBuilder {
	e.fields = append(e.fields, key, value)
	return e
}

func (e *EventBuilder) WithFloat(key string, value float64) *EventBuilder {
	e.fields = append(e.fields, key, value)
	return e
}

func (e *EventBuilder) Log() {
	switch e.level {
	case zapcore.DebugLevel:
		e.sugar.Debugw(e.message, e.fields...)
	case zapcore.WarnLevel:
		e.sugar.Warnw(e.message, e.fields...)
	case zapcore.ErrorLevel:
		e.sugar.Errorw(e.message, e.fields...)
	default:
		e.sugar.Infow(e.message, e.fields...)
	}
}
