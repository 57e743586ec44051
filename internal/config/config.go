package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

// Config carries the engine tunables. Every knob has a safe default so the
// zero-configuration path needs no environment at all.
type Config struct {
	Recurrence recurrenceConfig
	// HoursTolerance is the float tolerance used when comparing hour sums,
	// e.g. for budget conservation checks.
	HoursTolerance float64 `envconfig:"TIMELINE_PLANNER_HOURS_TOLERANCE" default:"1e-6"`
	LogLevel       string  `envconfig:"TIMELINE_PLANNER_LOG_LEVEL" default:"info"`
}

type recurrenceConfig struct {
	// HorizonDays bounds segmentation and recurring-milestone expansion for
	// continuous projects, counted from the project start date. The horizon
	// is anchored to project inputs, never to the wall clock or the query
	// range, so every query derives identical values for the same date.
	HorizonDays int `envconfig:"TIMELINE_PLANNER_RECURRENCE_HORIZON_DAYS" default:"365"`
	// OccurrenceCap is the absolute per-template occurrence limit.
	OccurrenceCap int `envconfig:"TIMELINE_PLANNER_RECURRENCE_OCCURRENCE_CAP" default:"100"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns a Config populated with defaults only, ignoring the
// environment. Tests and embedded callers use this path.
func NewDefault() *Config {
	return &Config{
		Recurrence: recurrenceConfig{
			HorizonDays:   365,
			OccurrenceCap: 100,
		},
		HoursTolerance: 1e-6,
		LogLevel:       "info",
	}
}
