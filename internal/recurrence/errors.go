package recurrence

import (
	"fmt"
)

type ErrInvalidConfig struct {
	error
}

func NewErrInvalidConfig(reason error) *ErrInvalidConfig {
	return &ErrInvalidConfig{fmt.Errorf("invalid recurring config: %v", reason)}
}

func NewErrMissingConfig() *ErrInvalidConfig {
	return &ErrInvalidConfig{fmt.Errorf("recurring milestone carries no config")}
}
