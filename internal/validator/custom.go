package validator

import (
	"time"

	"github.com/go-playground/validator/v10"
)

func weekdayValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(time.Weekday)
	if !ok {
		return false
	}

	return val >= time.Sunday && val <= time.Saturday
}

// weekOfMonthValidator accepts 1 through 5 for the Nth weekday of a month and
// -1 for the last one. Zero is meaningless and rejected.
func weekOfMonthValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(int)
	if !ok {
		return false
	}

	return val == -1 || (val >= 1 && val <= 5)
}
