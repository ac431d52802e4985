package service

import (
	"errors"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/limbo/habits/internal/error_values"
	"github.com/limbo/habits/pkg/entity"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("habit_frequency", func(fl validator.FieldLevel) bool {
			return entity.FrequencyType(fl.Field().String()).Valid()
		})
		validate.RegisterValidation("not_blank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
			value := fl.Field().Float()
			return !math.IsNaN(value) && !math.IsInf(value, 0)
		})
	})
}

// ruleErrors take precedence over fieldErrors for a specific field and rule
var ruleErrors = map[string]error{
	"Name.max": errorvalues.ErrNameTooLong,
}

// fieldErrors maps struct fields to the sentinel reported when they fail validation
var fieldErrors = map[string]error{
	"Name":          errorvalues.ErrEmptyName,
	"FrequencyType": errorvalues.ErrInvalidFrequency,
	"TargetValue":   errorvalues.ErrInvalidTarget,
	"Value":         errorvalues.ErrInvalidValue,
}

// validateRequest checks req and joins a sentinel per failed field
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errors.New("validation unexpected error: " + err.Error())
	}
	var joined error
	for _, fieldErr := range validationErrors {
		sentinel, ok := ruleErrors[fieldErr.StructField()+"."+fieldErr.Tag()]
		if !ok {
			sentinel, ok = fieldErrors[fieldErr.StructField()]
		}
		if !ok {
			sentinel = fieldErr
		}
		joined = errors.Join(joined, sentinel)
	}
	return joined
}
