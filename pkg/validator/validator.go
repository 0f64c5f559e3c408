package validator

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/johnquangdev/meeting-minutes/pkg/ai"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance with the minutes-specific tags
// registered
func New() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("minutes_format", validateFormat)
	_ = v.RegisterValidation("model_preset", validateModel)
	_ = v.RegisterValidation("iso_date", validateISODate)
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// Var validates a single value against a tag expression
func (cv *CustomValidator) Var(field interface{}, tag string) error {
	return cv.v.Var(field, tag)
}

// validateFormat only rejects blank identifiers; unknown formats are
// dropped by the exporter rather than refused here
func validateFormat(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateModel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := ai.ParseModel(value)
	return err == nil
}

func validateISODate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
