package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/johnquangdev/meeting-facilitator/errors"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()
	return &CustomValidator{v: v}
}

// Validate performs struct validation, mapping failures to the
// application error type so handlers return a 400 instead of a 500
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.v.Struct(i); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	return nil
}
