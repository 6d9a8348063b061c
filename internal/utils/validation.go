package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var aadhaarPattern = regexp.MustCompile(`^[0-9]{12}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("aadhaar", func(fl validator.FieldLevel) bool {
		return aadhaarPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidateAadhaar reports whether s is exactly 12 ASCII decimal digits.
func ValidateAadhaar(s string) bool {
	return validate.Var(s, "aadhaar") == nil
}

// ValidateStruct runs the struct's validate tags, including "aadhaar".
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
