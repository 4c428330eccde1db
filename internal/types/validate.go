package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the required candidate fields.
func (f *CandidateFields) Validate() error {
	return validate.Struct(f)
}

// Validate checks that every evaluation score lies in [0, 100].
func (e *HumanEvaluation) Validate() error {
	return validate.Struct(e)
}
