package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/go-playground/validator/v10"
)

// ErrAnalysisFailed is the only message surfaced for internal faults. The
// cause is logged, never returned.
var ErrAnalysisFailed = errors.New("analysis failed")

// ValidationError rejects a request before anything is computed.
type ValidationError struct {
	Fields []FieldError
}

type FieldError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	parts := slice.Map(e.Fields, func(_ int, f FieldError) string {
		return fmt.Sprintf("%s (%s)", f.Field, f.Rule)
	})
	return "invalid input: " + strings.Join(parts, ", ")
}

// newValidationError converts validator output. Other errors pass through.
func newValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return &ValidationError{Fields: fields}
}
