package types

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestCandidateFieldsValidate(t *testing.T) {
	valid := CandidateFields{FullName: "Jane Doe", Email: "jane@example.com", College: "State University"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid fields, got %v", err)
	}

	years := -1.0
	invalid := CandidateFields{Email: "not-an-email", ExperienceYears: &years}
	err := invalid.Validate()

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}

	got := map[string]string{}
	for _, fe := range verrs {
		got[fe.Field()] = fe.Tag()
	}
	want := map[string]string{
		"full_name":        "required",
		"email":            "email",
		"college":          "required",
		"experience_years": "gte",
	}
	for field, tag := range want {
		if got[field] != tag {
			t.Fatalf("field %s: expected tag %q, got %q (all: %v)", field, tag, got[field], got)
		}
	}
}

func TestHumanEvaluationValidate(t *testing.T) {
	if err := (&HumanEvaluation{Technical: 100}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (&HumanEvaluation{Academic: 100.5}).Validate(); err == nil {
		t.Fatal("expected out of range academic score to fail")
	}
}
