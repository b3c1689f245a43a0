package domain

import (
	"errors"
	"testing"
)

func TestValidationError_CollectsAll(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "tag_number", Message: "required"},
		{Field: "breed", Message: "required"},
		{Field: "gender", Message: "invalid value"},
	})

	if len(err.Errors) != 3 {
		t.Fatalf("expected 3 field errors, got %d", len(err.Errors))
	}
	want := "validation: tag_number: required; breed: required; gender: invalid value"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestValidationError_UnwrapsToSentinel(t *testing.T) {
	t.Parallel()

	err := NewValidationError("email", "invalid")
	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationError must unwrap to ErrValidation")
	}
}

func TestValidationError_AsTarget(t *testing.T) {
	t.Parallel()

	var wrapped error = NewValidationError("salary", "must not be negative")

	var vErr *ValidationError
	if !errors.As(wrapped, &vErr) {
		t.Fatal("errors.As should extract *ValidationError")
	}
	if vErr.Errors[0].Field != "salary" {
		t.Errorf("field = %q, want salary", vErr.Errors[0].Field)
	}
}
