package cattle

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// CreateInput holds the parameters for registering an animal.
// Dates arrive as YYYY-MM-DD strings so that format errors surface in the
// same ValidationError as every other field problem.
type CreateInput struct {
	TagNumber      string
	Name           *string
	Breed          string
	DateOfBirth    string
	Gender         domain.Gender
	CurrentWeight  *float64
	AssignedWorker *uuid.UUID
	Status         domain.CattleStatus
	Notes          *string
}

// Validate checks all fields and collects all errors. The caller supplies
// the current time so the date-of-birth rule is evaluated at one instant.
func (i CreateInput) Validate(now time.Time) error {
	errs := validateFields(i.TagNumber, i.Breed, i.DateOfBirth, i.Gender, i.CurrentWeight, i.Status, now)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds the parameters for editing an animal. The denormalized
// health and breeding fields are not accepted here; they belong to the
// health and breeding mutation transactions.
type UpdateInput struct {
	ID             uuid.UUID
	TagNumber      string
	Name           *string
	Breed          string
	DateOfBirth    string
	Gender         domain.Gender
	CurrentWeight  *float64
	AssignedWorker *uuid.UUID
	Status         domain.CattleStatus
	Notes          *string
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate(now time.Time) error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	errs = append(errs, validateFields(i.TagNumber, i.Breed, i.DateOfBirth, i.Gender, i.CurrentWeight, i.Status, now)...)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateFields(tagNumber, breed, dateOfBirth string, gender domain.Gender, weight *float64, status domain.CattleStatus, now time.Time) []domain.FieldError {
	var errs []domain.FieldError

	if strings.TrimSpace(tagNumber) == "" {
		errs = append(errs, domain.FieldError{Field: "tag_number", Message: "required"})
	}
	if strings.TrimSpace(breed) == "" {
		errs = append(errs, domain.FieldError{Field: "breed", Message: "required"})
	}

	if dateOfBirth == "" {
		errs = append(errs, domain.FieldError{Field: "date_of_birth", Message: "required"})
	} else if dob, ok := domain.ParseDate(dateOfBirth); !ok {
		errs = append(errs, domain.FieldError{Field: "date_of_birth", Message: "must be a valid date (YYYY-MM-DD)"})
	} else if dob.After(now) {
		errs = append(errs, domain.FieldError{Field: "date_of_birth", Message: "must not be in the future"})
	}

	if !gender.IsValid() {
		errs = append(errs, domain.FieldError{Field: "gender", Message: "must be male or female"})
	}
	if weight != nil && *weight < 0 {
		errs = append(errs, domain.FieldError{Field: "current_weight", Message: "must be non-negative"})
	}
	if status != "" && !status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be one of active, dead, sold, transferred"})
	}

	return errs
}
