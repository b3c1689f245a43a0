package health

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// CreateInput holds the parameters for recording a checkup or treatment.
type CreateInput struct {
	CattleID        uuid.UUID
	DateOfCheckup   string
	HealthIssue     string
	Symptoms        *string
	Diagnosis       *string
	TreatmentGiven  string
	TreatmentCost   float64
	Medications     *string
	NextCheckupDate *string
	AttendedBy      uuid.UUID
	Notes           *string
	Status          domain.HealthRecordStatus
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError
	if i.CattleID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "cattle_id", Message: "required"})
	}
	errs = append(errs, validateFields(i.DateOfCheckup, i.HealthIssue, i.TreatmentGiven, i.TreatmentCost, i.NextCheckupDate, i.AttendedBy, i.Status)...)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds the parameters for editing a health record. The owning
// animal cannot be changed after the fact.
type UpdateInput struct {
	ID              uuid.UUID
	DateOfCheckup   string
	HealthIssue     string
	Symptoms        *string
	Diagnosis       *string
	TreatmentGiven  string
	TreatmentCost   float64
	Medications     *string
	NextCheckupDate *string
	AttendedBy      uuid.UUID
	Notes           *string
	Status          domain.HealthRecordStatus
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	errs = append(errs, validateFields(i.DateOfCheckup, i.HealthIssue, i.TreatmentGiven, i.TreatmentCost, i.NextCheckupDate, i.AttendedBy, i.Status)...)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateFields(dateOfCheckup, healthIssue, treatmentGiven string, treatmentCost float64, nextCheckupDate *string, attendedBy uuid.UUID, status domain.HealthRecordStatus) []domain.FieldError {
	var errs []domain.FieldError

	if dateOfCheckup == "" {
		errs = append(errs, domain.FieldError{Field: "date_of_checkup", Message: "required"})
	} else if _, ok := domain.ParseDate(dateOfCheckup); !ok {
		errs = append(errs, domain.FieldError{Field: "date_of_checkup", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if strings.TrimSpace(healthIssue) == "" {
		errs = append(errs, domain.FieldError{Field: "health_issue", Message: "required"})
	}
	if strings.TrimSpace(treatmentGiven) == "" {
		errs = append(errs, domain.FieldError{Field: "treatment_given", Message: "required"})
	}
	if treatmentCost < 0 {
		errs = append(errs, domain.FieldError{Field: "treatment_cost", Message: "must be non-negative"})
	}

	if nextCheckupDate != nil {
		if _, ok := domain.ParseDate(*nextCheckupDate); !ok {
			errs = append(errs, domain.FieldError{Field: "next_checkup_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}

	if attendedBy == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "attended_by", Message: "required"})
	}
	if !status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be one of ongoing, completed, follow_up"})
	}

	return errs
}

// parseDates converts the validated date strings.
func parseDates(dateOfCheckup string, nextCheckupDate *string) (checkup time.Time, next *time.Time) {
	checkup, _ = domain.ParseDate(dateOfCheckup)
	if nextCheckupDate != nil {
		d, _ := domain.ParseDate(*nextCheckupDate)
		next = &d
	}
	return checkup, next
}
