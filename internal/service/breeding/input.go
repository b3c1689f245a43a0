package breeding

import (
	"strings"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// CreateInput holds the parameters for recording a breeding event.
// The expected delivery date is never part of the input; it is derived
// from the breeding date.
type CreateInput struct {
	CattleID        uuid.UUID
	BreedingDate    string
	BreedingType    domain.BreedingType
	SireDetails     string
	SemenBatch      *string
	TechnicianID    *uuid.UUID
	BreedingCost    float64
	Status          domain.BreedingRecordStatus
	PregnancyStatus *domain.PregnancyStatus
	Notes           *string
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError
	if i.CattleID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "cattle_id", Message: "required"})
	}
	errs = append(errs, validateFields(i.BreedingDate, i.BreedingType, i.SireDetails, i.TechnicianID, i.BreedingCost, i.Status, i.PregnancyStatus)...)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds the parameters for editing a breeding record. The dam
// cannot be changed after the fact.
type UpdateInput struct {
	ID              uuid.UUID
	BreedingDate    string
	BreedingType    domain.BreedingType
	SireDetails     string
	SemenBatch      *string
	TechnicianID    *uuid.UUID
	BreedingCost    float64
	Status          domain.BreedingRecordStatus
	PregnancyStatus *domain.PregnancyStatus
	Notes           *string
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	errs = append(errs, validateFields(i.BreedingDate, i.BreedingType, i.SireDetails, i.TechnicianID, i.BreedingCost, i.Status, i.PregnancyStatus)...)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateFields(breedingDate string, breedingType domain.BreedingType, sireDetails string, technicianID *uuid.UUID, cost float64, status domain.BreedingRecordStatus, pregnancy *domain.PregnancyStatus) []domain.FieldError {
	var errs []domain.FieldError

	if breedingDate == "" {
		errs = append(errs, domain.FieldError{Field: "breeding_date", Message: "required"})
	} else if _, ok := domain.ParseDate(breedingDate); !ok {
		errs = append(errs, domain.FieldError{Field: "breeding_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if !breedingType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "breeding_type", Message: "must be one of natural, artificial, embryo_transfer"})
	}
	if strings.TrimSpace(sireDetails) == "" {
		errs = append(errs, domain.FieldError{Field: "sire_details", Message: "required"})
	}

	// Natural service has no technician; every assisted method does.
	if breedingType.IsValid() && breedingType != domain.BreedingTypeNatural && technicianID == nil {
		errs = append(errs, domain.FieldError{Field: "technician_id", Message: "required unless breeding_type is natural"})
	}

	if cost < 0 {
		errs = append(errs, domain.FieldError{Field: "breeding_cost", Message: "must be non-negative"})
	}
	if !status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be one of pending, successful, failed, pregnant, calved"})
	}
	if pregnancy != nil && !pregnancy.IsValid() {
		errs = append(errs, domain.FieldError{Field: "pregnancy_status", Message: "must be confirmed or negative"})
	}

	return errs
}
