package feed

import (
	"strings"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// CreateInput holds the parameters for adding a feed item. Stock status is
// never part of the input; it is derived from quantity, reorder level and
// expiry date.
type CreateInput struct {
	Name            string
	Type            domain.FeedType
	Description     *string
	Supplier        *string
	UnitOfMeasure   domain.UnitOfMeasure
	UnitCost        float64
	CurrentQuantity float64
	ReorderLevel    float64
	ExpiryDate      string
	StorageLocation *string
	Notes           *string
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	errs := validateFields(i.Name, i.Type, i.UnitOfMeasure, i.UnitCost, i.CurrentQuantity, i.ReorderLevel, i.ExpiryDate)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds the parameters for editing a feed item.
type UpdateInput struct {
	ID              uuid.UUID
	Name            string
	Type            domain.FeedType
	Description     *string
	Supplier        *string
	UnitOfMeasure   domain.UnitOfMeasure
	UnitCost        float64
	CurrentQuantity float64
	ReorderLevel    float64
	ExpiryDate      string
	StorageLocation *string
	Notes           *string
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	errs = append(errs, validateFields(i.Name, i.Type, i.UnitOfMeasure, i.UnitCost, i.CurrentQuantity, i.ReorderLevel, i.ExpiryDate)...)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateFields(name string, feedType domain.FeedType, unit domain.UnitOfMeasure, unitCost, quantity, reorderLevel float64, expiryDate string) []domain.FieldError {
	var errs []domain.FieldError

	if strings.TrimSpace(name) == "" {
		errs = append(errs, domain.FieldError{Field: "feed_name", Message: "required"})
	}
	if !feedType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "feed_type", Message: "must be one of hay, silage, concentrate, supplement, mineral"})
	}
	if !unit.IsValid() {
		errs = append(errs, domain.FieldError{Field: "unit_of_measure", Message: "must be one of kg, bag, bale, ton"})
	}
	if unitCost < 0 {
		errs = append(errs, domain.FieldError{Field: "unit_cost", Message: "must be non-negative"})
	}
	if quantity < 0 {
		errs = append(errs, domain.FieldError{Field: "current_quantity", Message: "must be non-negative"})
	}
	if reorderLevel < 0 {
		errs = append(errs, domain.FieldError{Field: "reorder_level", Message: "must be non-negative"})
	}

	if expiryDate == "" {
		errs = append(errs, domain.FieldError{Field: "expiry_date", Message: "required"})
	} else if _, ok := domain.ParseDate(expiryDate); !ok {
		errs = append(errs, domain.FieldError{Field: "expiry_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	return errs
}
