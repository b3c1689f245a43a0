package worker

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// CreateInput holds the parameters for hiring a worker. The username is
// derived from the email local part, never supplied.
type CreateInput struct {
	FullName             string
	Email                string
	PhoneNumber          string
	IDNumber             string
	Role                 domain.Role
	DateHired            string
	Salary               float64
	AssignedDuties       *string
	Password             string
	PasswordConfirmation string
}

// Validate checks all fields and collects all errors. The minimum password
// length is configured, so it comes in as an argument.
func (i CreateInput) Validate(minPasswordLength int) error {
	errs := validateShared(i.FullName, i.Email, i.PhoneNumber, i.IDNumber, i.Role, i.DateHired, i.Salary)

	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	} else if len(i.Password) < minPasswordLength {
		errs = append(errs, domain.FieldError{Field: "password", Message: fmt.Sprintf("must be at least %d characters", minPasswordLength)})
	}
	if i.Password != i.PasswordConfirmation {
		errs = append(errs, domain.FieldError{Field: "password_confirmation", Message: "must match password"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds the parameters for editing a worker. A nil Password
// leaves the current one in place.
type UpdateInput struct {
	ID                   uuid.UUID
	FullName             string
	Email                string
	PhoneNumber          string
	IDNumber             string
	Role                 domain.Role
	DateHired            string
	Salary               float64
	AssignedDuties       *string
	Status               domain.AccountStatus
	Password             *string
	PasswordConfirmation *string
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate(minPasswordLength int) error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	errs = append(errs, validateShared(i.FullName, i.Email, i.PhoneNumber, i.IDNumber, i.Role, i.DateHired, i.Salary)...)

	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be active or inactive"})
	}

	if i.Password != nil {
		if len(*i.Password) < minPasswordLength {
			errs = append(errs, domain.FieldError{Field: "password", Message: fmt.Sprintf("must be at least %d characters", minPasswordLength)})
		}
		if i.PasswordConfirmation == nil || *i.Password != *i.PasswordConfirmation {
			errs = append(errs, domain.FieldError{Field: "password_confirmation", Message: "must match password"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateShared(fullName, email, phoneNumber, idNumber string, role domain.Role, dateHired string, salary float64) []domain.FieldError {
	var errs []domain.FieldError

	if strings.TrimSpace(fullName) == "" {
		errs = append(errs, domain.FieldError{Field: "full_name", Message: "required"})
	}

	if email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if !domain.IsValidEmail(email) {
		errs = append(errs, domain.FieldError{Field: "email", Message: "must be a valid email address"})
	}

	if phoneNumber == "" {
		errs = append(errs, domain.FieldError{Field: "phone_number", Message: "required"})
	} else if !domain.IsValidPhone(phoneNumber) {
		errs = append(errs, domain.FieldError{Field: "phone_number", Message: "must be a Kenyan number (+254 followed by 7 or 1 and 8 digits)"})
	}

	if strings.TrimSpace(idNumber) == "" {
		errs = append(errs, domain.FieldError{Field: "id_number", Message: "required"})
	}

	if !isStaffRole(role) {
		errs = append(errs, domain.FieldError{Field: "role", Message: "must be one of manager, vet, worker, milker"})
	}

	if dateHired == "" {
		errs = append(errs, domain.FieldError{Field: "date_hired", Message: "required"})
	} else if _, ok := domain.ParseDate(dateHired); !ok {
		errs = append(errs, domain.FieldError{Field: "date_hired", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if salary < 0 {
		errs = append(errs, domain.FieldError{Field: "salary", Message: "must be non-negative"})
	}

	return errs
}

// isStaffRole reports whether the role can be assigned to hired staff.
// Admin accounts are never created through the worker module.
func isStaffRole(role domain.Role) bool {
	for _, r := range domain.StaffRoles() {
		if role == r {
			return true
		}
	}
	return false
}
