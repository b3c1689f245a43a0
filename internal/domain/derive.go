package domain

import "time"

// GestationDays is the cattle gestation period used to compute the expected
// delivery date from a breeding date. Plain day addition, no calendar
// rounding.
const GestationDays = 285

// ExpectedDeliveryDate returns breedingDate + GestationDays.
func ExpectedDeliveryDate(breedingDate time.Time) time.Time {
	return breedingDate.AddDate(0, 0, GestationDays)
}

// DeriveHealthStatus maps a health record status to the denormalized health
// state stored on the parent cattle row. The mapping is fixed:
//
//	ongoing   -> sick
//	follow_up -> under_treatment
//	completed -> healthy
func DeriveHealthStatus(status HealthRecordStatus) HealthStatus {
	switch status {
	case HealthRecordStatusOngoing:
		return HealthStatusSick
	case HealthRecordStatusFollowUp:
		return HealthStatusUnderTreatment
	default:
		return HealthStatusHealthy
	}
}

// DeriveBreedingStatus maps a breeding record's status (and optional
// pregnancy-check result) to the denormalized breeding state on the parent
// cattle row:
//
//	pregnant, or pregnancy check confirmed -> pregnant
//	pending or successful                  -> bred
//	failed or calved                       -> open
func DeriveBreedingStatus(status BreedingRecordStatus, pregnancy *PregnancyStatus) BreedingStatus {
	if status == BreedingRecordStatusPregnant {
		return BreedingStatusPregnant
	}
	if pregnancy != nil && *pregnancy == PregnancyStatusConfirmed {
		return BreedingStatusPregnant
	}
	switch status {
	case BreedingRecordStatusPending, BreedingRecordStatusSuccessful:
		return BreedingStatusBred
	default:
		return BreedingStatusOpen
	}
}

// DeriveStockStatus computes the availability state of a feed item.
// Precedence: expired beats out_of_stock beats low_stock beats in_stock.
// An expired item reports expired no matter how much stock remains, and the
// expiry day itself already counts as expired.
func DeriveStockStatus(quantity, reorderLevel float64, expiryDate, today time.Time) StockStatus {
	if !expiryDate.After(truncateToDay(today)) {
		return StockStatusExpired
	}
	if quantity <= 0 {
		return StockStatusOutOfStock
	}
	if quantity <= reorderLevel {
		return StockStatusLowStock
	}
	return StockStatusInStock
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
