package domain

// Role represents the authorization level of a user account.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleVet     Role = "vet"
	RoleWorker  Role = "worker"
	RoleMilker  Role = "milker"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleVet, RoleWorker, RoleMilker:
		return true
	}
	return false
}

// StaffRoles are the roles assignable to a worker record.
// Admin accounts are created through the bootstrap path, never via the
// worker module.
func StaffRoles() []Role {
	return []Role{RoleManager, RoleVet, RoleWorker, RoleMilker}
}

// Gender of a cattle record.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) String() string { return string(g) }

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// CattleStatus represents the lifecycle state of a cattle record.
type CattleStatus string

const (
	CattleStatusActive      CattleStatus = "active"
	CattleStatusDead        CattleStatus = "dead"
	CattleStatusSold        CattleStatus = "sold"
	CattleStatusTransferred CattleStatus = "transferred"
)

func (s CattleStatus) String() string { return string(s) }

func (s CattleStatus) IsValid() bool {
	switch s {
	case CattleStatusActive, CattleStatusDead, CattleStatusSold, CattleStatusTransferred:
		return true
	}
	return false
}

// HealthStatus is the denormalized health state on a cattle record.
// It is derived from the latest health record's status and is never set
// directly through the cattle module.
type HealthStatus string

const (
	HealthStatusHealthy        HealthStatus = "healthy"
	HealthStatusSick           HealthStatus = "sick"
	HealthStatusUnderTreatment HealthStatus = "under_treatment"
	HealthStatusQuarantine     HealthStatus = "quarantine"
)

func (s HealthStatus) String() string { return string(s) }

func (s HealthStatus) IsValid() bool {
	switch s {
	case HealthStatusHealthy, HealthStatusSick, HealthStatusUnderTreatment, HealthStatusQuarantine:
		return true
	}
	return false
}

// BreedingStatus is the denormalized breeding state on a cattle record.
// Derived from the latest breeding record, never set directly.
type BreedingStatus string

const (
	BreedingStatusOpen     BreedingStatus = "open"
	BreedingStatusBred     BreedingStatus = "bred"
	BreedingStatusPregnant BreedingStatus = "pregnant"
)

func (s BreedingStatus) String() string { return string(s) }

func (s BreedingStatus) IsValid() bool {
	switch s {
	case BreedingStatusOpen, BreedingStatusBred, BreedingStatusPregnant:
		return true
	}
	return false
}

// HealthRecordStatus is the state of a single health record.
type HealthRecordStatus string

const (
	HealthRecordStatusOngoing   HealthRecordStatus = "ongoing"
	HealthRecordStatusCompleted HealthRecordStatus = "completed"
	HealthRecordStatusFollowUp  HealthRecordStatus = "follow_up"
)

func (s HealthRecordStatus) String() string { return string(s) }

func (s HealthRecordStatus) IsValid() bool {
	switch s {
	case HealthRecordStatusOngoing, HealthRecordStatusCompleted, HealthRecordStatusFollowUp:
		return true
	}
	return false
}

// BreedingType is the method used for a breeding event.
type BreedingType string

const (
	BreedingTypeNatural        BreedingType = "natural"
	BreedingTypeArtificial     BreedingType = "artificial"
	BreedingTypeEmbryoTransfer BreedingType = "embryo_transfer"
)

func (t BreedingType) String() string { return string(t) }

func (t BreedingType) IsValid() bool {
	switch t {
	case BreedingTypeNatural, BreedingTypeArtificial, BreedingTypeEmbryoTransfer:
		return true
	}
	return false
}

// BreedingRecordStatus is the outcome state of a single breeding record.
type BreedingRecordStatus string

const (
	BreedingRecordStatusPending    BreedingRecordStatus = "pending"
	BreedingRecordStatusSuccessful BreedingRecordStatus = "successful"
	BreedingRecordStatusFailed     BreedingRecordStatus = "failed"
	BreedingRecordStatusPregnant   BreedingRecordStatus = "pregnant"
	BreedingRecordStatusCalved     BreedingRecordStatus = "calved"
)

func (s BreedingRecordStatus) String() string { return string(s) }

func (s BreedingRecordStatus) IsValid() bool {
	switch s {
	case BreedingRecordStatusPending, BreedingRecordStatusSuccessful,
		BreedingRecordStatusFailed, BreedingRecordStatusPregnant, BreedingRecordStatusCalved:
		return true
	}
	return false
}

// PregnancyStatus is the optional pregnancy-check result on a breeding record.
type PregnancyStatus string

const (
	PregnancyStatusConfirmed PregnancyStatus = "confirmed"
	PregnancyStatusNegative  PregnancyStatus = "negative"
)

func (s PregnancyStatus) String() string { return string(s) }

func (s PregnancyStatus) IsValid() bool {
	return s == PregnancyStatusConfirmed || s == PregnancyStatusNegative
}

// FeedType categorizes a feed inventory item.
type FeedType string

const (
	FeedTypeHay         FeedType = "hay"
	FeedTypeSilage      FeedType = "silage"
	FeedTypeConcentrate FeedType = "concentrate"
	FeedTypeSupplement  FeedType = "supplement"
	FeedTypeMineral     FeedType = "mineral"
)

func (t FeedType) String() string { return string(t) }

func (t FeedType) IsValid() bool {
	switch t {
	case FeedTypeHay, FeedTypeSilage, FeedTypeConcentrate, FeedTypeSupplement, FeedTypeMineral:
		return true
	}
	return false
}

// UnitOfMeasure is the stock-keeping unit of a feed item.
type UnitOfMeasure string

const (
	UnitKg   UnitOfMeasure = "kg"
	UnitBag  UnitOfMeasure = "bag"
	UnitBale UnitOfMeasure = "bale"
	UnitTon  UnitOfMeasure = "ton"
)

func (u UnitOfMeasure) String() string { return string(u) }

func (u UnitOfMeasure) IsValid() bool {
	switch u {
	case UnitKg, UnitBag, UnitBale, UnitTon:
		return true
	}
	return false
}

// StockStatus is the derived availability state of a feed item.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
	StockStatusExpired    StockStatus = "expired"
)

func (s StockStatus) String() string { return string(s) }

func (s StockStatus) IsValid() bool {
	switch s {
	case StockStatusInStock, StockStatusLowStock, StockStatusOutOfStock, StockStatusExpired:
		return true
	}
	return false
}

// FeedTransactionType classifies an entry in the feed stock ledger.
type FeedTransactionType string

const (
	FeedTxInitialStock       FeedTransactionType = "initial_stock"
	FeedTxAdjustmentAdd      FeedTransactionType = "adjustment_add"
	FeedTxAdjustmentSubtract FeedTransactionType = "adjustment_subtract"
)

func (t FeedTransactionType) String() string { return string(t) }

func (t FeedTransactionType) IsValid() bool {
	switch t {
	case FeedTxInitialStock, FeedTxAdjustmentAdd, FeedTxAdjustmentSubtract:
		return true
	}
	return false
}

// AccountStatus is the state of a user account.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
)

func (s AccountStatus) String() string { return string(s) }

func (s AccountStatus) IsValid() bool {
	return s == AccountStatusActive || s == AccountStatusInactive
}

// EntityType identifies the kind of domain entity (used in audit logs and
// the permission table).
type EntityType string

const (
	EntityTypeCattle         EntityType = "CATTLE"
	EntityTypeHealthRecord   EntityType = "HEALTH_RECORD"
	EntityTypeBreedingRecord EntityType = "BREEDING_RECORD"
	EntityTypeFeed           EntityType = "FEED"
	EntityTypeWorker         EntityType = "WORKER"
	EntityTypeUser           EntityType = "USER"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeCattle, EntityTypeHealthRecord, EntityTypeBreedingRecord,
		EntityTypeFeed, EntityTypeWorker, EntityTypeUser:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionLogin  AuditAction = "LOGIN"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete, AuditActionLogin:
		return true
	}
	return false
}
