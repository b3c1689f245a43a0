package domain

// allowedRoles is the static per-module permission table. The same set
// applies to create, update and delete within a module; there is no role
// hierarchy — a role is either in the set or it is not.
var allowedRoles = map[EntityType]map[Role]struct{}{
	EntityTypeCattle: {
		RoleAdmin:   {},
		RoleManager: {},
	},
	EntityTypeHealthRecord: {
		RoleAdmin: {},
		RoleVet:   {},
	},
	EntityTypeBreedingRecord: {
		RoleAdmin: {},
		RoleVet:   {},
	},
	EntityTypeFeed: {
		RoleAdmin:   {},
		RoleManager: {},
	},
	EntityTypeWorker: {
		RoleAdmin: {},
	},
}

// IsAllowed reports whether role may mutate records of the given entity
// type. Pure set membership; never errors. Unknown entity types deny all.
func IsAllowed(entity EntityType, role Role) bool {
	set, ok := allowedRoles[entity]
	if !ok {
		return false
	}
	_, ok = set[role]
	return ok
}

// AllowedRoles returns the roles permitted to mutate the given entity type.
func AllowedRoles(entity EntityType) []Role {
	set := allowedRoles[entity]
	roles := make([]Role, 0, len(set))
	for r := range set {
		roles = append(roles, r)
	}
	return roles
}
