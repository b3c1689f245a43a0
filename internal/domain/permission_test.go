package domain

import "testing"

func TestIsAllowed(t *testing.T) {
	t.Parallel()

	allRoles := []Role{RoleAdmin, RoleManager, RoleVet, RoleWorker, RoleMilker}

	allowed := map[EntityType]map[Role]bool{
		EntityTypeCattle:         {RoleAdmin: true, RoleManager: true},
		EntityTypeHealthRecord:   {RoleAdmin: true, RoleVet: true},
		EntityTypeBreedingRecord: {RoleAdmin: true, RoleVet: true},
		EntityTypeFeed:           {RoleAdmin: true, RoleManager: true},
		EntityTypeWorker:         {RoleAdmin: true},
	}

	for entity, perEntity := range allowed {
		for _, role := range allRoles {
			want := perEntity[role]
			if got := IsAllowed(entity, role); got != want {
				t.Errorf("IsAllowed(%s, %s) = %v, want %v", entity, role, got, want)
			}
		}
	}
}

func TestIsAllowed_NoHierarchy(t *testing.T) {
	t.Parallel()

	// Manager does not inherit vet access and vice versa; membership is flat.
	if IsAllowed(EntityTypeHealthRecord, RoleManager) {
		t.Error("manager must not pass the health record check")
	}
	if IsAllowed(EntityTypeCattle, RoleVet) {
		t.Error("vet must not pass the cattle check")
	}
}

func TestIsAllowed_UnknownEntity(t *testing.T) {
	t.Parallel()

	if IsAllowed(EntityType("UNKNOWN"), RoleAdmin) {
		t.Error("unknown entity type must deny all roles")
	}
	if IsAllowed(EntityTypeUser, RoleAdmin) {
		t.Error("user accounts are not mutable through the permission table")
	}
}

func TestAllowedRoles(t *testing.T) {
	t.Parallel()

	roles := AllowedRoles(EntityTypeWorker)
	if len(roles) != 1 || roles[0] != RoleAdmin {
		t.Errorf("AllowedRoles(WORKER) = %v, want [admin]", roles)
	}

	if got := AllowedRoles(EntityType("UNKNOWN")); len(got) != 0 {
		t.Errorf("AllowedRoles(UNKNOWN) = %v, want empty", got)
	}
}
