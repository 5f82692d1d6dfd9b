package notify

import (
	"testing"

	"github.com/medilink-hq/medilink-api/roles"
)

func TestSuppressedRolesDefault(t *testing.T) {
	t.Setenv("NOTIFY_SUPPRESSED_ROLES", "")

	got := suppressedRoles()
	if !got[roles.RoleAdmin] || !got[roles.RoleBloodBank] {
		t.Errorf("default suppression should cover admin and blood_bank, got %v", got)
	}
	if got[roles.RolePatient] || got[roles.RoleDoctor] {
		t.Errorf("patient and doctor must not be suppressed by default, got %v", got)
	}
}

func TestSuppressedRolesFromEnv(t *testing.T) {
	t.Setenv("NOTIFY_SUPPRESSED_ROLES", "doctor,student")

	got := suppressedRoles()
	if !got[roles.RoleDoctor] || !got[roles.RoleStudent] {
		t.Errorf("configured roles missing, got %v", got)
	}
	if got[roles.RoleAdmin] {
		t.Error("defaults must not apply when the variable is set")
	}
}

func TestSuppressedRolesSkipsUnknownEntries(t *testing.T) {
	t.Setenv("NOTIFY_SUPPRESSED_ROLES", "admin, nurse,,blood_bank")

	got := suppressedRoles()
	if !got[roles.RoleAdmin] || !got[roles.RoleBloodBank] {
		t.Errorf("valid entries should survive bad neighbours, got %v", got)
	}
	if len(got) != 2 {
		t.Errorf("unknown entries should be skipped, got %v", got)
	}
}
