package roles

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseRole(t *testing.T) {
	for raw, want := range map[string]Role{
		"patient":     RolePatient,
		"DOCTOR":      RoleDoctor,
		" lab_staff ": RoleLabStaff,
		"Admin":       RoleAdmin,
	} {
		got, err := ParseRole(raw)
		if err != nil {
			t.Fatalf("ParseRole(%q) = %v", raw, err)
		}
		if got != want {
			t.Errorf("ParseRole(%q) = %s, want %s", raw, got, want)
		}
	}

	for _, raw := range []string{"", "nurse", "superadmin"} {
		if _, err := ParseRole(raw); err == nil {
			t.Errorf("ParseRole(%q) should fail", raw)
		}
	}
}

func TestResolvePrefersDurableRole(t *testing.T) {
	got := Resolve("doctor", true, nil, "patient")
	if got != RoleDoctor {
		t.Errorf("Resolve = %s, want doctor", got)
	}
}

func TestResolveDegradesToTokenOnLookupError(t *testing.T) {
	got := Resolve("", false, errors.New("connection refused"), "instructor")
	if got != RoleInstructor {
		t.Errorf("Resolve = %s, want instructor", got)
	}
}

func TestResolveNotFoundFallsBackToToken(t *testing.T) {
	// A missing row arrives as found=false with a nil error; the token role
	// still applies without the degraded-mode warning path.
	got := Resolve("", false, nil, "student")
	if got != RoleStudent {
		t.Errorf("Resolve = %s, want student", got)
	}
}

func TestResolveDefaultsToPatient(t *testing.T) {
	got := Resolve("garbage", true, nil, "also-garbage")
	if got != RolePatient {
		t.Errorf("Resolve = %s, want patient", got)
	}
}

func TestIsAccessGranted(t *testing.T) {
	cases := []struct {
		role     Role
		verified bool
		want     bool
	}{
		{RolePatient, false, true},
		{RoleStudent, false, true},
		{RoleAdmin, false, true},
		{RoleDoctor, false, false},
		{RoleDoctor, true, true},
		{RoleLabStaff, false, false},
		{RoleLabStaff, true, true},
		{RolePharmacist, false, false},
		{RoleInstructor, false, false},
		{RoleBloodBank, false, false},
		{RoleBloodBank, true, true},
	}
	for _, tc := range cases {
		if got := IsAccessGranted(tc.role, tc.verified); got != tc.want {
			t.Errorf("IsAccessGranted(%s, %v) = %v, want %v", tc.role, tc.verified, got, tc.want)
		}
	}
}

func TestAvailableOrderingAndDedup(t *testing.T) {
	evidence := map[Role]bool{
		RoleDoctor:     true,
		RolePatient:    true,
		RoleInstructor: true,
	}
	got := Available(RoleDoctor, evidence)
	want := []Role{RoleDoctor, RolePatient, RoleInstructor}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Available = %v, want %v", got, want)
	}
}

func TestAvailableSingleRole(t *testing.T) {
	got := Available(RolePharmacist, nil)
	if len(got) != 1 || got[0] != RolePharmacist {
		t.Errorf("Available = %v, want just pharmacist", got)
	}
	if SelectionRequired(got) {
		t.Error("a single available role must not require a selector")
	}
}

func TestSelectionRequired(t *testing.T) {
	if !SelectionRequired([]Role{RoleDoctor, RolePatient}) {
		t.Error("two roles require a selection")
	}
	if SelectionRequired([]Role{RolePatient}) {
		t.Error("one role auto-routes")
	}
}

func TestRouteForRole(t *testing.T) {
	cases := map[Role]string{
		RoleDoctor:     "/doctor/dashboard",
		RolePatient:    "/patient/dashboard",
		RoleLabStaff:   "/lab/dashboard",
		RolePharmacist: "/pharmacy/dashboard",
		RoleInstructor: "/instructor/dashboard",
		RoleStudent:    "/student/dashboard",
		RoleBloodBank:  "/blood-bank/dashboard",
		RoleAdmin:      "/admin/dashboard",
		Role("bogus"):  "/patient/dashboard",
	}
	for role, want := range cases {
		if got := RouteForRole(role); got != want {
			t.Errorf("RouteForRole(%s) = %s, want %s", role, got, want)
		}
	}
}
