package roles

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles. Raw strings are validated once at
// ingress with ParseRole; everything downstream switches over these constants.
type Role string

const (
	RolePatient    Role = "patient"
	RoleDoctor     Role = "doctor"
	RoleLabStaff   Role = "lab_staff"
	RolePharmacist Role = "pharmacist"
	RoleInstructor Role = "instructor"
	RoleStudent    Role = "student"
	RoleBloodBank  Role = "blood_bank"
	RoleAdmin      Role = "admin"
)

var all = map[Role]bool{
	RolePatient:    true,
	RoleDoctor:     true,
	RoleLabStaff:   true,
	RolePharmacist: true,
	RoleInstructor: true,
	RoleStudent:    true,
	RoleBloodBank:  true,
	RoleAdmin:      true,
}

// ParseRole validates a raw role string.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !all[r] {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r Role) String() string {
	return string(r)
}
