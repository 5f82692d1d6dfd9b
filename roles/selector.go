package roles

// secondaryOrder fixes the order roles are offered in when an identity holds
// more than one. Only profile-evidenced roles can appear as secondaries.
var secondaryOrder = []Role{RoleDoctor, RolePatient, RoleInstructor, RoleLabStaff}

// Available lists every role the identity can act as: the primary role plus
// any secondary role evidenced by an existing role profile. The primary is
// always first and duplicates are removed.
func Available(primary Role, evidence map[Role]bool) []Role {
	out := []Role{primary}
	for _, r := range secondaryOrder {
		if r != primary && evidence[r] {
			out = append(out, r)
		}
	}
	return out
}

// SelectionRequired reports whether the client must show an explicit role
// chooser. Exactly one available role auto-routes; there is no silent default
// and no remembered last choice.
func SelectionRequired(available []Role) bool {
	return len(available) > 1
}

// RouteForRole maps a resolved role to its dashboard area. Route entry is
// re-derived from the current role on every navigation; a mismatch is a hard
// redirect, not a warning.
func RouteForRole(r Role) string {
	switch r {
	case RoleDoctor:
		return "/doctor/dashboard"
	case RoleLabStaff:
		return "/lab/dashboard"
	case RolePharmacist:
		return "/pharmacy/dashboard"
	case RoleInstructor:
		return "/instructor/dashboard"
	case RoleStudent:
		return "/student/dashboard"
	case RoleBloodBank:
		return "/blood-bank/dashboard"
	case RoleAdmin:
		return "/admin/dashboard"
	default:
		return "/patient/dashboard"
	}
}
