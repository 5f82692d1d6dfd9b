package roles

// Self-service roles that never wait on admin approval.
var verificationBypass = map[Role]bool{
	RolePatient: true,
	RoleStudent: true,
	RoleAdmin:   true,
}

// IsAccessGranted is the verification gate: bypass roles always pass, every
// other role requires an approved account. Evaluated fresh at every boundary.
func IsAccessGranted(role Role, verified bool) bool {
	if verificationBypass[role] {
		return true
	}
	return verified
}
