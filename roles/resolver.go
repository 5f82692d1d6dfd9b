package roles

import (
	"go.uber.org/zap"

	"github.com/medilink-hq/medilink-api/logger"
)

// Resolve computes the effective role for one request. The durable role from
// the user row wins; if the row lookup failed the token-embedded role is used
// as a degraded fallback; the last resort is the lowest-privilege default.
// The result is never cached across requests so a role switch takes effect on
// the very next call.
func Resolve(dbRole string, found bool, lookupErr error, tokenRole string) Role {
	if lookupErr == nil && found {
		if r, err := ParseRole(dbRole); err == nil {
			return r
		}
	}

	if r, err := ParseRole(tokenRole); err == nil {
		if lookupErr != nil {
			logger.L.Warn("role resolution degraded to token role",
				zap.String("token_role", tokenRole),
				zap.Error(lookupErr))
		}
		return r
	}

	return RolePatient
}
