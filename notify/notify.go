package notify

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/medilink-hq/medilink-api/logger"
	"github.com/medilink-hq/medilink-api/models"
	"github.com/medilink-hq/medilink-api/roles"
)

// suppressedRoles is read on every send so a config change applies without a
// restart.
func suppressedRoles() map[roles.Role]bool {
	raw := os.Getenv("NOTIFY_SUPPRESSED_ROLES")
	if raw == "" {
		raw = "admin,blood_bank"
	}
	out := make(map[roles.Role]bool)
	for _, part := range strings.Split(raw, ",") {
		if r, err := roles.ParseRole(part); err == nil {
			out[r] = true
		}
	}
	return out
}

// Dispatch inserts a notification row and sends a best-effort email. Failures
// are logged and swallowed; callers never see them.
func Dispatch(db *gorm.DB, userID uint, message string) {
	n := models.Notification{UserID: userID, Message: message}
	if err := db.Create(&n).Error; err != nil {
		logger.L.Error("failed to insert notification",
			zap.Uint("user_id", userID),
			zap.Error(err))
		return
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		logger.L.Warn("notification email skipped, user not found",
			zap.Uint("user_id", userID),
			zap.Error(err))
		return
	}
	if err := SendEmail(user.Email, "MediLink notification", message); err != nil {
		logger.L.Warn("notification email failed",
			zap.Uint("user_id", userID),
			zap.Error(err))
	}
}

// DispatchRoleFiltered drops the message entirely when the recipient's role
// is in the configured suppression set.
func DispatchRoleFiltered(db *gorm.DB, userID uint, role roles.Role, message string) {
	if suppressedRoles()[role] {
		return
	}
	Dispatch(db, userID, message)
}
