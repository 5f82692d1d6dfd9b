package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/medilink-hq/medilink-api/db"
	"github.com/medilink-hq/medilink-api/models"
	"github.com/medilink-hq/medilink-api/roles"
)

// ListPendingUsers shows the verification queue.
func ListPendingUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := db.DB.Where("verified = ?", false).Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	for i := range users {
		users[i].Password = ""
	}
	return c.JSON(fiber.Map{
		"users": users,
		"count": len(users),
	})
}

// ApproveUser marks an account verified. Approval must never leave a verified
// user without a usable profile, so a minimal role profile is created here if
// the registration-time one is missing.
func ApproveUser(c *fiber.Ctx) error {
	var user models.User
	if err := db.DB.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if err := db.DB.Model(&user).Update("verified", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to approve user",
		})
	}

	role, err := roles.ParseRole(user.Role)
	if err == nil {
		if err := ensureRoleProfile(&user, role); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create role profile",
			})
		}
	}

	user.Password = ""
	user.Verified = true
	return c.JSON(user)
}

func ensureRoleProfile(user *models.User, role roles.Role) error {
	var count int64
	switch role {
	case roles.RoleDoctor:
		if err := db.DB.Model(&models.DoctorProfile{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return db.DB.Create(&models.DoctorProfile{UserID: user.ID}).Error
		}
	case roles.RolePatient:
		if err := db.DB.Model(&models.PatientProfile{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return db.DB.Create(&models.PatientProfile{UserID: user.ID, Name: user.Name, Phone: user.Phone}).Error
		}
	case roles.RoleInstructor:
		if err := db.DB.Model(&models.InstructorProfile{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return db.DB.Create(&models.InstructorProfile{UserID: user.ID}).Error
		}
	case roles.RoleLabStaff:
		if err := db.DB.Model(&models.LabStaffProfile{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return db.DB.Create(&models.LabStaffProfile{UserID: user.ID}).Error
		}
	}
	return nil
}

// RejectUser deletes an unverified account and its role profiles.
func RejectUser(c *fiber.Ctx) error {
	var user models.User
	if err := db.DB.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.DoctorProfile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.PatientProfile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.InstructorProfile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.LabStaffProfile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reject user",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
