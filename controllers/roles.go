package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medilink-hq/medilink-api/db"
	"github.com/medilink-hq/medilink-api/middleware"
	"github.com/medilink-hq/medilink-api/models"
	"github.com/medilink-hq/medilink-api/roles"
)

// availableRolesFor lists the primary role plus every secondary role
// evidenced by an existing role profile. Computed fresh from the store every
// time, never remembered.
func availableRolesFor(user *models.User) ([]roles.Role, error) {
	primary, err := roles.ParseRole(user.Role)
	if err != nil {
		primary = roles.RolePatient
	}

	evidence := make(map[roles.Role]bool)

	var count int64
	if err := db.DB.Model(&models.DoctorProfile{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		return nil, err
	}
	evidence[roles.RoleDoctor] = count > 0

	if err := db.DB.Model(&models.PatientProfile{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		return nil, err
	}
	evidence[roles.RolePatient] = count > 0

	if err := db.DB.Model(&models.InstructorProfile{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		return nil, err
	}
	evidence[roles.RoleInstructor] = count > 0

	if err := db.DB.Model(&models.LabStaffProfile{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		return nil, err
	}
	evidence[roles.RoleLabStaff] = count > 0

	return roles.Available(primary, evidence), nil
}

// ListMyRoles returns every role the caller can act as, plus whether an
// explicit selection screen is required.
func ListMyRoles(c *fiber.Ctx) error {
	var user models.User
	if err := db.DB.First(&user, middleware.CurrentUserID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	available, err := availableRolesFor(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve roles",
		})
	}

	return c.JSON(fiber.Map{
		"roles":              available,
		"selection_required": roles.SelectionRequired(available),
	})
}

// SwitchRole durably changes the primary role. Only a role the identity
// actually holds can be selected; the switch is visible on the very next
// request because role resolution is uncached.
func SwitchRole(c *fiber.Ctx) error {
	type SwitchInput struct {
		Role string `json:"role" validate:"required"`
	}
	input := new(SwitchInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	requested, err := roles.ParseRole(input.Role)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown role",
		})
	}

	var user models.User
	if err := db.DB.First(&user, middleware.CurrentUserID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	available, err := availableRolesFor(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve roles",
		})
	}

	held := false
	for _, r := range available {
		if r == requested {
			held = true
			break
		}
	}
	if !held {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You do not hold the requested role",
		})
	}

	if err := db.DB.Model(&user).Update("role", requested.String()).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to switch role",
		})
	}

	return c.JSON(fiber.Map{
		"role":    requested,
		"landing": roles.RouteForRole(requested),
	})
}

// Landing re-derives the dashboard route for the caller's current role. The
// client treats this as authoritative on every navigation.
func Landing(c *fiber.Ctx) error {
	role, ok := middleware.CurrentRole(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "No resolved role",
		})
	}
	return c.JSON(fiber.Map{
		"role":    role,
		"landing": roles.RouteForRole(role),
	})
}
