package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medilink-hq/medilink-api/db"
	"github.com/medilink-hq/medilink-api/middleware"
	"github.com/medilink-hq/medilink-api/models"
)

// GetNotifications lists the caller's notifications, newest first.
func GetNotifications(c *fiber.Ctx) error {
	var notifications []models.Notification
	if err := db.DB.Where("user_id = ?", middleware.CurrentUserID(c)).
		Order("created_at desc").
		Find(&notifications).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// MarkNotificationRead flips the read flag on one of the caller's own
// notifications.
func MarkNotificationRead(c *fiber.Ctx) error {
	var notification models.Notification
	if err := db.DB.Where("id = ? AND user_id = ?", c.Params("id"), middleware.CurrentUserID(c)).
		First(&notification).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Notification not found",
		})
	}

	if err := db.DB.Model(&notification).Update("read", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update notification",
		})
	}
	return c.JSON(notification)
}
