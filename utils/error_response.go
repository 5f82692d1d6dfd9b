package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/medilink-hq/medilink-api/exceptions"
)

// ErrorResponse is a struct for error response
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// RespondError folds any error into the right status and JSON body. Typed
// application errors carry their own status; anything else is a 500 with a
// generic message.
func RespondError(c *fiber.Ctx, err error) error {
	var appErr *exceptions.Error
	if errors.As(err, &appErr) {
		body := fiber.Map{"error": appErr.Message}
		if len(appErr.MissingFields) > 0 {
			body["missing_fields"] = appErr.MissingFields
		}
		return c.Status(appErr.StatusCode).JSON(body)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Something went wrong",
	})
}
