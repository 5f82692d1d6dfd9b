package middleware

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/medilink-hq/medilink-api/db"
	"github.com/medilink-hq/medilink-api/models"
	"github.com/medilink-hq/medilink-api/roles"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return []byte(secret)
}

// Protected validates the bearer token and resolves the caller's effective
// role. The user row is re-read on every request: the durable role wins, the
// token-embedded role is only a degraded fallback, and nothing is cached, so
// a role switch or demotion is enforced on the very next request.
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:     jwtSecret(),
		ErrorHandler:   jwtError,
		SuccessHandler: resolveIdentity,
	})
}

func resolveIdentity(c *fiber.Ctx) error {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token",
		})
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token claims",
		})
	}

	userID, err := extractUserID(claims)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user ID in token",
		})
	}
	tokenRole, _ := claims["role"].(string)

	var user models.User
	lookupErr := db.DB.First(&user, userID).Error
	found := lookupErr == nil

	role := roles.Resolve(user.Role, found, ignoreNotFound(lookupErr), tokenRole)

	c.Locals("userID", userID)
	c.Locals("role", role)
	c.Locals("verified", found && user.Verified)

	return c.Next()
}

// ignoreNotFound keeps a missing row from counting as a degraded lookup; only
// infrastructure failures trigger the token-role fallback.
func ignoreNotFound(err error) error {
	if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// OptionalAuth resolves an identity when a bearer token is present and lets
// anonymous callers straight through. Used by the booking endpoint, where a
// missing identity means a guest booking.
func OptionalAuth() fiber.Handler {
	protected := Protected()
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return c.Next()
		}
		return protected(c)
	}
}

// extractUserID handles multiple potential formats of user ID in token
func extractUserID(claims jwt.MapClaims) (uint, error) {
	idVal := claims["id"]
	if idVal == nil {
		return 0, fmt.Errorf("no ID found in claims")
	}

	switch v := idVal.(type) {
	case float64:
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse ID string: %v", err)
		}
		return uint(parsed), nil
	case uint:
		return v, nil
	case int:
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unsupported ID type: %T", v)
	}
}

// jwtError handles JWT errors
func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "Unauthorized",
		"message": "Invalid or expired token",
	})
}
