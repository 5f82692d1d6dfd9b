package controllers

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/medilink-hq/medilink-api/db"
	"github.com/medilink-hq/medilink-api/exceptions"
	"github.com/medilink-hq/medilink-api/middleware"
	"github.com/medilink-hq/medilink-api/models"
	"github.com/medilink-hq/medilink-api/redis"
	"github.com/medilink-hq/medilink-api/roles"
	"github.com/medilink-hq/medilink-api/utils"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`

	// Role-profile seed fields, used for the profile created alongside the
	// account.
	Specialty       string  `json:"specialty"`
	ConsultationFee float64 `json:"consultation_fee"`
	DiscountPercent float64 `json:"discount_percent"`
	CNIC            string  `json:"cnic"`
	Age             uint    `json:"age"`
	Gender          string  `json:"gender"`
	Department      string  `json:"department"`
	LabName         string  `json:"lab_name"`
}

// Register handles user registration. The first role profile is created here,
// at registration time, never later by the booking path.
func Register(c *fiber.Ctx) error {
	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": firstValidationError(err),
		})
	}

	role := roles.RolePatient
	if input.Role != "" {
		parsed, err := roles.ParseRole(input.Role)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown role",
			})
		}
		role = parsed
	}
	if role == roles.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Admin accounts cannot self-register",
		})
	}

	// Check if user already exists
	var existingUser models.User
	if db.DB.Where("email = ?", input.Email).First(&existingUser).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "User with this email already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashedPassword),
		Phone:    input.Phone,
		Role:     role.String(),
		Verified: false,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user: " + err.Error(),
		})
	}

	if err := createRoleProfile(&user, role, input); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create role profile",
		})
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(user)
}

func createRoleProfile(user *models.User, role roles.Role, input *RegisterInput) error {
	switch role {
	case roles.RolePatient:
		return db.DB.Create(&models.PatientProfile{
			UserID: user.ID,
			Name:   user.Name,
			Phone:  user.Phone,
			CNIC:   input.CNIC,
			Age:    input.Age,
			Gender: input.Gender,
		}).Error
	case roles.RoleDoctor:
		return db.DB.Create(&models.DoctorProfile{
			UserID:          user.ID,
			Specialty:       input.Specialty,
			ConsultationFee: input.ConsultationFee,
			DiscountPercent: input.DiscountPercent,
		}).Error
	case roles.RoleInstructor:
		return db.DB.Create(&models.InstructorProfile{
			UserID:     user.ID,
			Department: input.Department,
		}).Error
	case roles.RoleLabStaff:
		return db.DB.Create(&models.LabStaffProfile{
			UserID:  user.ID,
			LabName: input.LabName,
		}).Error
	}
	// Pharmacist, student and blood bank roles carry no profile table.
	return nil
}

// Login handles user authentication
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return utils.RespondError(c, exceptions.NewAuthentication("Invalid credentials"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return utils.RespondError(c, exceptions.NewAuthentication("Invalid credentials"))
	}

	tokenString, err := signAccessToken(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	refreshToken := uuid.NewString()
	if err := redis.StoreRefreshToken(refreshToken, user.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store refresh token",
		})
	}

	available, err := availableRolesFor(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve roles",
		})
	}

	return c.JSON(fiber.Map{
		"token":              tokenString,
		"refreshToken":       refreshToken,
		"available_roles":    available,
		"selection_required": roles.SelectionRequired(available),
		"landing":            roles.RouteForRole(available[0]),
		"user": fiber.Map{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"role":     user.Role,
			"verified": user.Verified,
		},
	})
}

func signAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(time.Hour * 24).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return token.SignedString([]byte(secret))
}

// GetUserProfile returns the current user's profile
func GetUserProfile(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var userProfile models.User
	if err := db.DB.First(&userProfile, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	userProfile.Password = ""
	return c.JSON(userProfile)
}

// RefreshToken exchanges a stored refresh token for a new access token.
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	req := new(RefreshRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	userID, err := redis.LookupRefreshToken(req.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	tokenString, err := signAccessToken(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}
	return c.JSON(fiber.Map{"token": tokenString})
}

// Logout revokes the caller's refresh token. Access tokens stay stateless.
func Logout(c *fiber.Ctx) error {
	type LogoutRequest struct {
		RefreshToken string `json:"refreshToken"`
	}
	req := new(LogoutRequest)
	if err := c.BodyParser(req); err == nil && req.RefreshToken != "" {
		_ = redis.RevokeRefreshToken(req.RefreshToken)
	}
	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// UpdatePassword changes the caller's password after checking the old one.
func UpdatePassword(c *fiber.Ctx) error {
	type PasswordInput struct {
		OldPassword string `json:"old_password" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}

	input := new(PasswordInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": firstValidationError(err),
		})
	}

	var user models.User
	if err := db.DB.First(&user, middleware.CurrentUserID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
		return utils.RespondError(c, exceptions.NewAuthentication("Invalid credentials"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}
	if err := db.DB.Model(&user).Update("password", string(hashed)).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update password",
		})
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}

// UploadAvatar stores a profile picture and saves its URL on the user row.
func UploadAvatar(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Avatar file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot read avatar file",
		})
	}
	defer file.Close()

	userID := middleware.CurrentUserID(c)
	url, err := utils.UploadAvatar(file, uuid.NewString())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload avatar",
		})
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", userID).Update("avatar_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save avatar",
		})
	}
	return c.JSON(fiber.Map{"avatar_url": url})
}
