package models

import (
	"time"

	"gorm.io/gorm"
)

// Role profiles. The existence of a row here is evidence the user holds that
// role, independent of User.Role.

type DoctorProfile struct {
	gorm.Model
	UserID          uint    `json:"user_id" gorm:"uniqueIndex"`
	User            User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Specialty       string  `json:"specialty"`
	ConsultationFee float64 `json:"consultation_fee"`
	DiscountPercent float64 `json:"discount_percent"`
	About           string  `json:"about"`
}

type PatientProfile struct {
	gorm.Model
	UserID         uint   `json:"user_id" gorm:"uniqueIndex"`
	User           User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	CNIC           string `json:"cnic"`
	Age            uint   `json:"age"`
	Gender         string `json:"gender"`
	MedicalHistory string `json:"medical_history"`
}

type InstructorProfile struct {
	gorm.Model
	UserID     uint   `json:"user_id" gorm:"uniqueIndex"`
	User       User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Department string `json:"department"`
}

type LabStaffProfile struct {
	gorm.Model
	UserID  uint   `json:"user_id" gorm:"uniqueIndex"`
	User    User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	LabName string `json:"lab_name"`
}

type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
