package models

import (
	"fmt"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return AppointmentStatus(s), nil
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

type Appointment struct {
	gorm.Model
	PatientProfileID *uint           `json:"patient_profile_id"`
	PatientProfile   *PatientProfile `json:"patient_profile,omitempty" gorm:"foreignKey:PatientProfileID"`
	DoctorProfileID  uint            `json:"doctor_profile_id"`
	DoctorProfile    DoctorProfile   `json:"doctor_profile,omitempty" gorm:"foreignKey:DoctorProfileID"`

	// Guest bookings denormalize demographics onto the row instead of
	// referencing a profile. Exactly one of PatientProfileID / guest fields
	// is populated.
	GuestPatientName string `json:"guest_patient_name,omitempty"`
	GuestPhone       string `json:"guest_phone,omitempty"`
	GuestAge         uint   `json:"guest_age,omitempty"`
	GuestGender      string `json:"guest_gender,omitempty"`
	GuestCNIC        string `json:"guest_cnic,omitempty"`
	GuestHistory     string `json:"guest_history,omitempty"`

	Date   string            `json:"date"`
	Time   string            `json:"time"`
	Reason string            `json:"reason"`
	Status AppointmentStatus `json:"status"`

	// Fee figures are copied from the doctor profile at booking time and
	// frozen; later profile edits never touch existing rows.
	ConsultationFee float64 `json:"consultation_fee"`
	DiscountApplied float64 `json:"discount_applied"`
	FinalFee        float64 `json:"final_fee"`

	// ReminderSent stops the hourly reminder scan from notifying the same
	// booking more than once.
	ReminderSent bool `json:"-"`

	VideoCallLink       string `json:"video_call_link,omitempty"`
	PatientFileURL      string `json:"patient_file_url,omitempty"`
	AppointmentSheetURL string `json:"appointment_sheet_url,omitempty"`
	SessionSummaryURL   string `json:"session_summary_url,omitempty"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// IsGuest reports whether the row carries inline guest demographics.
func (a *Appointment) IsGuest() bool {
	return a.PatientProfileID == nil
}

// IsTerminal reports whether no further transition may leave this status.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ValidateTransition checks the state machine without touching the store.
func ValidateTransition(from, to AppointmentStatus) error {
	switch from {
	case StatusPending:
		if to != StatusConfirmed && to != StatusCancelled && to != StatusCompleted {
			return fmt.Errorf("invalid transition from pending to %s", to)
		}
	case StatusConfirmed:
		// Re-confirming is an accepted no-op so confirmation is idempotent.
		if to != StatusConfirmed && to != StatusCompleted && to != StatusCancelled {
			return fmt.Errorf("invalid transition from confirmed to %s", to)
		}
	case StatusCompleted, StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", from)
	default:
		return fmt.Errorf("unknown status %s", from)
	}
	return nil
}

// ApplyStatus validates the transition and persists the new status. Side
// effects (video link, notifications, documents) belong to the caller and run
// after this write commits.
func (a *Appointment) ApplyStatus(tx *gorm.DB, to AppointmentStatus) error {
	if err := ValidateTransition(a.Status, to); err != nil {
		return err
	}
	a.Status = to
	return tx.Save(a).Error
}
