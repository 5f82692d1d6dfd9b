package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/medilink-hq/medilink-api/db"
	"github.com/medilink-hq/medilink-api/exceptions"
	"github.com/medilink-hq/medilink-api/middleware"
	"github.com/medilink-hq/medilink-api/models"
	"github.com/medilink-hq/medilink-api/notify"
	"github.com/medilink-hq/medilink-api/roles"
)

func loadAppointment(idParam string) (*models.Appointment, error) {
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		return nil, exceptions.NewValidation("Invalid appointment id")
	}

	var appt models.Appointment
	err = db.DB.Preload("DoctorProfile.User").Preload("PatientProfile").First(&appt, uint(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, exceptions.NewNotFound("Appointment not found")
	}
	if err != nil {
		return nil, exceptions.NewInternal("Failed to load appointment", err)
	}
	return &appt, nil
}

// attachment reports how the acting user relates to the appointment.
func attachment(appt *models.Appointment, userID uint) (actorIsDoctor, actorIsPatient bool) {
	if userID == 0 {
		return false, false
	}
	actorIsDoctor = appt.DoctorProfile.UserID == userID
	actorIsPatient = appt.PatientProfile != nil && appt.PatientProfile.UserID == userID
	return actorIsDoctor, actorIsPatient
}

// checkThreeWayAccess enforces the uniform patient/doctor/admin check.
func checkThreeWayAccess(c *fiber.Ctx, appt *models.Appointment) error {
	role, _ := middleware.CurrentRole(c)
	if role == roles.RoleAdmin {
		return nil
	}
	actorIsDoctor, actorIsPatient := attachment(appt, middleware.CurrentUserID(c))
	if actorIsDoctor || actorIsPatient {
		return nil
	}
	return exceptions.NewAuthorization("You do not have access to this appointment")
}

// notifyDoctor sends a role-filtered notification to the doctor's account.
// The recipient role is resolved at send time, not booking time.
func notifyDoctor(doctor *models.DoctorProfile, message string) {
	sendRoleFiltered(doctor.UserID, message)
}

// notifyOtherParty notifies the non-acting side of an appointment. Guest
// bookings have no account on the patient side, so there is nobody to notify.
func notifyOtherParty(appt *models.Appointment, actorIsDoctor bool, message string) {
	if actorIsDoctor {
		if appt.PatientProfile != nil {
			sendRoleFiltered(appt.PatientProfile.UserID, message)
		}
		return
	}
	sendRoleFiltered(appt.DoctorProfile.UserID, message)
}

func sendRoleFiltered(userID uint, message string) {
	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return
	}
	role, err := roles.ParseRole(user.Role)
	if err != nil {
		role = roles.RolePatient
	}
	notify.DispatchRoleFiltered(db.DB, userID, role, message)
}
