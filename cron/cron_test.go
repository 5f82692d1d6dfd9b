package cron

import (
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/medilink-hq/medilink-api/models"
)

func reminderFixture(id uint, patientUserID uint) models.Appointment {
	appt := models.Appointment{
		Model:  gorm.Model{ID: id},
		Time:   "10:30",
		Status: models.StatusConfirmed,
		DoctorProfile: models.DoctorProfile{
			User: models.User{Name: "Imran Qureshi"},
		},
		VideoCallLink: "https://meet.medilink.app/room",
	}
	if patientUserID != 0 {
		appt.PatientProfile = &models.PatientProfile{UserID: patientUserID}
	}
	return appt
}

func TestDispatchRemindersOncePerAppointment(t *testing.T) {
	appointments := []models.Appointment{
		reminderFixture(1, 11),
		reminderFixture(2, 22),
	}

	sent := map[uint]int{}
	reminded := dispatchReminders(appointments, func(userID uint, message string) {
		sent[userID]++
		if !strings.Contains(message, "Imran Qureshi") || !strings.Contains(message, "10:30") {
			t.Errorf("unexpected reminder message: %q", message)
		}
	})

	if len(reminded) != 2 || reminded[0] != 1 || reminded[1] != 2 {
		t.Errorf("reminded ids = %v, want [1 2]", reminded)
	}
	for userID, count := range sent {
		if count != 1 {
			t.Errorf("user %d received %d reminders, want 1", userID, count)
		}
	}
}

func TestDispatchRemindersSkipsGuestBookings(t *testing.T) {
	appointments := []models.Appointment{
		reminderFixture(1, 0), // guest, no account
		reminderFixture(2, 22),
	}

	var recipients []uint
	reminded := dispatchReminders(appointments, func(userID uint, message string) {
		recipients = append(recipients, userID)
	})

	if len(recipients) != 1 || recipients[0] != 22 {
		t.Errorf("recipients = %v, want only user 22", recipients)
	}
	if len(reminded) != 1 || reminded[0] != 2 {
		t.Errorf("reminded ids = %v, want [2]", reminded)
	}
}
