package cron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/medilink-hq/medilink-api/db"
	"github.com/medilink-hq/medilink-api/logger"
	"github.com/medilink-hq/medilink-api/models"
	"github.com/medilink-hq/medilink-api/notify"
)

// StartCronJobs initializes and starts the scheduler for appointment reminders
func StartCronJobs() {
	c := cron.New()
	// Hourly scan for confirmed appointments happening tomorrow. The
	// reminder_sent flag keeps repeat scans from re-notifying a booking.
	_, err := c.AddFunc("0 * * * *", sendAppointmentReminders)
	if err != nil {
		logger.L.Fatal("failed to add cron job", zap.Error(err))
	}
	c.Start()
	logger.L.Info("cron scheduler started for appointment reminders")
}

func sendAppointmentReminders() {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	var appointments []models.Appointment
	err := db.DB.Preload("PatientProfile").Preload("DoctorProfile.User").
		Where("status = ? AND date = ? AND reminder_sent = ?", models.StatusConfirmed, tomorrow, false).
		Find(&appointments).Error
	if err != nil {
		logger.L.Error("failed to fetch appointments for reminders", zap.Error(err))
		return
	}

	reminded := dispatchReminders(appointments, func(userID uint, message string) {
		notify.Dispatch(db.DB, userID, message)
	})
	if len(reminded) == 0 {
		return
	}

	if err := db.DB.Model(&models.Appointment{}).
		Where("id IN ?", reminded).
		Update("reminder_sent", true).Error; err != nil {
		logger.L.Error("failed to mark reminders sent", zap.Error(err))
	}
	logger.L.Info("appointment reminders dispatched", zap.Int("count", len(reminded)))
}

// dispatchReminders sends one reminder per registered patient and returns the
// ids of the appointments that were reminded, so the caller can mark them.
// Guest bookings have no account to notify and are skipped unmarked.
func dispatchReminders(appointments []models.Appointment, send func(userID uint, message string)) []uint {
	var reminded []uint
	for _, appt := range appointments {
		if appt.PatientProfile == nil {
			continue
		}
		message := fmt.Sprintf(
			"Reminder: your appointment with Dr. %s is tomorrow at %s. %s",
			appt.DoctorProfile.User.Name, appt.Time, appt.VideoCallLink,
		)
		send(appt.PatientProfile.UserID, message)
		reminded = append(reminded, appt.ID)
	}
	return reminded
}
