package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/medilink-hq/medilink-api/booking"
	"github.com/medilink-hq/medilink-api/db"
	"github.com/medilink-hq/medilink-api/documents"
	"github.com/medilink-hq/medilink-api/middleware"
	"github.com/medilink-hq/medilink-api/models"
	"github.com/medilink-hq/medilink-api/utils"
)

var docPipeline *documents.Pipeline

// SetDocumentPipeline wires the document pipeline at startup.
func SetDocumentPipeline(p *documents.Pipeline) {
	docPipeline = p
}

type BookInput struct {
	DoctorID uint                  `json:"doctor_id" validate:"required"`
	Date     string                `json:"date" validate:"required"`
	Time     string                `json:"time" validate:"required"`
	Reason   string                `json:"reason"`
	Guest    *booking.GuestDetails `json:"guest_details"`
}

// BookAppointment is the booking orchestrator. The appointment row is the one
// authoritative write; document generation and the notification run after it
// commits and can only fail themselves, never the booking.
func BookAppointment(c *fiber.Ctx) error {
	input := new(BookInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": firstValidationError(err),
		})
	}

	var doctor models.DoctorProfile
	if err := db.DB.Preload("User").First(&doctor, input.DoctorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}

	// Fee and discount are copied from the doctor profile now and frozen on
	// the row; later profile edits never touch this booking.
	finalFee, err := booking.FinalFee(doctor.ConsultationFee, doctor.DiscountPercent)
	if err != nil {
		return utils.RespondError(c, err)
	}

	resolver := booking.NewPatientResolver(booking.NewProfileStore(db.DB))
	ref, err := resolver.Resolve(middleware.CurrentUserID(c), input.Guest)
	if err != nil {
		return utils.RespondError(c, err)
	}

	appt := models.Appointment{
		DoctorProfileID: doctor.ID,
		Date:            input.Date,
		Time:            input.Time,
		Reason:          input.Reason,
		Status:          models.StatusPending,
		ConsultationFee: doctor.ConsultationFee,
		DiscountApplied: doctor.DiscountPercent,
		FinalFee:        finalFee,
	}
	if ref.Registered() {
		appt.PatientProfileID = &ref.Profile.ID
	} else {
		appt.GuestPatientName = ref.Guest.Name
		appt.GuestPhone = ref.Guest.Phone
		appt.GuestAge = ref.Guest.Age
		appt.GuestGender = ref.Guest.Gender
		appt.GuestCNIC = ref.Guest.CNIC
		appt.GuestHistory = ref.Guest.History
	}

	if err := db.DB.Create(&appt).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create appointment",
			Error:   err.Error(),
		})
	}

	// Best-effort phase, after the committed write.
	appt.DoctorProfile = doctor
	if ref.Registered() {
		appt.PatientProfile = ref.Profile
	}
	docPipeline.GenerateBestEffort(c.Context(), &appt, documents.KindPatientFile)
	sheetURL := docPipeline.GenerateBestEffort(c.Context(), &appt, documents.KindAppointmentSheet)

	notifyDoctor(&doctor, fmt.Sprintf("New appointment #%d booked for %s %s", appt.ID, appt.Date, appt.Time))

	response := fiber.Map{"appointment": appt}
	if sheetURL != "" {
		response["appointment_sheet_url"] = sheetURL
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

type StatusInput struct {
	Status string `json:"status" validate:"required"`
}

// ChangeStatus drives the appointment state machine for the attached patient
// or doctor. The admin override lives on a separate admin route.
func ChangeStatus(c *fiber.Ctx) error {
	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	to, err := models.ParseAppointmentStatus(input.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown status",
		})
	}

	appt, err := loadAppointment(c.Params("id"))
	if err != nil {
		return utils.RespondError(c, err)
	}

	actorIsDoctor, actorIsPatient := attachment(appt, middleware.CurrentUserID(c))
	if !actorIsDoctor && !actorIsPatient {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the attached patient or doctor can change this appointment",
		})
	}

	return applyStatusChange(c, appt, to, actorIsDoctor)
}

// AdminChangeStatus is the distinct admin-override capability.
func AdminChangeStatus(c *fiber.Ctx) error {
	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	to, err := models.ParseAppointmentStatus(input.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown status",
		})
	}

	appt, err := loadAppointment(c.Params("id"))
	if err != nil {
		return utils.RespondError(c, err)
	}
	return applyStatusChange(c, appt, to, true)
}

func applyStatusChange(c *fiber.Ctx, appt *models.Appointment, to models.AppointmentStatus, actorIsDoctor bool) error {
	if err := appt.ApplyStatus(db.DB, to); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// Confirming mints the video link once; re-confirming yields the
	// identical link because derivation is deterministic.
	if to == models.StatusConfirmed && appt.VideoCallLink == "" {
		appt.VideoCallLink = booking.VideoLink(appt.ID)
		if err := db.DB.Model(appt).Update("video_call_link", appt.VideoCallLink).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to save video call link",
			})
		}
	}

	// Best-effort layer on top of the committed transition.
	if to == models.StatusCompleted {
		docPipeline.GenerateBestEffort(c.Context(), appt, documents.KindSessionSummary)
	}
	notifyOtherParty(appt, actorIsDoctor, fmt.Sprintf("Appointment #%d is now %s", appt.ID, to))

	return c.JSON(appt)
}

type RescheduleInput struct {
	Date string `json:"date"`
	Time string `json:"time" validate:"required"`
}

// Reschedule moves an appointment's date/time. Doctor-only, never changes
// status, still notifies the patient.
func Reschedule(c *fiber.Ctx) error {
	input := new(RescheduleInput)
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

	appt, err := loadAppointment(c.Params("id"))
	if err != nil {
		return utils.RespondError(c, err)
	}

	actorIsDoctor, _ := attachment(appt, middleware.CurrentUserID(c))
	if !actorIsDoctor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the attached doctor can reschedule",
		})
	}
	if appt.Status.IsTerminal() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot reschedule a " + string(appt.Status) + " appointment",
		})
	}

	updates := map[string]interface{}{"time": input.Time}
	if input.Date != "" {
		updates["date"] = input.Date
	}
	if err := db.DB.Model(appt).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reschedule",
		})
	}

	notifyOtherParty(appt, true, fmt.Sprintf("Appointment #%d was rescheduled to %s %s", appt.ID, appt.Date, appt.Time))
	return c.JSON(appt)
}

// GetAllAppointments lists every appointment, admin only.
func GetAllAppointments(c *fiber.Ctx) error {
	var appointments []models.Appointment
	if err := db.DB.Preload("DoctorProfile.User").Preload("PatientProfile").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetAppointment returns one appointment after the three-way access check.
func GetAppointment(c *fiber.Ctx) error {
	appt, err := loadAppointment(c.Params("id"))
	if err != nil {
		return utils.RespondError(c, err)
	}
	if err := checkThreeWayAccess(c, appt); err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(appt)
}

// GetMyAppointments lists the caller's bookings as a patient.
func GetMyAppointments(c *fiber.Ctx) error {
	var profile models.PatientProfile
	if err := db.DB.Where("user_id = ?", middleware.CurrentUserID(c)).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Patient profile not found",
		})
	}

	var appointments []models.Appointment
	if err := db.DB.Preload("DoctorProfile.User").
		Where("patient_profile_id = ?", profile.ID).
		Order("date asc, time asc").
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// GetSchedule lists the caller's appointments as a doctor, optionally
// filtered by status.
func GetSchedule(c *fiber.Ctx) error {
	var profile models.DoctorProfile
	if err := db.DB.Where("user_id = ?", middleware.CurrentUserID(c)).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor profile not found",
		})
	}

	query := db.DB.Preload("PatientProfile").
		Where("doctor_profile_id = ?", profile.ID).
		Order("date asc, time asc")
	if s := c.Query("status"); s != "" {
		status, err := models.ParseAppointmentStatus(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown status",
			})
		}
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"appointments": appointments,
		"count":        len(appointments),
	})
}
