package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/medilink-hq/medilink-api/documents"
	"github.com/medilink-hq/medilink-api/utils"
)

func storedDocumentURL(kind documents.Kind, patientFile, sheet, summary string) string {
	switch kind {
	case documents.KindPatientFile:
		return patientFile
	case documents.KindAppointmentSheet:
		return sheet
	default:
		return summary
	}
}

// FetchDocument re-resolves a document into a fresh signed URL at read time;
// stored URLs are not assumed durable. Access is the uniform
// patient/doctor/admin check.
func FetchDocument(c *fiber.Ctx) error {
	kind, err := documents.ParseKind(c.Params("kind"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown document kind",
		})
	}

	appt, err := loadAppointment(c.Params("id"))
	if err != nil {
		return utils.RespondError(c, err)
	}
	if err := checkThreeWayAccess(c, appt); err != nil {
		return utils.RespondError(c, err)
	}

	stored := storedDocumentURL(kind, appt.PatientFileURL, appt.AppointmentSheetURL, appt.SessionSummaryURL)
	if stored == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document has not been generated",
		})
	}

	url, err := docPipeline.Store.PresignedURL(c.Context(), kind.ObjectPath(appt.ID), 24*time.Hour)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to sign document URL",
		})
	}
	return c.JSON(fiber.Map{
		"kind": kind,
		"url":  url,
	})
}

// RegenerateDocument idempotently re-runs one pipeline job for an existing
// appointment. Unlike the booking path this surfaces failures, since the
// caller explicitly asked for the work.
func RegenerateDocument(c *fiber.Ctx) error {
	kind, err := documents.ParseKind(c.Params("kind"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown document kind",
		})
	}

	appt, err := loadAppointment(c.Params("id"))
	if err != nil {
		return utils.RespondError(c, err)
	}

	url, err := docPipeline.Generate(c.Context(), appt, kind)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Document generation failed",
		})
	}
	return c.JSON(fiber.Map{
		"kind": kind,
		"url":  url,
	})
}
