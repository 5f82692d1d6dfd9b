package documents

import (
	"fmt"
)

// Kind names one of the three independently generated documents.
type Kind string

const (
	KindPatientFile      Kind = "patient-file"
	KindAppointmentSheet Kind = "appointment-sheet"
	KindSessionSummary   Kind = "session-summary"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindPatientFile, KindAppointmentSheet, KindSessionSummary:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown document kind %q", s)
}

// Column returns the appointment column the job writes its URL to. Each URL
// is written at most once by its own job.
func (k Kind) Column() string {
	switch k {
	case KindPatientFile:
		return "patient_file_url"
	case KindAppointmentSheet:
		return "appointment_sheet_url"
	default:
		return "session_summary_url"
	}
}

// ObjectPath is the deterministic blob-store location for a document, so a
// regenerate overwrites rather than accumulates.
func (k Kind) ObjectPath(appointmentID uint) string {
	return fmt.Sprintf("appointments/%d/%s.pdf", appointmentID, k)
}
