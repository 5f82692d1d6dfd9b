package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/medilink-hq/medilink-api/models"
)

// Snapshot is the data handed to the renderer. Its layout is what the render
// service expects; the PDF layout itself is the renderer's business.
type Snapshot struct {
	Kind            Kind    `json:"kind"`
	AppointmentID   uint    `json:"appointment_id"`
	PatientName     string  `json:"patient_name"`
	PatientPhone    string  `json:"patient_phone"`
	PatientCNIC     string  `json:"patient_cnic,omitempty"`
	DoctorName      string  `json:"doctor_name"`
	Specialty       string  `json:"specialty"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	Reason          string  `json:"reason,omitempty"`
	Status          string  `json:"status"`
	ConsultationFee float64 `json:"consultation_fee"`
	DiscountApplied float64 `json:"discount_applied"`
	FinalFee        float64 `json:"final_fee"`
}

// BuildSnapshot assembles the render input from a loaded appointment.
func BuildSnapshot(kind Kind, appt *models.Appointment) Snapshot {
	snap := Snapshot{
		Kind:            kind,
		AppointmentID:   appt.ID,
		DoctorName:      appt.DoctorProfile.User.Name,
		Specialty:       appt.DoctorProfile.Specialty,
		Date:            appt.Date,
		Time:            appt.Time,
		Reason:          appt.Reason,
		Status:          string(appt.Status),
		ConsultationFee: appt.ConsultationFee,
		DiscountApplied: appt.DiscountApplied,
		FinalFee:        appt.FinalFee,
	}
	if appt.IsGuest() {
		snap.PatientName = appt.GuestPatientName
		snap.PatientPhone = appt.GuestPhone
		snap.PatientCNIC = appt.GuestCNIC
	} else if appt.PatientProfile != nil {
		snap.PatientName = appt.PatientProfile.Name
		snap.PatientPhone = appt.PatientProfile.Phone
		snap.PatientCNIC = appt.PatientProfile.CNIC
	}
	return snap
}

// Renderer turns a snapshot into the rendered document bytes.
type Renderer interface {
	Render(ctx context.Context, snap Snapshot) ([]byte, error)
}

// httpRenderer calls the external render service.
type httpRenderer struct {
	baseURL string
	client  *http.Client
}

func NewHTTPRenderer() Renderer {
	baseURL := os.Getenv("RENDERER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:7070"
	}
	return &httpRenderer{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *httpRenderer) Render(ctx context.Context, snap Snapshot) ([]byte, error) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/render", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("render service returned %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
