package models

import (
	"testing"
)

func TestValidateTransition(t *testing.T) {
	cases := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, true},
		{StatusConfirmed, StatusConfirmed, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCompleted, false},
	}

	for _, tc := range cases {
		err := ValidateTransition(tc.from, tc.to)
		if tc.allowed && err != nil {
			t.Errorf("%s -> %s should be allowed, got %v", tc.from, tc.to, err)
		}
		if !tc.allowed && err == nil {
			t.Errorf("%s -> %s should be rejected", tc.from, tc.to)
		}
	}
}

func TestReconfirmIsAcceptedNoOp(t *testing.T) {
	// Confirming twice must not be rejected; the handler returns the record
	// with its already-minted video link on the repeat call.
	if err := ValidateTransition(StatusConfirmed, StatusConfirmed); err != nil {
		t.Fatalf("re-confirm should be a no-op, got %v", err)
	}
}

func TestTerminalStates(t *testing.T) {
	if StatusPending.IsTerminal() || StatusConfirmed.IsTerminal() {
		t.Error("pending and confirmed must not be terminal")
	}
	if !StatusCompleted.IsTerminal() || !StatusCancelled.IsTerminal() {
		t.Error("completed and cancelled must be terminal")
	}
}

func TestParseAppointmentStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "completed", "cancelled"} {
		if _, err := ParseAppointmentStatus(valid); err != nil {
			t.Errorf("ParseAppointmentStatus(%q) = %v", valid, err)
		}
	}
	if _, err := ParseAppointmentStatus("canceled"); err == nil {
		t.Error("misspelled status should be rejected")
	}
	if _, err := ParseAppointmentStatus(""); err == nil {
		t.Error("empty status should be rejected")
	}
}

func TestIsGuest(t *testing.T) {
	profileID := uint(3)
	registered := Appointment{PatientProfileID: &profileID}
	if registered.IsGuest() {
		t.Error("appointment with a patient profile must not be a guest booking")
	}

	guest := Appointment{GuestPatientName: "Guest Patient", GuestPhone: "0300"}
	if !guest.IsGuest() {
		t.Error("appointment without a patient profile is a guest booking")
	}
}
