package booking

import (
	"errors"
	"testing"

	"github.com/medilink-hq/medilink-api/exceptions"
)

func TestFinalFee(t *testing.T) {
	cases := []struct {
		name     string
		fee      float64
		discount float64
		want     float64
	}{
		{"half off", 2000, 50, 1000},
		{"no discount", 1500, 0, 1500},
		{"full discount", 1200, 100, 0},
		{"quarter off", 999, 25, 749.25},
		{"rounds to two decimals", 333.33, 10, 300},
		{"half rounds up", 101, 50, 50.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FinalFee(tc.fee, tc.discount)
			if err != nil {
				t.Fatalf("FinalFee(%v, %v) returned error: %v", tc.fee, tc.discount, err)
			}
			if got != tc.want {
				t.Errorf("FinalFee(%v, %v) = %v, want %v", tc.fee, tc.discount, got, tc.want)
			}
		})
	}
}

func TestFinalFeeDeterministic(t *testing.T) {
	first, err := FinalFee(1234.56, 12.5)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		again, err := FinalFee(1234.56, 12.5)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("FinalFee is not deterministic: %v != %v", again, first)
		}
	}
}

func TestFinalFeeRejectsBadInput(t *testing.T) {
	cases := []struct {
		name     string
		fee      float64
		discount float64
	}{
		{"zero fee", 0, 10},
		{"negative fee", -100, 10},
		{"negative discount", 500, -1},
		{"discount above 100", 500, 101},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FinalFee(tc.fee, tc.discount)
			if err == nil {
				t.Fatalf("FinalFee(%v, %v) accepted invalid input", tc.fee, tc.discount)
			}
			var appErr *exceptions.Error
			if !errors.As(err, &appErr) || appErr.StatusCode != 400 {
				t.Errorf("expected a 400 validation error, got %v", err)
			}
		})
	}
}
