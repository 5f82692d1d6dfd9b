package booking

import (
	"math"

	"github.com/medilink-hq/medilink-api/exceptions"
)

// FinalFee computes the frozen booking fee: fee discounted by the given
// percentage, rounded half-up to 2 decimals. Pure and reproducible, which the
// frozen-at-booking invariant depends on.
func FinalFee(fee, discount float64) (float64, error) {
	if fee <= 0 {
		return 0, exceptions.NewValidation("Consultation fee must be greater than zero")
	}
	if discount < 0 || discount > 100 {
		return 0, exceptions.NewValidation("Discount must be between 0 and 100")
	}
	final := fee * (1 - discount/100)
	return math.Round(final*100) / 100, nil
}
