package pricing

import (
	"math"

	"garupa/models"
)

// ComputePrice turns pricing settings, a distance in km and a surge
// multiplier into a final amount with at most two decimal places.
//
// The flat price wins over distance pricing whenever its active flag is
// set and a value exists — distance is ignored entirely in that branch.
// The service fee is applied after the base decision, additively, then
// the surge multiplier. Negative intermediate results (a negative fee
// larger than the base) are floored at zero.
//
// Inputs are not validated here: NaN or negative distances are the
// caller's problem. HTTP handlers sanitize before calling.
func ComputePrice(s models.PricingSettings, distanceKm, surgeMultiplier float64) float64 {
	var base float64
	if s.FixedPriceActive && s.FixedPrice != nil {
		base = *s.FixedPrice
	} else if s.PricePerKmActive {
		base = distanceKm * s.PricePerKm
	}

	switch s.FeeKind {
	case models.FeePercent:
		base += base * s.FeeValue / 100
	default:
		base += s.FeeValue
	}

	base *= surgeMultiplier

	if base < 0 {
		base = 0
	}
	// Round half-up at the cent boundary.
	return math.Round(base*100) / 100
}
