package pricing

import (
	"testing"

	"garupa/models"
)

func TestComputePrice(t *testing.T) {
	tests := []struct {
		name       string
		settings   models.PricingSettings
		distanceKm float64
		surge      float64
		want       float64
	}{
		{
			name: "flat price ignores distance",
			settings: models.PricingSettings{
				FixedPriceActive: true,
				FixedPrice:       f(20),
				FeeKind:          models.FeeFixed,
				FeeValue:         2,
			},
			distanceKm: 999,
			surge:      1,
			want:       22.00,
		},
		{
			name: "distance price with percent fee",
			settings: models.PricingSettings{
				PricePerKmActive: true,
				PricePerKm:       2.5,
				FeeKind:          models.FeePercent,
				FeeValue:         10,
			},
			distanceKm: 10,
			surge:      1,
			want:       27.50, // base 25 + 10%
		},
		{
			name: "flat flag set but no value falls back to distance",
			settings: models.PricingSettings{
				PricePerKmActive: true,
				PricePerKm:       3,
				FixedPriceActive: true,
				FixedPrice:       nil,
				FeeKind:          models.FeeFixed,
			},
			distanceKm: 4,
			surge:      1,
			want:       12.00,
		},
		{
			name: "distance pricing inactive yields fee only",
			settings: models.PricingSettings{
				PricePerKmActive: false,
				PricePerKm:       2.5,
				FeeKind:          models.FeeFixed,
				FeeValue:         5,
			},
			distanceKm: 10,
			surge:      1,
			want:       5.00,
		},
		{
			name: "surge multiplies the fee-inclusive total",
			settings: models.PricingSettings{
				PricePerKmActive: true,
				PricePerKm:       2.5,
				FeeKind:          models.FeePercent,
				FeeValue:         10,
			},
			distanceKm: 10,
			surge:      2,
			want:       55.00, // exactly double the non-surged 27.50
		},
		{
			name: "negative fee never goes below zero",
			settings: models.PricingSettings{
				PricePerKmActive: true,
				PricePerKm:       1,
				FeeKind:          models.FeeFixed,
				FeeValue:         -100,
			},
			distanceKm: 3,
			surge:      1,
			want:       0,
		},
		{
			name: "result rounds half-up at the cent",
			settings: models.PricingSettings{
				PricePerKmActive: true,
				PricePerKm:       0.333,
				FeeKind:          models.FeeFixed,
			},
			distanceKm: 10, // 3.33 exactly after rounding 3.3300000000000005
			surge:      1,
			want:       3.33,
		},
		{
			name: "percent fee on flat price",
			settings: models.PricingSettings{
				FixedPriceActive: true,
				FixedPrice:       f(8),
				FeeKind:          models.FeePercent,
				FeeValue:         25,
			},
			distanceKm: 0,
			surge:      1,
			want:       10.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePrice(tt.settings, tt.distanceKm, tt.surge)
			if got != tt.want {
				t.Errorf("ComputePrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Surge multiplies the unrounded total; rounding happens once, at the
// end. With a sub-cent remainder the surged price is therefore not an
// exact multiple of the rounded non-surged price: 2.2/km at 7.5 km is
// 16.50, +15% = 18.975, which rounds to 18.98 alone but to exactly
// 37.95 under surge 2.
func TestComputePrice_SurgeAppliesBeforeRounding(t *testing.T) {
	s := models.PricingSettings{
		PricePerKmActive: true,
		PricePerKm:       2.2,
		FeeKind:          models.FeePercent,
		FeeValue:         15,
	}
	if got := ComputePrice(s, 7.5, 1); got != 18.98 {
		t.Errorf("surge 1 = %v, want 18.98", got)
	}
	if got := ComputePrice(s, 7.5, 2); got != 37.95 {
		t.Errorf("surge 2 = %v, want 37.95", got)
	}
}

func TestComputePrice_DefaultSettings(t *testing.T) {
	s := models.DefaultPricingSettings(models.ServiceMotoTaxi)
	if got := ComputePrice(s, 4, 1); got != 10.00 {
		t.Errorf("default settings at 4km = %v, want 10.00", got)
	}
}
