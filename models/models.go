package models

import "time"

// Service types offered on the platform. These are lookup keys everywhere:
// availability rules, pricing settings, feature flags and API payloads.
const (
	ServiceMotoTaxi     = "moto-taxi"
	ServicePassengerCar = "passenger-car"
	ServiceDeliveryBike = "delivery-bike"
	ServiceDeliveryCar  = "delivery-car"
)

// AllServiceTypes is the fixed enumeration iterated by the batch
// availability lookup. Order is the display order in rider apps.
var AllServiceTypes = []string{
	ServiceMotoTaxi,
	ServicePassengerCar,
	ServiceDeliveryBike,
	ServiceDeliveryCar,
}

// Fee kinds for the service fee on top of the base price.
const (
	FeeFixed   = "fixed"
	FeePercent = "percent"
)

// Unavailability reasons returned by the availability resolver.
const (
	ReasonRegionUnavailable = "region-unavailable"
	ReasonOutOfSchedule     = "out-of-schedule"
	ReasonServiceDisabled   = "service-disabled"
)

// AvailabilityRule is one weekly scheduling constraint for a
// (service type, region) pair. Weekdays use 1=Monday .. 7=Sunday.
// TimeStart/TimeEnd are zero-padded "HH:MM" strings; the window is
// inclusive on both ends. Rules are independent and non-exclusive —
// several may cover the same slot with different surge multipliers.
type AvailabilityRule struct {
	ID              string    `json:"id"`
	ServiceType     string    `json:"serviceType"`
	Region          string    `json:"region"`
	Weekdays        []int     `json:"weekdays"`
	TimeStart       string    `json:"timeStart"`
	TimeEnd         string    `json:"timeEnd"`
	Active          bool      `json:"active"`
	SurgeMultiplier *float64  `json:"surgeMultiplier"` // nil means 1.0
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// PricingSettings is the pricing configuration for a single service type
// (region-independent). When FixedPriceActive is set and FixedPrice is
// non-nil, the flat price wins and distance is ignored.
type PricingSettings struct {
	ID               string    `json:"id"`
	ServiceType      string    `json:"serviceType"`
	PricePerKmActive bool      `json:"pricePerKmActive"`
	PricePerKm       float64   `json:"pricePerKm"`
	FixedPriceActive bool      `json:"fixedPriceActive"`
	FixedPrice       *float64  `json:"fixedPrice"`
	FeeKind          string    `json:"feeKind"` // "fixed" or "percent"
	FeeValue         float64   `json:"feeValue"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// DefaultPricingSettings is what a service type gets before an admin
// configures it: distance pricing at 2.5/km, no flat price, no fee.
func DefaultPricingSettings(serviceType string) PricingSettings {
	return PricingSettings{
		ServiceType:      serviceType,
		PricePerKmActive: true,
		PricePerKm:       2.5,
		FixedPriceActive: false,
		FeeKind:          FeeFixed,
		FeeValue:         0,
	}
}

// AvailabilityResult is the outcome of an availability resolution.
// Reason is set only when unavailable; SurgeMultiplier only when available
// (the maximum multiplier among all matching rules).
type AvailabilityResult struct {
	Available       bool     `json:"available"`
	Reason          string   `json:"reason,omitempty"`
	SurgeMultiplier *float64 `json:"surgeMultiplier,omitempty"`
}

// ServiceAvailability is one entry of the batch availability lookup.
type ServiceAvailability struct {
	ServiceType     string  `json:"serviceType"`
	SurgeMultiplier float64 `json:"surgeMultiplier"`
}

// ConfigAuditLog records an administrative change to rules or pricing,
// written asynchronously so mutations stay fast.
type ConfigAuditLog struct {
	ID        string      `json:"id"`
	Entity    string      `json:"entity"` // "rule" or "pricing"
	EntityID  *string     `json:"entityId"`
	Action    string      `json:"action"` // "create", "update", "delete"
	Payload   interface{} `json:"payload"`
	CreatedAt time.Time   `json:"createdAt"`
}
