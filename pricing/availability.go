package pricing

import (
	"context"
	"time"

	"garupa/models"
)

// RuleSource supplies active availability rules for a (service, region)
// pair, typically backed by Postgres with a Redis cache in front.
type RuleSource interface {
	ActiveRules(ctx context.Context, serviceType, region string) ([]models.AvailabilityRule, error)
}

// SettingsSource supplies the current pricing settings for a service type.
type SettingsSource interface {
	Settings(ctx context.Context, serviceType string) (models.PricingSettings, error)
}

// Resolver decides whether a service can be offered in a region at a
// point in time, and at what surge multiplier. It holds no mutable state;
// every call re-reads from the rule source.
type Resolver struct {
	rules   RuleSource
	enabled map[string]bool
}

// NewResolver builds a resolver gated by the enabled service types from
// configuration. Services outside the list resolve to service-disabled
// without touching the store.
func NewResolver(rules RuleSource, enabledServices []string) *Resolver {
	enabled := make(map[string]bool, len(enabledServices))
	for _, s := range enabledServices {
		enabled[s] = true
	}
	return &Resolver{rules: rules, enabled: enabled}
}

// Resolve checks whether serviceType is offered in region at the given
// time (zero time means now).
//
// A fetch error and an empty rule set both yield region-unavailable:
// if the rules cannot be confirmed, the service is not offered. This is
// deliberately fail-closed; callers cannot distinguish the two cases.
func (r *Resolver) Resolve(ctx context.Context, serviceType, region string, at time.Time) models.AvailabilityResult {
	if !r.enabled[serviceType] {
		return models.AvailabilityResult{Available: false, Reason: models.ReasonServiceDisabled}
	}
	if at.IsZero() {
		at = time.Now()
	}

	rules, err := r.rules.ActiveRules(ctx, serviceType, region)
	if err != nil || len(rules) == 0 {
		return models.AvailabilityResult{Available: false, Reason: models.ReasonRegionUnavailable}
	}

	weekday := isoWeekday(at)
	clock := at.Format("15:04")

	matched := false
	surge := 0.0
	for _, rule := range rules {
		if !weekdayInMask(rule.Weekdays, weekday) {
			continue
		}
		// Inclusive on both ends: a rule ending "18:00" still matches
		// a request at exactly "18:00". Lexicographic compare is safe
		// because both sides are zero-padded "HH:MM".
		if clock < rule.TimeStart || clock > rule.TimeEnd {
			continue
		}
		m := 1.0
		if rule.SurgeMultiplier != nil {
			m = *rule.SurgeMultiplier
		}
		// Overlapping rules compose by taking the most aggressive
		// surge, never averaging or stacking.
		if !matched || m > surge {
			surge = m
		}
		matched = true
	}

	if !matched {
		return models.AvailabilityResult{Available: false, Reason: models.ReasonOutOfSchedule}
	}
	return models.AvailabilityResult{Available: true, SurgeMultiplier: &surge}
}

// AvailableServices resolves every known service type for the region and
// keeps the available ones. Each service is an independent lookup; there
// is no shared cache inside the call.
func (r *Resolver) AvailableServices(ctx context.Context, region string, at time.Time) []models.ServiceAvailability {
	available := []models.ServiceAvailability{}
	for _, serviceType := range models.AllServiceTypes {
		res := r.Resolve(ctx, serviceType, region, at)
		if !res.Available {
			continue
		}
		surge := 1.0
		if res.SurgeMultiplier != nil {
			surge = *res.SurgeMultiplier
		}
		available = append(available, models.ServiceAvailability{
			ServiceType:     serviceType,
			SurgeMultiplier: surge,
		})
	}
	return available
}

// isoWeekday maps Go's Sunday=0 convention to 1=Monday .. 7=Sunday.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func weekdayInMask(mask []int, weekday int) bool {
	for _, d := range mask {
		if d == weekday {
			return true
		}
	}
	return false
}
