package stores

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"garupa/models"
)

// RuleStore reads availability rules and pricing settings from Postgres.
// It implements pricing.RuleSource and pricing.SettingsSource.
type RuleStore struct {
	db *pgxpool.Pool
}

func NewRuleStore(db *pgxpool.Pool) *RuleStore {
	return &RuleStore{db: db}
}

const ruleSelectCols = `id, service_type, region, weekdays, time_start, time_end, active, surge_multiplier, "createdAt", "updatedAt"`

func scanRule(scanner interface{ Scan(dest ...any) error }, r *models.AvailabilityRule) error {
	return scanner.Scan(&r.ID, &r.ServiceType, &r.Region, &r.Weekdays, &r.TimeStart, &r.TimeEnd,
		&r.Active, &r.SurgeMultiplier, &r.CreatedAt, &r.UpdatedAt)
}

// ActiveRules returns every active rule for the exact (service, region)
// pair. An empty result is a valid answer — the resolver treats it as
// region-unavailable.
func (s *RuleStore) ActiveRules(ctx context.Context, serviceType, region string) ([]models.AvailabilityRule, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+ruleSelectCols+` FROM availability_rules
		 WHERE service_type=$1 AND region=$2 AND active=TRUE`,
		serviceType, region)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.AvailabilityRule
	for rows.Next() {
		var r models.AvailabilityRule
		if err := scanRule(rows, &r); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

const settingsSelectCols = `id, service_type, price_per_km_active, price_per_km, fixed_price_active, fixed_price, fee_kind, fee_value, "createdAt", "updatedAt"`

func scanSettings(scanner interface{ Scan(dest ...any) error }, p *models.PricingSettings) error {
	return scanner.Scan(&p.ID, &p.ServiceType, &p.PricePerKmActive, &p.PricePerKm,
		&p.FixedPriceActive, &p.FixedPrice, &p.FeeKind, &p.FeeValue, &p.CreatedAt, &p.UpdatedAt)
}

// Settings returns the current pricing configuration for a service type.
// The most recently created row is authoritative. When none exists the
// documented defaults are inserted and returned, so a service type can be
// quoted before an admin ever touches it.
func (s *RuleStore) Settings(ctx context.Context, serviceType string) (models.PricingSettings, error) {
	var p models.PricingSettings
	err := scanSettings(s.db.QueryRow(ctx,
		`SELECT `+settingsSelectCols+` FROM pricing_settings
		 WHERE service_type=$1 ORDER BY "createdAt" DESC LIMIT 1`, serviceType), &p)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return models.PricingSettings{}, err
	}

	def := models.DefaultPricingSettings(serviceType)
	err = scanSettings(s.db.QueryRow(ctx,
		`INSERT INTO pricing_settings (id, service_type, price_per_km_active, price_per_km, fixed_price_active, fixed_price, fee_kind, fee_value)
		 VALUES (gen_random_uuid()::text, $1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+settingsSelectCols,
		def.ServiceType, def.PricePerKmActive, def.PricePerKm, def.FixedPriceActive,
		def.FixedPrice, def.FeeKind, def.FeeValue), &p)
	if err != nil {
		return models.PricingSettings{}, err
	}
	return p, nil
}
