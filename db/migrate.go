package db

import (
	"context"
	"log"
)

// Migrate creates all tables if they don't exist, adds columns, indexes, and seeds default data.
// Safe to run multiple times — all operations are idempotent (IF NOT EXISTS / ON CONFLICT).
func Migrate() {
	sql := `
	CREATE EXTENSION IF NOT EXISTS pgcrypto;

	-- ═══════════════════════════════════════════
	-- AVAILABILITY RULES TABLE — weekly schedule per (service, region)
	-- ═══════════════════════════════════════════
	CREATE TABLE IF NOT EXISTS availability_rules (
		id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
		service_type TEXT NOT NULL,
		region TEXT NOT NULL,
		weekdays INTEGER[] NOT NULL DEFAULT '{1,2,3,4,5,6,7}',
		time_start TEXT NOT NULL DEFAULT '00:00',
		time_end TEXT NOT NULL DEFAULT '23:59',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		surge_multiplier DOUBLE PRECISION,
		"createdAt" TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		"updatedAt" TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	ALTER TABLE availability_rules ADD COLUMN IF NOT EXISTS surge_multiplier DOUBLE PRECISION;

	-- ═══════════════════════════════════════════
	-- PRICING SETTINGS TABLE — one current row per service type
	-- (latest "createdAt" wins when duplicates exist)
	-- ═══════════════════════════════════════════
	CREATE TABLE IF NOT EXISTS pricing_settings (
		id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
		service_type TEXT NOT NULL,
		price_per_km_active BOOLEAN NOT NULL DEFAULT TRUE,
		price_per_km DOUBLE PRECISION NOT NULL DEFAULT 2.5,
		fixed_price_active BOOLEAN NOT NULL DEFAULT FALSE,
		fixed_price DOUBLE PRECISION,
		fee_kind TEXT NOT NULL DEFAULT 'fixed',
		fee_value DOUBLE PRECISION NOT NULL DEFAULT 0,
		"createdAt" TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		"updatedAt" TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	-- ═══════════════════════════════════════════
	-- CONFIG AUDIT LOGS TABLE — who changed what, kept lightweight
	-- ═══════════════════════════════════════════
	CREATE TABLE IF NOT EXISTS config_audit_logs (
		id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
		entity TEXT NOT NULL,
		"entityId" TEXT,
		action TEXT NOT NULL,
		payload JSONB,
		"createdAt" TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	-- Seed a permissive default schedule for moto-taxi in the pilot
	-- region so a fresh install can quote immediately.
	INSERT INTO availability_rules (id, service_type, region, weekdays, time_start, time_end, active)
	SELECT gen_random_uuid()::text, 'moto-taxi', 'recife', '{1,2,3,4,5,6,7}', '06:00', '23:00', TRUE
	WHERE NOT EXISTS (SELECT 1 FROM availability_rules WHERE service_type='moto-taxi' AND region='recife');

	-- ═══════════════════════════════════════════
	-- INDEXES — optimized for all API queries
	-- ═══════════════════════════════════════════
	-- Resolver hot path: exact (service, region) with active=TRUE
	CREATE INDEX IF NOT EXISTS idx_rules_service_region ON availability_rules(service_type, region) WHERE active=TRUE;
	CREATE INDEX IF NOT EXISTS idx_rules_region ON availability_rules(region);
	CREATE INDEX IF NOT EXISTS idx_rules_created ON availability_rules("createdAt");

	-- Settings lookup: latest row per service type
	CREATE INDEX IF NOT EXISTS idx_pricing_service_created ON pricing_settings(service_type, "createdAt" DESC);

	-- Audit dashboard & retention worker
	CREATE INDEX IF NOT EXISTS idx_audit_entity ON config_audit_logs(entity);
	CREATE INDEX IF NOT EXISTS idx_audit_created ON config_audit_logs("createdAt");
	`

	_, err := Pool.Exec(context.Background(), sql)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Database migration completed successfully")
}
