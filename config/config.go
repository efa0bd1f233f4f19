package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"garupa/models"
)

// Config holds all validated environment variables. It is built once in
// main and handed to the components that need it — nothing here is
// mutated after Load returns.
type Config struct {
	Port              string
	DBURL             string
	RedisURL          string
	AdminSecret       string
	AccessTokenSecret string

	// EnabledServices gates which service types the platform exposes.
	// Disabled services resolve as service-disabled everywhere.
	EnabledServices []string

	// RuleCacheTTL bounds how stale a cached rule/settings read may be.
	RuleCacheTTL time.Duration

	// AuditRetentionDays controls the config audit log cleanup worker.
	AuditRetentionDays int
}

// Load reads and validates the environment. Missing required keys are
// fatal at startup rather than surfacing mid-request.
func Load() Config {
	cfg := Config{
		Port:               getDef("PORT", "8000"),
		DBURL:              getReq("DATABASE_URL"),
		RedisURL:           getDef("REDIS_ADDR", "localhost:6379"),
		AdminSecret:        getReq("ADMIN_SECRET"),
		AccessTokenSecret:  getReq("ACCESS_TOKEN_SECRET"),
		EnabledServices:    parseServices(os.Getenv("ENABLED_SERVICES")),
		RuleCacheTTL:       getDefDuration("RULE_CACHE_TTL", 30*time.Second),
		AuditRetentionDays: getDefInt("AUDIT_RETENTION_DAYS", 30),
	}
	return cfg
}

// parseServices reads a comma-separated service list, keeping only known
// service types. Empty input enables everything.
func parseServices(raw string) []string {
	if raw == "" {
		return append([]string(nil), models.AllServiceTypes...)
	}
	known := make(map[string]bool, len(models.AllServiceTypes))
	for _, s := range models.AllServiceTypes {
		known[s] = true
	}
	var enabled []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if known[s] {
			enabled = append(enabled, s)
		} else if s != "" {
			log.Printf("Ignoring unknown service type in ENABLED_SERVICES: %q", s)
		}
	}
	return enabled
}

func getReq(key string) string {
	val := os.Getenv(key)
	if val == "" {
		log.Fatalf("FATAL: Environment variable %s is required but missing", key)
	}
	return val
}

func getDef(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getDefInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return def
}

func getDefDuration(key string, def time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return def
}
