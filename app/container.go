package app

import (
	"garupa/config"
	"garupa/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// App holds the resources shared across the service: validated config
// plus the Postgres and Redis handles. It is created once in main and
// passed down — no global singleton.
type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
}

// Initialize loads config, connects the stores and runs migrations.
func Initialize() *App {
	cfg := config.Load()

	db.Connect()
	db.Migrate()
	db.InitRedis()

	return &App{
		Config: cfg,
		DB:     db.Pool,
		Redis:  db.RedisClient,
	}
}

// Close gracefully shuts down all resources
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
}
