package utils

import (
	"context"
	"time"

	"go.uber.org/zap"

	"garupa/db"
)

// StartRetentionWorker runs a background process that cleans up old
// config audit logs. Runs once a day; retentionDays comes from config.
func StartRetentionWorker(ctx context.Context, retentionDays int) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				runCleanup(retentionDays)
			case <-ctx.Done():
				Logger.Info("Retention Worker shutting down...")
				return
			}
		}
	}()
}

func runCleanup(retentionDays int) {
	Logger.Info("Running Audit Log Retention Cleanup...")

	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	result, err := db.Pool.Exec(context.Background(),
		`DELETE FROM config_audit_logs WHERE "createdAt" < $1`, cutoff)

	if err != nil {
		Logger.Error("Audit Log Cleanup Failed", zap.Error(err))
		return
	}

	Logger.Info("Audit Log Cleanup Completed", zap.Int64("deletedRows", result.RowsAffected()))
}
