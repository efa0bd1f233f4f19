package utils

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"garupa/db"
	"garupa/models"
)

// LogConfigChange records an administrative rule/pricing mutation for
// auditing. Runs in the background via SafeGo so admin requests don't
// wait on the audit write.
func LogConfigChange(entry models.ConfigAuditLog) {
	SafeGo(func() {
		payload, _ := json.Marshal(entry.Payload)

		_, err := db.Pool.Exec(context.Background(),
			`INSERT INTO config_audit_logs (id, entity, "entityId", action, payload, "createdAt")
			 VALUES (gen_random_uuid()::text, $1, $2, $3, $4, NOW())`,
			entry.Entity, entry.EntityID, entry.Action, payload,
		)

		if err != nil {
			Logger.Error("Failed to write config audit log", zap.Error(err))
		}
	})
}
