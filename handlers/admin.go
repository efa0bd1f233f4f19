package handlers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"garupa/db"
	"garupa/models"
	"garupa/pricing"
	"garupa/stores"
	"garupa/utils"
)

// RegisterAdminRoutes defines all administrative API endpoints
func RegisterAdminRoutes(r *gin.Engine, adminMiddleware gin.HandlerFunc) {
	adminGroup := r.Group("/api/v1/admin")
	adminGroup.Use(adminMiddleware)
	{
		// Dashboard
		adminGroup.GET("/dashboard", AdminDashboard)

		// Availability Rule Management
		adminGroup.GET("/rules", AdminGetRules)
		adminGroup.GET("/rule/:id", AdminGetRuleDetail)
		adminGroup.POST("/rule", AdminCreateRule)
		adminGroup.PUT("/rule/:id", AdminUpdateRule)
		adminGroup.DELETE("/rule/:id", AdminDeactivateRule)

		// Pricing Settings Management
		adminGroup.GET("/pricing", AdminGetPricingSettings)
		adminGroup.PUT("/pricing", AdminUpsertPricingSettings)

		// Quote Preview — resolve + compute in one call
		adminGroup.POST("/preview", AdminPreviewQuote)

		// Audit trail
		adminGroup.GET("/audit-logs", AdminGetAuditLogs)
	}
}

// ══════════════════════════════════════════════════
// Admin Dashboard — config overview
// ══════════════════════════════════════════════════

// GET /api/v1/admin/dashboard
func AdminDashboard(c *gin.Context) {
	var totalRules, activeRules, totalRegions, settingsRows, auditToday int

	db.Pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM availability_rules`).Scan(&totalRules)
	db.Pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM availability_rules WHERE active=TRUE`).Scan(&activeRules)
	db.Pool.QueryRow(context.Background(), `SELECT COUNT(DISTINCT region) FROM availability_rules WHERE active=TRUE`).Scan(&totalRegions)
	db.Pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM pricing_settings`).Scan(&settingsRows)
	db.Pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM config_audit_logs WHERE DATE("createdAt")=CURRENT_DATE`).Scan(&auditToday)

	// Rule coverage per service type
	type ServiceStat struct {
		ServiceType string `json:"serviceType"`
		Rules       int    `json:"rules"`
		Regions     int    `json:"regions"`
	}
	stRows, _ := db.Pool.Query(context.Background(),
		`SELECT service_type, COUNT(*), COUNT(DISTINCT region)
		 FROM availability_rules WHERE active=TRUE GROUP BY service_type ORDER BY COUNT(*) DESC`)
	var serviceStats []ServiceStat
	if stRows != nil {
		defer stRows.Close()
		for stRows.Next() {
			var ss ServiceStat
			stRows.Scan(&ss.ServiceType, &ss.Rules, &ss.Regions)
			serviceStats = append(serviceStats, ss)
		}
	}
	if serviceStats == nil {
		serviceStats = []ServiceStat{}
	}

	// Recent config changes
	type RecentChange struct {
		Entity    string `json:"entity"`
		Action    string `json:"action"`
		CreatedAt string `json:"createdAt"`
	}
	rcRows, _ := db.Pool.Query(context.Background(),
		`SELECT entity, action, "createdAt" FROM config_audit_logs ORDER BY "createdAt" DESC LIMIT 5`)
	var recentChanges []RecentChange
	if rcRows != nil {
		defer rcRows.Close()
		for rcRows.Next() {
			var rc RecentChange
			var createdAt time.Time
			rcRows.Scan(&rc.Entity, &rc.Action, &createdAt)
			rc.CreatedAt = createdAt.Format(time.RFC3339)
			recentChanges = append(recentChanges, rc)
		}
	}
	if recentChanges == nil {
		recentChanges = []RecentChange{}
	}

	utils.RespondSuccess(c, http.StatusOK, "Dashboard stats", gin.H{
		"rules": gin.H{
			"total":   totalRules,
			"active":  activeRules,
			"regions": totalRegions,
		},
		"pricing": gin.H{
			"configured": settingsRows,
		},
		"audit": gin.H{
			"today": auditToday,
		},
		"serviceStats":  serviceStats,
		"recentChanges": recentChanges,
	})
}

// ══════════════════════════════════════════════════
// Admin: Availability Rule Management
// ══════════════════════════════════════════════════

// GET /api/v1/admin/rules?page=1&limit=20&region=...&service=...
func AdminGetRules(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	region := c.Query("region")
	service := c.Query("service")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	var where []string
	var args []interface{}
	if region != "" {
		args = append(args, region)
		where = append(where, fmt.Sprintf("region=$%d", len(args)))
	}
	if service != "" {
		args = append(args, service)
		where = append(where, fmt.Sprintf("service_type=$%d", len(args)))
	}
	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	db.Pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM availability_rules`+whereClause, args...).Scan(&total)

	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT id, service_type, region, weekdays, time_start, time_end, active, surge_multiplier, "createdAt", "updatedAt"
		 FROM availability_rules%s ORDER BY "createdAt" DESC LIMIT $%d OFFSET $%d`,
		whereClause, len(args)-1, len(args))

	rows, err := db.Pool.Query(context.Background(), query, args...)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch rules", err)
		return
	}
	defer rows.Close()

	var rules []models.AvailabilityRule
	for rows.Next() {
		var r models.AvailabilityRule
		rows.Scan(&r.ID, &r.ServiceType, &r.Region, &r.Weekdays, &r.TimeStart, &r.TimeEnd,
			&r.Active, &r.SurgeMultiplier, &r.CreatedAt, &r.UpdatedAt)
		rules = append(rules, r)
	}
	if rules == nil {
		rules = []models.AvailabilityRule{}
	}

	utils.RespondSuccess(c, http.StatusOK, "Availability rules", gin.H{
		"rules": rules,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GET /api/v1/admin/rule/:id
func AdminGetRuleDetail(c *gin.Context) {
	id := c.Param("id")
	var r models.AvailabilityRule
	err := db.Pool.QueryRow(context.Background(),
		`SELECT id, service_type, region, weekdays, time_start, time_end, active, surge_multiplier, "createdAt", "updatedAt"
		 FROM availability_rules WHERE id=$1`, id).
		Scan(&r.ID, &r.ServiceType, &r.Region, &r.Weekdays, &r.TimeStart, &r.TimeEnd,
			&r.Active, &r.SurgeMultiplier, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Rule not found", err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "Rule detail", gin.H{"rule": r})
}

func validWeekdays(weekdays []int) bool {
	if len(weekdays) == 0 {
		return false
	}
	for _, d := range weekdays {
		if d < 1 || d > 7 {
			return false
		}
	}
	return true
}

func validClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// POST /api/v1/admin/rule
func AdminCreateRule(c *gin.Context) {
	var body struct {
		ServiceType     string   `json:"serviceType" binding:"required"`
		Region          string   `json:"region" binding:"required"`
		Weekdays        []int    `json:"weekdays" binding:"required"`
		TimeStart       string   `json:"timeStart" binding:"required"`
		TimeEnd         string   `json:"timeEnd" binding:"required"`
		SurgeMultiplier *float64 `json:"surgeMultiplier"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	if !isKnownServiceType(body.ServiceType) {
		utils.RespondError(c, http.StatusBadRequest, "Unknown service type", nil)
		return
	}
	if !validWeekdays(body.Weekdays) {
		utils.RespondError(c, http.StatusBadRequest, "Weekdays must be within 1 (Monday) to 7 (Sunday)", nil)
		return
	}
	if !validClock(body.TimeStart) || !validClock(body.TimeEnd) {
		utils.RespondError(c, http.StatusBadRequest, "timeStart and timeEnd must be HH:MM", nil)
		return
	}
	if body.SurgeMultiplier != nil && *body.SurgeMultiplier < 0 {
		utils.RespondError(c, http.StatusBadRequest, "surgeMultiplier must be >= 0", nil)
		return
	}

	var id string
	err := db.Pool.QueryRow(context.Background(),
		`INSERT INTO availability_rules (id, service_type, region, weekdays, time_start, time_end, surge_multiplier)
		 VALUES (gen_random_uuid()::text, $1, $2, $3, $4, $5, $6) RETURNING id`,
		body.ServiceType, body.Region, body.Weekdays, body.TimeStart, body.TimeEnd, body.SurgeMultiplier).Scan(&id)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to create rule", err)
		return
	}

	stores.PublishConfigUpdate(c.Request.Context(), stores.ConfigUpdateEvent{
		Entity: "rule", ServiceType: body.ServiceType, Region: body.Region, Action: "create",
	})
	utils.LogConfigChange(models.ConfigAuditLog{Entity: "rule", EntityID: &id, Action: "create", Payload: body})

	utils.RespondSuccess(c, http.StatusCreated, "Rule created", gin.H{"id": id})
}

// PUT /api/v1/admin/rule/:id
func AdminUpdateRule(c *gin.Context) {
	ruleID := c.Param("id")
	var body struct {
		Weekdays        []int    `json:"weekdays"`
		TimeStart       *string  `json:"timeStart"`
		TimeEnd         *string  `json:"timeEnd"`
		Active          *bool    `json:"active"`
		SurgeMultiplier *float64 `json:"surgeMultiplier"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	// Validate every field before touching the row, so a bad trailing
	// field never leaves a half-applied update behind.
	if body.Weekdays != nil && !validWeekdays(body.Weekdays) {
		utils.RespondError(c, http.StatusBadRequest, "Weekdays must be within 1 (Monday) to 7 (Sunday)", nil)
		return
	}
	if body.TimeStart != nil && !validClock(*body.TimeStart) {
		utils.RespondError(c, http.StatusBadRequest, "timeStart must be HH:MM", nil)
		return
	}
	if body.TimeEnd != nil && !validClock(*body.TimeEnd) {
		utils.RespondError(c, http.StatusBadRequest, "timeEnd must be HH:MM", nil)
		return
	}
	if body.SurgeMultiplier != nil && *body.SurgeMultiplier < 0 {
		utils.RespondError(c, http.StatusBadRequest, "surgeMultiplier must be >= 0", nil)
		return
	}

	var serviceType, region string
	err := db.Pool.QueryRow(context.Background(),
		`SELECT service_type, region FROM availability_rules WHERE id=$1`, ruleID).
		Scan(&serviceType, &region)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Rule not found", err)
		return
	}

	set := []string{`"updatedAt"=NOW()`}
	var args []interface{}
	if body.Weekdays != nil {
		args = append(args, body.Weekdays)
		set = append(set, fmt.Sprintf("weekdays=$%d", len(args)))
	}
	if body.TimeStart != nil {
		args = append(args, *body.TimeStart)
		set = append(set, fmt.Sprintf("time_start=$%d", len(args)))
	}
	if body.TimeEnd != nil {
		args = append(args, *body.TimeEnd)
		set = append(set, fmt.Sprintf("time_end=$%d", len(args)))
	}
	if body.Active != nil {
		args = append(args, *body.Active)
		set = append(set, fmt.Sprintf("active=$%d", len(args)))
	}
	if body.SurgeMultiplier != nil {
		args = append(args, *body.SurgeMultiplier)
		set = append(set, fmt.Sprintf("surge_multiplier=$%d", len(args)))
	}

	args = append(args, ruleID)
	query := fmt.Sprintf(`UPDATE availability_rules SET %s WHERE id=$%d`,
		strings.Join(set, ", "), len(args))
	if _, err := db.Pool.Exec(context.Background(), query, args...); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to update rule", err)
		return
	}

	stores.PublishConfigUpdate(c.Request.Context(), stores.ConfigUpdateEvent{
		Entity: "rule", ServiceType: serviceType, Region: region, Action: "update",
	})
	utils.LogConfigChange(models.ConfigAuditLog{Entity: "rule", EntityID: &ruleID, Action: "update", Payload: body})

	utils.RespondSuccess(c, http.StatusOK, "Rule updated", nil)
}

// DELETE /api/v1/admin/rule/:id — rules are deactivated, never dropped,
// so the audit trail keeps its referent.
func AdminDeactivateRule(c *gin.Context) {
	ruleID := c.Param("id")

	var serviceType, region string
	err := db.Pool.QueryRow(context.Background(),
		`SELECT service_type, region FROM availability_rules WHERE id=$1`, ruleID).
		Scan(&serviceType, &region)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Rule not found", err)
		return
	}

	db.Pool.Exec(context.Background(),
		`UPDATE availability_rules SET active=FALSE, "updatedAt"=NOW() WHERE id=$1`, ruleID)

	stores.PublishConfigUpdate(c.Request.Context(), stores.ConfigUpdateEvent{
		Entity: "rule", ServiceType: serviceType, Region: region, Action: "delete",
	})
	utils.LogConfigChange(models.ConfigAuditLog{Entity: "rule", EntityID: &ruleID, Action: "delete", Payload: nil})

	utils.RespondSuccess(c, http.StatusOK, "Rule deactivated", nil)
}

// ══════════════════════════════════════════════════
// Admin: Pricing Settings Management
// ══════════════════════════════════════════════════

// GET /api/v1/admin/pricing
func AdminGetPricingSettings(c *gin.Context) {
	rows, err := db.Pool.Query(context.Background(),
		`SELECT DISTINCT ON (service_type)
		 id, service_type, price_per_km_active, price_per_km, fixed_price_active, fixed_price, fee_kind, fee_value, "createdAt", "updatedAt"
		 FROM pricing_settings ORDER BY service_type, "createdAt" DESC`)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch pricing settings", err)
		return
	}
	defer rows.Close()

	var settings []models.PricingSettings
	for rows.Next() {
		var p models.PricingSettings
		rows.Scan(&p.ID, &p.ServiceType, &p.PricePerKmActive, &p.PricePerKm,
			&p.FixedPriceActive, &p.FixedPrice, &p.FeeKind, &p.FeeValue, &p.CreatedAt, &p.UpdatedAt)
		settings = append(settings, p)
	}
	if settings == nil {
		settings = []models.PricingSettings{}
	}
	utils.RespondSuccess(c, http.StatusOK, "Pricing settings", gin.H{"settings": settings})
}

// PUT /api/v1/admin/pricing — replaces the current configuration for a
// service type (settings are replaced on edit, not versioned).
func AdminUpsertPricingSettings(c *gin.Context) {
	var body struct {
		ServiceType      string   `json:"serviceType" binding:"required"`
		PricePerKmActive bool     `json:"pricePerKmActive"`
		PricePerKm       float64  `json:"pricePerKm"`
		FixedPriceActive bool     `json:"fixedPriceActive"`
		FixedPrice       *float64 `json:"fixedPrice"`
		FeeKind          string   `json:"feeKind"`
		FeeValue         float64  `json:"feeValue"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	if !isKnownServiceType(body.ServiceType) {
		utils.RespondError(c, http.StatusBadRequest, "Unknown service type", nil)
		return
	}
	if body.FeeKind != models.FeeFixed && body.FeeKind != models.FeePercent {
		utils.RespondError(c, http.StatusBadRequest, `feeKind must be "fixed" or "percent"`, nil)
		return
	}
	if body.PricePerKm < 0 || (body.FixedPrice != nil && *body.FixedPrice < 0) {
		utils.RespondError(c, http.StatusBadRequest, "Prices must be non-negative", nil)
		return
	}

	var existingID string
	err := db.Pool.QueryRow(context.Background(),
		`SELECT id FROM pricing_settings WHERE service_type=$1 ORDER BY "createdAt" DESC LIMIT 1`,
		body.ServiceType).Scan(&existingID)

	if err == nil {
		_, err = db.Pool.Exec(context.Background(),
			`UPDATE pricing_settings SET price_per_km_active=$1, price_per_km=$2, fixed_price_active=$3,
			 fixed_price=$4, fee_kind=$5, fee_value=$6, "updatedAt"=NOW() WHERE id=$7`,
			body.PricePerKmActive, body.PricePerKm, body.FixedPriceActive,
			body.FixedPrice, body.FeeKind, body.FeeValue, existingID)
	} else {
		err = db.Pool.QueryRow(context.Background(),
			`INSERT INTO pricing_settings (id, service_type, price_per_km_active, price_per_km, fixed_price_active, fixed_price, fee_kind, fee_value)
			 VALUES (gen_random_uuid()::text, $1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			body.ServiceType, body.PricePerKmActive, body.PricePerKm, body.FixedPriceActive,
			body.FixedPrice, body.FeeKind, body.FeeValue).Scan(&existingID)
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to save pricing settings", err)
		return
	}

	stores.PublishConfigUpdate(c.Request.Context(), stores.ConfigUpdateEvent{
		Entity: "pricing", ServiceType: body.ServiceType, Action: "update",
	})
	utils.LogConfigChange(models.ConfigAuditLog{Entity: "pricing", EntityID: &existingID, Action: "update", Payload: body})

	utils.RespondSuccess(c, http.StatusOK, "Pricing settings saved", gin.H{"id": existingID})
}

// ══════════════════════════════════════════════════
// Admin: Quote Preview
// ══════════════════════════════════════════════════

// POST /api/v1/admin/preview — what a rider would be quoted, including
// the unavailability reason when the schedule says no.
func AdminPreviewQuote(c *gin.Context) {
	var body struct {
		ServiceType string  `json:"serviceType" binding:"required"`
		Region      string  `json:"region" binding:"required"`
		DistanceKm  float64 `json:"distanceKm"`
		At          string  `json:"at"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request", err)
		return
	}
	at, ok := parseAt(body.At)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "at must be an RFC3339 timestamp", nil)
		return
	}
	if math.IsNaN(body.DistanceKm) || math.IsInf(body.DistanceKm, 0) || body.DistanceKm < 0 {
		utils.RespondError(c, http.StatusBadRequest, "distanceKm must be a non-negative number", nil)
		return
	}

	availability := resolver.Resolve(c.Request.Context(), body.ServiceType, body.Region, at)

	settings, err := settingsSrc.Settings(c.Request.Context(), body.ServiceType)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to load pricing settings", err)
		return
	}

	surge := 1.0
	if availability.SurgeMultiplier != nil {
		surge = *availability.SurgeMultiplier
	}
	amount := pricing.ComputePrice(settings, body.DistanceKm, surge)
	cents := pricing.ToMinorUnits(amount)

	utils.RespondSuccess(c, http.StatusOK, "Quote preview", gin.H{
		"availability": availability,
		"settings":     settings,
		"quote": gin.H{
			"amount":      amount,
			"amountCents": cents,
			"display":     pricing.FormatMinorUnits(cents),
		},
	})
}

// ══════════════════════════════════════════════════
// Admin: Audit Trail
// ══════════════════════════════════════════════════

// GET /api/v1/admin/audit-logs?page=1&limit=20&entity=rule
func AdminGetAuditLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	entity := c.Query("entity")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	var args []interface{}
	whereClause := ""
	if entity != "" {
		args = append(args, entity)
		whereClause = " WHERE entity=$1"
	}

	var total int
	db.Pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM config_audit_logs`+whereClause, args...).Scan(&total)

	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT id, entity, "entityId", action, payload, "createdAt"
		 FROM config_audit_logs%s ORDER BY "createdAt" DESC LIMIT $%d OFFSET $%d`,
		whereClause, len(args)-1, len(args))

	rows, err := db.Pool.Query(context.Background(), query, args...)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch audit logs", err)
		return
	}
	defer rows.Close()

	var logs []models.ConfigAuditLog
	for rows.Next() {
		var l models.ConfigAuditLog
		rows.Scan(&l.ID, &l.Entity, &l.EntityID, &l.Action, &l.Payload, &l.CreatedAt)
		logs = append(logs, l)
	}
	if logs == nil {
		logs = []models.ConfigAuditLog{}
	}

	utils.RespondSuccess(c, http.StatusOK, "Audit logs", gin.H{
		"logs": logs,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}
