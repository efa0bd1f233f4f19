package handlers

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"garupa/models"
	"garupa/pricing"
	"garupa/utils"
)

var (
	resolver    *pricing.Resolver
	settingsSrc pricing.SettingsSource
)

// Init wires the pricing engine into the handler package. Must be called
// before any Register function.
func Init(res *pricing.Resolver, settings pricing.SettingsSource) {
	resolver = res
	settingsSrc = settings
}

// RegisterRiderRoutes defines all rider-facing API endpoints
func RegisterRiderRoutes(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	riderGroup := r.Group("/api/v1/rider")
	{
		riderGroup.GET("/services", authMiddleware, GetAvailableServices)
		riderGroup.GET("/availability", authMiddleware, CheckAvailability)
		riderGroup.POST("/quote", authMiddleware, GetQuote)
	}
}

// parseAt reads an optional RFC3339 timestamp; empty means "now" (the
// engine interprets the zero time).
func parseAt(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

// GET /api/v1/rider/services?region=...&at=...
func GetAvailableServices(c *gin.Context) {
	region := c.Query("region")
	if region == "" {
		utils.RespondError(c, http.StatusBadRequest, "region is required", nil)
		return
	}
	at, ok := parseAt(c.Query("at"))
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "at must be an RFC3339 timestamp", nil)
		return
	}

	services := resolver.AvailableServices(c.Request.Context(), region, at)
	utils.RespondSuccess(c, http.StatusOK, "Available services", gin.H{
		"region":   region,
		"services": services,
	})
}

// GET /api/v1/rider/availability?service=...&region=...&at=...
func CheckAvailability(c *gin.Context) {
	service := c.Query("service")
	region := c.Query("region")
	if service == "" || region == "" {
		utils.RespondError(c, http.StatusBadRequest, "service and region are required", nil)
		return
	}
	at, ok := parseAt(c.Query("at"))
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "at must be an RFC3339 timestamp", nil)
		return
	}

	result := resolver.Resolve(c.Request.Context(), service, region, at)
	utils.RespondSuccess(c, http.StatusOK, "Service availability", result)
}

// POST /api/v1/rider/quote
func GetQuote(c *gin.Context) {
	var body struct {
		ServiceType string   `json:"serviceType" binding:"required"`
		Region      string   `json:"region" binding:"required"`
		DistanceKm  *float64 `json:"distanceKm"`
		Origin      string   `json:"origin"`      // "lat,lng"
		Destination string   `json:"destination"` // "lat,lng"
		At          string   `json:"at"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	at, ok := parseAt(body.At)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "at must be an RFC3339 timestamp", nil)
		return
	}

	// The calculator trusts its inputs, so the distance is sanitized
	// here at the boundary.
	var distanceKm float64
	switch {
	case body.DistanceKm != nil:
		distanceKm = *body.DistanceKm
		if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
			utils.RespondError(c, http.StatusBadRequest, "distanceKm must be a non-negative number", nil)
			return
		}
	case body.Origin != "" && body.Destination != "":
		oLat, oLng := utils.ParseLatLng(body.Origin)
		dLat, dLng := utils.ParseLatLng(body.Destination)
		distanceKm = utils.CalculateDistance(oLat, oLng, dLat, dLng)
	default:
		utils.RespondError(c, http.StatusBadRequest, "Provide distanceKm or origin and destination", nil)
		return
	}

	availability := resolver.Resolve(c.Request.Context(), body.ServiceType, body.Region, at)
	if !availability.Available {
		utils.RespondSuccess(c, http.StatusOK, "Service not available", gin.H{
			"available": false,
			"reason":    availability.Reason,
		})
		return
	}

	settings, err := settingsSrc.Settings(c.Request.Context(), body.ServiceType)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to load pricing settings", err)
		return
	}

	surge := 1.0
	if availability.SurgeMultiplier != nil {
		surge = *availability.SurgeMultiplier
	}
	amount := pricing.ComputePrice(settings, distanceKm, surge)
	cents := pricing.ToMinorUnits(amount)

	utils.RespondSuccess(c, http.StatusOK, "Quote", gin.H{
		"available":       true,
		"serviceType":     body.ServiceType,
		"region":          body.Region,
		"distanceKm":      math.Round(distanceKm*100) / 100,
		"surgeMultiplier": surge,
		"amount":          amount,
		"amountCents":     cents,
		"display":         pricing.FormatMinorUnits(cents),
	})
}

// isKnownServiceType guards admin mutations against unknown service
// identifiers before they reach the store.
func isKnownServiceType(serviceType string) bool {
	for _, s := range models.AllServiceTypes {
		if s == serviceType {
			return true
		}
	}
	return false
}
