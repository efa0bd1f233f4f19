package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"garupa/models"
	"garupa/pricing"
	"garupa/utils"
)

type stubSources struct {
	rules    []models.AvailabilityRule
	settings models.PricingSettings
}

func (s stubSources) ActiveRules(_ context.Context, serviceType, region string) ([]models.AvailabilityRule, error) {
	var out []models.AvailabilityRule
	for _, r := range s.rules {
		if r.ServiceType == serviceType && r.Region == region {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s stubSources) Settings(_ context.Context, serviceType string) (models.PricingSettings, error) {
	return s.settings, nil
}

func surgePtr(v float64) *float64 { return &v }

func setupQuoteRouter(src stubSources) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()
	Init(pricing.NewResolver(src, models.AllServiceTypes), src)
	r := gin.New()
	r.POST("/quote", GetQuote)
	r.GET("/services", GetAvailableServices)
	return r
}

func allWeekRule(serviceType string, surge *float64) models.AvailabilityRule {
	return models.AvailabilityRule{
		ServiceType:     serviceType,
		Region:          "recife",
		Weekdays:        []int{1, 2, 3, 4, 5, 6, 7},
		TimeStart:       "00:00",
		TimeEnd:         "23:59",
		Active:          true,
		SurgeMultiplier: surge,
	}
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetQuote_DistancePricing(t *testing.T) {
	r := setupQuoteRouter(stubSources{
		rules: []models.AvailabilityRule{allWeekRule(models.ServiceMotoTaxi, nil)},
		settings: models.PricingSettings{
			ServiceType:      models.ServiceMotoTaxi,
			PricePerKmActive: true,
			PricePerKm:       2.5,
			FeeKind:          models.FeePercent,
			FeeValue:         10,
		},
	})

	w := postJSON(r, "/quote", `{"serviceType":"moto-taxi","region":"recife","distanceKm":10}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Available   bool    `json:"available"`
			Amount      float64 `json:"amount"`
			AmountCents int64   `json:"amountCents"`
			Display     string  `json:"display"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if !resp.Data.Available {
		t.Fatal("expected quote to be available")
	}
	if resp.Data.Amount != 27.50 || resp.Data.AmountCents != 2750 {
		t.Errorf("amount = %v (%d cents), want 27.50 (2750)", resp.Data.Amount, resp.Data.AmountCents)
	}
	if resp.Data.Display != "R$ 27,50" {
		t.Errorf("display = %q, want %q", resp.Data.Display, "R$ 27,50")
	}
}

func TestGetQuote_SurgeApplied(t *testing.T) {
	r := setupQuoteRouter(stubSources{
		rules: []models.AvailabilityRule{allWeekRule(models.ServiceMotoTaxi, surgePtr(2))},
		settings: models.PricingSettings{
			ServiceType:      models.ServiceMotoTaxi,
			PricePerKmActive: true,
			PricePerKm:       2.5,
			FeeKind:          models.FeeFixed,
		},
	})

	w := postJSON(r, "/quote", `{"serviceType":"moto-taxi","region":"recife","distanceKm":10}`)
	var resp struct {
		Data struct {
			Amount          float64 `json:"amount"`
			SurgeMultiplier float64 `json:"surgeMultiplier"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.SurgeMultiplier != 2 || resp.Data.Amount != 50.00 {
		t.Errorf("surge quote = %v at x%v, want 50.00 at x2", resp.Data.Amount, resp.Data.SurgeMultiplier)
	}
}

func TestGetQuote_UnavailableRegion(t *testing.T) {
	r := setupQuoteRouter(stubSources{})

	w := postJSON(r, "/quote", `{"serviceType":"moto-taxi","region":"nowhere","distanceKm":5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Data struct {
			Available bool   `json:"available"`
			Reason    string `json:"reason"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Available {
		t.Fatal("expected unavailable")
	}
	if resp.Data.Reason != models.ReasonRegionUnavailable {
		t.Errorf("reason = %q, want %q", resp.Data.Reason, models.ReasonRegionUnavailable)
	}
}

func TestGetQuote_RejectsBadDistance(t *testing.T) {
	r := setupQuoteRouter(stubSources{
		rules: []models.AvailabilityRule{allWeekRule(models.ServiceMotoTaxi, nil)},
	})

	for _, body := range []string{
		`{"serviceType":"moto-taxi","region":"recife","distanceKm":-3}`,
		`{"serviceType":"moto-taxi","region":"recife"}`,
	} {
		w := postJSON(r, "/quote", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
	}
}

func TestGetAvailableServices_FiltersUnavailable(t *testing.T) {
	r := setupQuoteRouter(stubSources{
		rules: []models.AvailabilityRule{
			allWeekRule(models.ServiceMotoTaxi, surgePtr(1.3)),
			allWeekRule(models.ServiceDeliveryBike, nil),
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/services?region=recife", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Data struct {
			Services []models.ServiceAvailability `json:"services"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(resp.Data.Services) != 2 {
		t.Fatalf("expected 2 services, got %+v", resp.Data.Services)
	}
	if resp.Data.Services[0].ServiceType != models.ServiceMotoTaxi || resp.Data.Services[0].SurgeMultiplier != 1.3 {
		t.Errorf("unexpected first service: %+v", resp.Data.Services[0])
	}
}
