package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"garupa/utils"
)

// db.Pool is nil in this package's tests, so any database access would
// panic. A clean 400 therefore proves the whole payload is validated
// before the first write: a bad trailing field must never leave earlier
// fields half-applied.
func TestAdminUpdateRule_ValidatesBeforeWriting(t *testing.T) {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()
	r := gin.New()
	r.PUT("/rule/:id", AdminUpdateRule)

	cases := []struct {
		name string
		body string
	}{
		{"bad timeEnd after valid weekdays", `{"weekdays":[1,2,3],"timeEnd":"25:99"}`},
		{"bad surge after valid times", `{"timeStart":"08:00","timeEnd":"18:00","surgeMultiplier":-1}`},
		{"weekday out of range", `{"weekdays":[0]}`},
		{"malformed timeStart", `{"timeStart":"morning"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/rule/some-id", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}
