package obs_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"frontdesk/internal/infra/obs"
)

func newProbeRouter(health obs.Health) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(obs.RequestID())
	router.GET("/livez", health.Live)
	router.GET("/readyz", health.Ready)
	return router
}

func TestLivenessAlwaysUp(t *testing.T) {
	router := newProbeRouter(obs.Health{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestReadinessReportsFailingCheck(t *testing.T) {
	health := obs.Health{Checks: map[string]func() error{
		"store": func() error { return errors.New("connection refused") },
	}}
	router := newProbeRouter(health)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "store") {
		t.Fatalf("body = %s, want failing check name", rec.Body.String())
	}
}

func TestRequestIDEchoedAndGenerated(t *testing.T) {
	router := newProbeRouter(obs.Health{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	req.Header.Set("X-Request-ID", "req-42")
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "req-42" {
		t.Fatalf("request id = %q, want req-42", got)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("request id must be generated when absent")
	}
}
