package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/contacts-service/internal/config"
	"github.com/deppfellow/contacts-service/internal/repository"
	"github.com/deppfellow/contacts-service/internal/server"
	"github.com/deppfellow/contacts-service/internal/service"
	"github.com/labstack/echo/v4"
)

func newHealthHandler(t *testing.T) *HealthHandler {
	t.Helper()

	s, err := server.New(&config.Config{Primary: config.Primary{Env: "test"}}, nil, nil)
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}
	services, err := service.NewServices(s, repository.NewRepositories(s))
	if err != nil {
		t.Fatalf("NewServices: %v", err)
	}
	return NewHealthHandler(s, services.Contact)
}

type healthResponse struct {
	Status      string                            `json:"status"`
	Environment string                            `json:"environment"`
	Checks      map[string]map[string]interface{} `json:"checks"`
}

func TestCheckHealthHealthy(t *testing.T) {
	h := newHealthHandler(t)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)
	if err := h.CheckHealth(c); err != nil {
		t.Fatalf("CheckHealth: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var body healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "healthy" || body.Environment != "test" {
		t.Fatalf("got %+v", body)
	}
	if body.Checks["repository"]["status"] != "healthy" {
		t.Fatalf("repository check: got %+v", body.Checks["repository"])
	}
}

func TestCheckHealthUnhealthyWhenPingFails(t *testing.T) {
	h := newHealthHandler(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil).WithContext(ctx)
	c := echo.New().NewContext(req, rec)
	if err := h.CheckHealth(c); err != nil {
		t.Fatalf("CheckHealth: %v", err)
	}

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want 503", rec.Code)
	}
	var body healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "unhealthy" || body.Checks["repository"]["status"] != "unhealthy" {
		t.Fatalf("got %+v", body)
	}
}
