package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	controller "github.com/m-mizutani/cardstack/pkg/controller/http"
	"github.com/m-mizutani/cardstack/pkg/domain/model"
	"github.com/m-mizutani/cardstack/pkg/infra/memory"
	"github.com/m-mizutani/cardstack/pkg/infra/theme"
	"github.com/m-mizutani/cardstack/pkg/usecase"
)

func newTestServer(t *testing.T) *controller.Server {
	t.Helper()
	ctx := context.Background()

	store, err := memory.NewReadStateStore(memory.DefaultSize)
	if err != nil {
		t.Fatalf("Failed to create read state store: %v", err)
	}

	uc := usecase.NewCard(store, theme.NewProvider(theme.Light()))

	server, err := controller.NewServer(ctx, uc, store, controller.WithAddr("localhost:0"))
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	return server
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status code = %v, want %v", w.Code, http.StatusOK)
	}

	var status model.HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if status.Status != "healthy" {
		t.Errorf("Status = %v, want healthy", status.Status)
	}

	if status.Service != "cardstack" {
		t.Errorf("Service = %v, want cardstack", status.Service)
	}

	if status.Version == "" {
		t.Error("Version should not be empty")
	}

	if status.Uptime == "" {
		t.Error("Uptime should not be empty")
	}
}
