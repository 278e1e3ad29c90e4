package http_test

import (
	"context"
	"net/http"
	"testing"

	controller "github.com/m-mizutani/cardstack/pkg/controller/http"
	"github.com/m-mizutani/cardstack/pkg/infra/memory"
	"github.com/m-mizutani/cardstack/pkg/infra/theme"
	"github.com/m-mizutani/cardstack/pkg/usecase"
)

func TestItemEndpoints(t *testing.T) {
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

	w := postJSON(t, server.Handler, "/api/v1/items/read", `{"item_ids": ["a", "b"], "read": true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Status code = %v, want %v (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}

	if !store.IsRead("a") || !store.IsRead("b") {
		t.Error("Items a and b should be read")
	}

	w = postJSON(t, server.Handler, "/api/v1/items/read", `{"item_ids": ["a"], "read": false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Status code = %v, want %v", w.Code, http.StatusOK)
	}
	if store.IsRead("a") {
		t.Error("Item a should be unread again")
	}
	if !store.IsRead("b") {
		t.Error("Item b should stay read")
	}

	w = postJSON(t, server.Handler, "/api/v1/items/saved", `{"item_ids": ["c"], "saved": true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Status code = %v, want %v", w.Code, http.StatusOK)
	}
	if !store.IsSaved("c") {
		t.Error("Item c should be saved")
	}

	w = postJSON(t, server.Handler, "/api/v1/items/read", `{"read": true}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Empty item_ids status = %v, want %v", w.Code, http.StatusBadRequest)
	}
}
