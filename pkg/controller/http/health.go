package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/m-mizutani/cardstack/pkg/domain/model"
	"github.com/m-mizutani/cardstack/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
)

var startedAt = time.Now()

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	status := &model.HealthStatus{
		Status:  "healthy",
		Service: "cardstack",
		Version: types.Version,
		Uptime:  time.Since(startedAt).Round(time.Second).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}
