package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/cardstack/pkg/domain/interfaces"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// ItemHandler serves the local read/saved state endpoints
type ItemHandler struct {
	readState interfaces.ReadStateStore
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(readState interfaces.ReadStateStore) *ItemHandler {
	return &ItemHandler{readState: readState}
}

type markReadRequest struct {
	ItemIDs []string `json:"item_ids"`
	Read    bool     `json:"read"`
}

type setSavedRequest struct {
	ItemIDs []string `json:"item_ids"`
	Saved   bool     `json:"saved"`
}

// HandleRead records the read state of a set of items
func (h *ItemHandler) HandleRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req markReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxlog.From(ctx).Warn("Failed to decode read state request", "error", err)
		writeError(w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}
	if len(req.ItemIDs) == 0 {
		writeError(w, goerr.New("item_ids is required"), http.StatusBadRequest)
		return
	}

	h.readState.MarkRead(req.ItemIDs, req.Read)
	writeJSON(ctx, w, map[string]string{"status": "success"})
}

// HandleSaved records the bookmark state of a set of items
func (h *ItemHandler) HandleSaved(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req setSavedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxlog.From(ctx).Warn("Failed to decode saved state request", "error", err)
		writeError(w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}
	if len(req.ItemIDs) == 0 {
		writeError(w, goerr.New("item_ids is required"), http.StatusBadRequest)
		return
	}

	h.readState.SetSaved(req.ItemIDs, req.Saved)
	writeJSON(ctx, w, map[string]string{"status": "success"})
}
