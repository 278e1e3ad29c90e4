package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/cardstack/pkg/domain/interfaces"
	"github.com/m-mizutani/cardstack/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// CardHandler serves the card composition endpoints
type CardHandler struct {
	cardUC  interfaces.CardUseCase
	metrics *metrics
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardUC interfaces.CardUseCase, m *metrics) *CardHandler {
	return &CardHandler{
		cardUC:  cardUC,
		metrics: m,
	}
}

type composeEventRequest struct {
	Event       *model.Event   `json:"event"`
	ViewMode    model.ViewMode `json:"view_mode"`
	RepoIsKnown bool           `json:"repo_is_known"`
	IsFocused   bool           `json:"is_focused"`
}

type composeNotificationRequest struct {
	Notification *model.Notification `json:"notification"`
	ViewMode     model.ViewMode      `json:"view_mode"`
	RepoIsKnown  bool                `json:"repo_is_known"`
	IsFocused    bool                `json:"is_focused"`
}

// HandleEvent composes a card from one activity event
func (h *CardHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	var req composeEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode event card request", "error", err)
		writeError(w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}
	if req.Event == nil {
		writeError(w, goerr.New("event is required"), http.StatusBadRequest)
		return
	}

	card, err := h.cardUC.ComposeEventCard(ctx, req.Event, model.ComposeOptions{
		ViewMode:    req.ViewMode,
		RepoIsKnown: req.RepoIsKnown,
		IsFocused:   req.IsFocused,
	})
	if err != nil {
		logger.Warn("Failed to compose event card", "error", err, "event_id", req.Event.ID)
		h.metrics.composeFailures.WithLabelValues("event").Inc()
		writeError(w, err, http.StatusBadRequest)
		return
	}

	h.metrics.cardsComposed.WithLabelValues("event", string(req.ViewMode)).Inc()
	writeJSON(ctx, w, card)
}

// HandleNotification composes a card from one notification
func (h *CardHandler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	var req composeNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode notification card request", "error", err)
		writeError(w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}
	if req.Notification == nil {
		writeError(w, goerr.New("notification is required"), http.StatusBadRequest)
		return
	}

	card, err := h.cardUC.ComposeNotificationCard(ctx, req.Notification, model.ComposeOptions{
		ViewMode:    req.ViewMode,
		RepoIsKnown: req.RepoIsKnown,
		IsFocused:   req.IsFocused,
	})
	if err != nil {
		logger.Warn("Failed to compose notification card", "error", err, "notification_id", req.Notification.ID)
		h.metrics.composeFailures.WithLabelValues("notification").Inc()
		writeError(w, err, http.StatusBadRequest)
		return
	}

	h.metrics.cardsComposed.WithLabelValues("notification", string(req.ViewMode)).Inc()
	writeJSON(ctx, w, card)
}
