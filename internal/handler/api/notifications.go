package api

import (
	"net/http"

	"github.com/tavolohq/tavolo/internal/notify"
)

// NotificationHandler exposes the relay's single slot to the UI.
type NotificationHandler struct {
	relay *notify.Relay
}

// NewNotificationHandler creates a notification handler.
func NewNotificationHandler(relay *notify.Relay) *NotificationHandler {
	return &NotificationHandler{relay: relay}
}

// Current handles GET /api/notifications/current.
func (h *NotificationHandler) Current(w http.ResponseWriter, r *http.Request) {
	msg, ok := h.relay.Current()
	if !ok {
		respondJSON(w, http.StatusOK, map[string]any{"message": nil})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": msg})
}

// Dismiss handles DELETE /api/notifications/current. The UI calls this on
// explicit dismissal and on every view navigation.
func (h *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.relay.Dismiss()
	respondJSON(w, http.StatusNoContent, nil)
}
