package api

import (
	"net/http"

	"github.com/tavolohq/tavolo/internal/domain"
	"github.com/tavolohq/tavolo/internal/order"
)

// OrderHandler exposes order reads and user-initiated transitions.
type OrderHandler struct {
	controller *order.Controller
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(controller *order.Controller) *OrderHandler {
	return &OrderHandler{controller: controller}
}

// Get handles GET /api/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.controller.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"order": o})
}

type transitionRequest struct {
	Feedback string `json:"feedback"`
}

// Cancel handles POST /api/orders/{id}/cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.controller.RequestCancellation(r.Context(), r.PathValue("id"), req.Feedback)
	if err != nil {
		if domain.IsCode(err, domain.EUNCONFIRMED) {
			respondJSON(w, http.StatusBadGateway, map[string]any{
				"order":       result.Order,
				"unconfirmed": true,
			})
			return
		}
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"order": result.Order})
}

// ConfirmDelivery handles POST /api/orders/{id}/confirm-delivery.
func (h *OrderHandler) ConfirmDelivery(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.controller.RequestDeliveryConfirmation(r.Context(), r.PathValue("id"), req.Feedback)
	if err != nil {
		if domain.IsCode(err, domain.EUNCONFIRMED) {
			respondJSON(w, http.StatusBadGateway, map[string]any{
				"order":       result.Order,
				"unconfirmed": true,
			})
			return
		}
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"order": result.Order})
}
