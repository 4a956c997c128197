package api

import (
	"net/http"

	"github.com/tavolohq/tavolo/internal/domain"
	"github.com/tavolohq/tavolo/internal/promotion"
)

// PromotionHandler exposes promotion listing and discount preview.
type PromotionHandler struct {
	service *promotion.Service
}

// NewPromotionHandler creates a promotion handler.
func NewPromotionHandler(service *promotion.Service) *PromotionHandler {
	return &PromotionHandler{service: service}
}

// List handles GET /api/promotions.
func (h *PromotionHandler) List(w http.ResponseWriter, r *http.Request) {
	promos, err := h.service.ListActive(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"promotions": promos})
}

type previewRequest struct {
	Code     string `json:"code"`
	Subtotal int64  `json:"subtotal"`
}

// Preview handles POST /api/promotions/preview: evaluates a code against
// a subtotal without redeeming it.
func (h *PromotionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.Code == "" {
		respondError(w, r, domain.Invalid("promotion.preview", "code is required"))
		return
	}

	result, err := h.service.Apply(r.Context(), req.Code, req.Subtotal)
	if err != nil {
		if domain.IsCode(err, domain.EINVALID) && result.Reason != "" {
			respondJSON(w, http.StatusOK, map[string]any{
				"applied": false,
				"reason":  result.Reason,
			})
			return
		}
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"applied":     true,
		"code":        result.Promotion.Code,
		"discount":    result.Amount,
		"finalAmount": promotion.FinalAmount(req.Subtotal, result.Amount),
	})
}
