package api

import (
	"net/http"

	"github.com/tavolohq/tavolo/internal/cart"
	"github.com/tavolohq/tavolo/internal/cartstore"
	"github.com/tavolohq/tavolo/internal/domain"
)

// CartHandler exposes cart reads and mutations.
type CartHandler struct {
	coordinator *cart.Coordinator
	store       *cartstore.Store
}

// NewCartHandler creates a cart handler.
func NewCartHandler(coordinator *cart.Coordinator, store *cartstore.Store) *CartHandler {
	return &CartHandler{coordinator: coordinator, store: store}
}

type cartView struct {
	Items       []domain.CartItem `json:"items"`
	TotalItems  int               `json:"totalItems"`
	TotalAmount int64             `json:"totalAmount"`
}

func viewOf(c domain.Cart) cartView {
	return cartView{
		Items:       c.Items,
		TotalItems:  c.TotalItems(),
		TotalAmount: c.TotalAmount(),
	}
}

// Get handles GET /api/cart. It refreshes the snapshot (debounced) and
// returns it with derived totals.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Refresh(r.Context()); err != nil {
		// Stale snapshot is still served; the error names the condition.
		respondJSON(w, http.StatusOK, map[string]any{
			"cart":  viewOf(h.store.Snapshot()),
			"stale": true,
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"cart": viewOf(h.store.Snapshot())})
}

type addItemRequest struct {
	ProductID           string `json:"productId"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions"`
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.ProductID == "" {
		respondError(w, r, domain.Invalid("cart.add", "productId is required"))
		return
	}

	if err := h.coordinator.Add(r.Context(), req.ProductID, req.Quantity, req.SpecialInstructions); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"cart": viewOf(h.store.Snapshot())})
}

type updateItemRequest struct {
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions"`
}

// UpdateItem handles PUT /api/cart/items/{id}. A quantity of zero removes
// the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.coordinator.Update(r.Context(), r.PathValue("id"), req.Quantity, req.SpecialInstructions); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"cart": viewOf(h.store.Snapshot())})
}

// RemoveItem handles DELETE /api/cart/items/{id}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.coordinator.Remove(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"cart": viewOf(h.store.Snapshot())})
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.coordinator.Clear(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"cart": viewOf(h.store.Snapshot())})
}
