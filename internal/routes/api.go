// Package routes registers the engine's HTTP routes.
package routes

import (
	"net/http"

	"github.com/tavolohq/tavolo/internal/handler/api"
	"github.com/tavolohq/tavolo/internal/router"
)

// APIDeps contains the handlers for the storefront API.
type APIDeps struct {
	Cart          *api.CartHandler
	Orders        *api.OrderHandler
	Promotions    *api.PromotionHandler
	Notifications *api.NotificationHandler
	Metrics       http.Handler
}

// RegisterAPIRoutes registers the storefront API surface.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	// Cart
	r.Get("/api/cart", deps.Cart.Get)
	r.Post("/api/cart/items", deps.Cart.AddItem)
	r.Put("/api/cart/items/{id}", deps.Cart.UpdateItem)
	r.Delete("/api/cart/items/{id}", deps.Cart.RemoveItem)
	r.Delete("/api/cart", deps.Cart.Clear)

	// Orders
	r.Get("/api/orders/{id}", deps.Orders.Get)
	r.Post("/api/orders/{id}/cancel", deps.Orders.Cancel)
	r.Post("/api/orders/{id}/confirm-delivery", deps.Orders.ConfirmDelivery)

	// Promotions
	r.Get("/api/promotions", deps.Promotions.List)
	r.Post("/api/promotions/preview", deps.Promotions.Preview)

	// Notifications
	r.Get("/api/notifications/current", deps.Notifications.Current)
	r.Delete("/api/notifications/current", deps.Notifications.Dismiss)

	// Operational
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle(http.MethodGet, "/metrics", deps.Metrics)
}
