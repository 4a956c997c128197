// Package order validates and requests user-initiated order status
// transitions. Kitchen-side transitions (preparing, out_for_delivery) are
// server-driven and only ever observed here.
package order

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tavolohq/tavolo/internal/auth"
	"github.com/tavolohq/tavolo/internal/domain"
	"github.com/tavolohq/tavolo/internal/notify"
	"github.com/tavolohq/tavolo/internal/telemetry"
)

// Service issues order reads and transition requests to the remote order
// collaborator. Implemented by the remote order client.
type Service interface {
	Get(ctx context.Context, orderID string) (domain.Order, error)
	Cancel(ctx context.Context, orderID, feedback string) (domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.Order, error)
	ConfirmDelivery(ctx context.Context, orderID, feedback string) (domain.Order, error)
}

// TransitionResult reports the outcome of a requested transition.
// Unconfirmed means every remote path failed: Order then carries the
// locally-advanced status for retry presentation, but the server never
// acknowledged it and the controller's observed state is unchanged.
type TransitionResult struct {
	Order       domain.Order
	Unconfirmed bool
}

// Controller requests user-initiated order lifecycle transitions.
//
// It keeps the last observed state per order so a request against an
// order already in a final state is rejected locally, before any network
// call.
type Controller struct {
	svc     Service
	session auth.Session
	relay   *notify.Relay
	metrics *telemetry.Metrics
	logger  *slog.Logger

	mu       sync.Mutex
	observed map[string]domain.Order
}

// NewController wires an order lifecycle controller.
func NewController(svc Service, session auth.Session, relay *notify.Relay, metrics *telemetry.Metrics, logger *slog.Logger) *Controller {
	return &Controller{
		svc:      svc,
		session:  session,
		relay:    relay,
		metrics:  metrics,
		logger:   logger,
		observed: make(map[string]domain.Order),
	}
}

// Get fetches an order and records its observed state.
func (c *Controller) Get(ctx context.Context, orderID string) (domain.Order, error) {
	o, err := c.svc.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, domain.SyncFailure(err, "order.get", "Could not load the order")
	}
	c.observe(o)
	return o, nil
}

// RequestCancellation asks the backend to cancel an order. Valid only
// while the order is pending or preparing.
//
// The dedicated cancel endpoint is tried first; if it declines, the
// generic status endpoint is asked for cancelled. When both fail the
// request surfaces an EUNCONFIRMED error rather than a simulated
// success; the result still carries the locally-advanced copy so the UI
// can offer a retry.
func (c *Controller) RequestCancellation(ctx context.Context, orderID, feedback string) (TransitionResult, error) {
	current, err := c.validate(ctx, orderID, domain.OrderStatus.CanCancel, domain.ErrCancelNotAllowed)
	if err != nil {
		return TransitionResult{}, err
	}

	updated, err := c.svc.Cancel(ctx, orderID, feedback)
	if err != nil {
		c.logger.Warn("dedicated cancel endpoint declined, trying status fallback",
			slog.String("order_id", orderID), slog.Any("error", err))
		updated, err = c.svc.UpdateStatus(ctx, orderID, domain.OrderStatusCancelled)
	}
	if err != nil {
		return c.unconfirmed(current, domain.OrderStatusCancelled, "cancel", err)
	}

	c.observe(updated)
	c.metrics.OrderTransitions.WithLabelValues("cancel", "ok").Inc()
	c.relay.Emit("Your order has been cancelled", domain.SeverityInfo)
	return TransitionResult{Order: updated}, nil
}

// RequestDeliveryConfirmation acknowledges receipt of an order. Valid
// from confirmed, out_for_delivery and delivered (the last as an
// idempotent acknowledgement carrying feedback). Same dual-path contract
// as cancellation.
func (c *Controller) RequestDeliveryConfirmation(ctx context.Context, orderID, feedback string) (TransitionResult, error) {
	current, err := c.validate(ctx, orderID, domain.OrderStatus.CanConfirmReceipt, domain.ErrConfirmNotAllowed)
	if err != nil {
		return TransitionResult{}, err
	}

	updated, err := c.svc.ConfirmDelivery(ctx, orderID, feedback)
	if err != nil {
		c.logger.Warn("confirm-delivery endpoint declined, trying status fallback",
			slog.String("order_id", orderID), slog.Any("error", err))
		updated, err = c.svc.UpdateStatus(ctx, orderID, domain.OrderStatusDelivered)
	}
	if err != nil {
		return c.unconfirmed(current, domain.OrderStatusDelivered, "confirm", err)
	}

	c.observe(updated)
	c.metrics.OrderTransitions.WithLabelValues("confirm", "ok").Inc()
	c.relay.Emit("Thanks for confirming your delivery", domain.SeveritySuccess)
	return TransitionResult{Order: updated}, nil
}

// validate rejects a transition locally when the session is missing or
// the observed state forbids it. Unobserved orders are fetched once so
// the check runs against fresh state.
func (c *Controller) validate(ctx context.Context, orderID string, allowed func(domain.OrderStatus) bool, denied error) (domain.Order, error) {
	if !c.session.IsAuthenticated() {
		return domain.Order{}, domain.Unauthorized("order.transition", "Sign in to manage your orders")
	}

	c.mu.Lock()
	current, ok := c.observed[orderID]
	c.mu.Unlock()

	if !ok {
		var err error
		current, err = c.Get(ctx, orderID)
		if err != nil {
			return domain.Order{}, err
		}
	}

	if !allowed(current.Status) {
		c.metrics.OrderTransitions.WithLabelValues("rejected", "local").Inc()
		if current.Status.IsTerminal() {
			return domain.Order{}, domain.ErrOrderTerminal
		}
		return domain.Order{}, denied
	}
	return current, nil
}

// unconfirmed converts an exhausted dual-path failure into an
// EUNCONFIRMED result.
func (c *Controller) unconfirmed(current domain.Order, target domain.OrderStatus, transition string, cause error) (TransitionResult, error) {
	c.metrics.OrderTransitions.WithLabelValues(transition, "unconfirmed").Inc()

	err := domain.Unconfirmed(cause, "order."+transition, "The restaurant could not confirm the change. Please try again.")
	c.relay.Error(err)

	advanced := current
	advanced.Status = target
	return TransitionResult{Order: advanced, Unconfirmed: true}, err
}

func (c *Controller) observe(o domain.Order) {
	c.mu.Lock()
	c.observed[o.ID] = o
	c.mu.Unlock()
}
