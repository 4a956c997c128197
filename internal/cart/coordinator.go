// Package cart coordinates cart mutations against the remote cart
// service. Every operation either applies the collection echoed by the
// collaborator or falls back to an authoritative refresh; a remote
// failure always resynchronizes instead of trusting optimistic state.
package cart

import (
	"context"
	"log/slog"

	"github.com/tavolohq/tavolo/internal/auth"
	"github.com/tavolohq/tavolo/internal/cartstore"
	"github.com/tavolohq/tavolo/internal/domain"
	"github.com/tavolohq/tavolo/internal/notify"
	"github.com/tavolohq/tavolo/internal/remote"
	"github.com/tavolohq/tavolo/internal/telemetry"
)

// Mutator issues cart mutations to the remote collaborator. The boolean
// reports whether the response echoed the resulting item collection.
// Implemented by the remote cart client.
type Mutator interface {
	Add(ctx context.Context, productID string, quantity int, instructions string) (remote.MutationResult, bool, error)
	Update(ctx context.Context, productID string, quantity int, instructions string) (remote.MutationResult, bool, error)
	Remove(ctx context.Context, productID string) (remote.MutationResult, bool, error)
	Clear(ctx context.Context) error
}

// Coordinator exposes the cart operations consumed by the UI.
type Coordinator struct {
	mutator Mutator
	store   *cartstore.Store
	session auth.Session
	relay   *notify.Relay
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// NewCoordinator wires a cart coordinator.
func NewCoordinator(mutator Mutator, store *cartstore.Store, session auth.Session, relay *notify.Relay, metrics *telemetry.Metrics, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		mutator: mutator,
		store:   store,
		session: session,
		relay:   relay,
		metrics: metrics,
		logger:  logger,
	}
}

// Add puts quantity units of a product into the cart.
func (c *Coordinator) Add(ctx context.Context, productID string, quantity int, instructions string) error {
	if err := c.guard(); err != nil {
		return err
	}
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	result, echoed, err := c.mutator.Add(ctx, productID, quantity, instructions)
	if err != nil {
		return c.recover(ctx, "add", err)
	}

	c.apply(ctx, "add", result, echoed)
	c.relay.Emit("Added to cart", domain.SeveritySuccess)
	return nil
}

// Update changes a line's quantity and instructions. A quantity of zero
// or below means the line is gone and is redirected to Remove; the remote
// collaborator never sees an invalid quantity.
func (c *Coordinator) Update(ctx context.Context, itemID string, quantity int, instructions string) error {
	if quantity <= 0 {
		return c.Remove(ctx, itemID)
	}
	if err := c.guard(); err != nil {
		return err
	}

	item, err := c.resolve(itemID)
	if err != nil {
		return err
	}

	result, echoed, err := c.mutator.Update(ctx, item.ProductID, quantity, instructions)
	if err != nil {
		return c.recover(ctx, "update", err)
	}

	c.apply(ctx, "update", result, echoed)
	c.relay.Emit("Cart updated", domain.SeveritySuccess)
	return nil
}

// Remove deletes a line from the cart.
func (c *Coordinator) Remove(ctx context.Context, itemID string) error {
	if err := c.guard(); err != nil {
		return err
	}

	item, err := c.resolve(itemID)
	if err != nil {
		return err
	}

	result, echoed, err := c.mutator.Remove(ctx, item.ProductID)
	if err != nil {
		return c.recover(ctx, "remove", err)
	}

	c.apply(ctx, "remove", result, echoed)
	c.relay.Emit("Removed from cart", domain.SeveritySuccess)
	return nil
}

// Clear empties the cart.
func (c *Coordinator) Clear(ctx context.Context) error {
	if err := c.guard(); err != nil {
		return err
	}

	if err := c.mutator.Clear(ctx); err != nil {
		return c.recover(ctx, "clear", err)
	}

	c.store.Clear()
	c.metrics.CartMutations.WithLabelValues("clear", "ok").Inc()
	c.relay.Emit("Cart cleared", domain.SeverityInfo)
	return nil
}

// guard rejects mutations locally when there is no session. No network
// call is attempted.
func (c *Coordinator) guard() error {
	if !c.session.IsAuthenticated() {
		return domain.ErrAuthRequired
	}
	return nil
}

// resolve finds the target line by surrogate key first, then by catalog
// product ID. The fallback covers snapshots from before line keys
// existed; it lives here and nowhere else.
func (c *Coordinator) resolve(itemID string) (domain.CartItem, error) {
	item, ok := c.store.Snapshot().Find(itemID)
	if !ok {
		return domain.CartItem{}, domain.ErrCartItemNotFound
	}
	return item, nil
}

// apply installs the mutation outcome: the echoed collection when
// present, otherwise an authoritative refresh.
func (c *Coordinator) apply(ctx context.Context, op string, result remote.MutationResult, echoed bool) {
	if echoed {
		c.store.Replace(result.Items)
	} else if err := c.store.Refresh(ctx); err != nil {
		c.logger.Warn("fallback refresh failed after mutation",
			slog.String("op", op), slog.Any("error", err))
	}
	c.metrics.CartMutations.WithLabelValues(op, "ok").Inc()
}

// recover resynchronizes after a failed mutation and converts the failure
// into an ESYNC error surfaced through the relay.
func (c *Coordinator) recover(ctx context.Context, op string, cause error) error {
	c.metrics.CartMutations.WithLabelValues(op, "failed").Inc()
	if err := c.store.Refresh(ctx); err != nil {
		c.logger.Warn("resync refresh failed after mutation error",
			slog.String("op", op), slog.Any("error", err))
	}

	err := domain.SyncFailure(cause, "cart."+op, "Could not update your cart")
	c.relay.Error(err)
	return err
}
