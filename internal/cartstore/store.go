// Package cartstore owns the local cart snapshot. The snapshot is the
// single shared mutable resource of the engine: every consumer reads
// through this store and never mutates cart state directly. Updates are
// full atomic replacements; consumers never observe partial state.
package cartstore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tavolohq/tavolo/internal/auth"
	"github.com/tavolohq/tavolo/internal/domain"
	"github.com/tavolohq/tavolo/internal/telemetry"
)

// DefaultDebounce is the minimum interval between authoritative fetches.
// Rapid UI triggers (window refocus plus mount) collapse into one call.
const DefaultDebounce = 500 * time.Millisecond

// Fetcher retrieves the authoritative cart contents. Implemented by the
// remote cart client.
type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.CartItem, error)
}

// Listener observes snapshot replacements.
type Listener func(cart domain.Cart)

// Store holds the last-known-good cart snapshot.
//
// A monotonic sequence number is issued per fetch and checked before a
// response is applied, so a late-arriving superseded response is
// deterministically discarded rather than racing last-write-wins.
type Store struct {
	fetcher  Fetcher
	session  auth.Session
	logger   *slog.Logger
	metrics  *telemetry.Metrics
	debounce time.Duration
	now      func() time.Time

	mu        sync.Mutex
	cart      domain.Cart
	lastFetch time.Time
	seq       uint64
	listeners []Listener
}

// Option configures a Store.
type Option func(*Store)

// WithDebounce overrides the refresh debounce window.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) { s.debounce = d }
}

// WithClock overrides the time source. Test seam.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store. The snapshot starts empty; the first authenticated
// Refresh populates it.
func New(fetcher Fetcher, session auth.Session, logger *slog.Logger, metrics *telemetry.Metrics, opts ...Option) *Store {
	s := &Store{
		fetcher:  fetcher,
		session:  session,
		logger:   logger,
		metrics:  metrics,
		debounce: DefaultDebounce,
		now:      time.Now,
		cart:     domain.Cart{Items: []domain.CartItem{}},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers a listener invoked after every snapshot
// replacement. Listeners are called outside the store lock.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Snapshot returns the current cart. The returned value is a copy;
// callers cannot mutate store state through it.
func (s *Store) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Refresh fetches the authoritative cart and replaces the snapshot.
//
// Calls within the debounce window of the last issued fetch are no-ops.
// When unauthenticated the snapshot is forced empty with no network call.
// On failure the previous snapshot is retained and an ESYNC error is
// returned; stale totals are surfaced, not silently trusted.
func (s *Store) Refresh(ctx context.Context) error {
	if !s.session.IsAuthenticated() {
		s.Clear()
		return nil
	}

	s.mu.Lock()
	now := s.now()
	if !s.lastFetch.IsZero() && now.Sub(s.lastFetch) < s.debounce {
		s.mu.Unlock()
		s.metrics.CartRefreshSuppressed.Inc()
		return nil
	}
	s.lastFetch = now
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	items, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.metrics.CartSyncFailures.Inc()
		return domain.SyncFailure(err, "cart.refresh", "Could not refresh your cart")
	}

	if !s.applySeq(seq, items) {
		s.metrics.CartStaleDiscarded.Inc()
		s.logger.Debug("discarding superseded cart response", slog.Uint64("seq", seq))
		return nil
	}

	s.metrics.CartRefreshes.Inc()
	return nil
}

// Replace installs items as the new snapshot, superseding any in-flight
// refresh. Used when a mutation response echoes the resulting collection.
func (s *Store) Replace(items []domain.CartItem) {
	s.mu.Lock()
	s.seq++
	s.replaceLocked(items)
	cart, listeners := s.copyLocked(), s.listeners
	s.mu.Unlock()

	s.notify(cart, listeners)
}

// Clear forces the snapshot empty. Invoked on logout, explicit clear and
// every unauthenticated refresh.
func (s *Store) Clear() {
	s.Replace([]domain.CartItem{})
}

// BindSession subscribes the store to authentication transitions so the
// snapshot is cleared the moment the user logs out.
func (s *Store) BindSession(notifier auth.Notifier) {
	notifier.OnChange(func(authenticated bool) {
		if !authenticated {
			s.Clear()
		}
	})
}

// applySeq installs items only when seq is still the latest issued fetch.
func (s *Store) applySeq(seq uint64, items []domain.CartItem) bool {
	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return false
	}
	s.replaceLocked(items)
	cart, listeners := s.copyLocked(), s.listeners
	s.mu.Unlock()

	s.notify(cart, listeners)
	return true
}

func (s *Store) replaceLocked(items []domain.CartItem) {
	if items == nil {
		items = []domain.CartItem{}
	}
	s.cart = domain.Cart{
		Items:     items,
		UpdatedAt: s.now(),
	}
}

func (s *Store) copyLocked() domain.Cart {
	items := make([]domain.CartItem, len(s.cart.Items))
	copy(items, s.cart.Items)
	return domain.Cart{Items: items, UpdatedAt: s.cart.UpdatedAt}
}

func (s *Store) notify(cart domain.Cart, listeners []Listener) {
	for _, fn := range listeners {
		fn(cart)
	}
	s.metrics.CartValue.Observe(float64(cart.TotalAmount()))
}
