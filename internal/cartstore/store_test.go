package cartstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavolohq/tavolo/internal/auth"
	"github.com/tavolohq/tavolo/internal/domain"
	"github.com/tavolohq/tavolo/internal/telemetry"
)

// mockFetcher implements Fetcher for testing
type mockFetcher struct {
	FetchFunc func(ctx context.Context) ([]domain.CartItem, error)
	calls     int
}

func (m *mockFetcher) Fetch(ctx context.Context) ([]domain.CartItem, error) {
	m.calls++
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}
	return []domain.CartItem{}, nil
}

// fakeClock is a manually advanced time source
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testItems() []domain.CartItem {
	return []domain.CartItem{
		{LineID: "l1", ProductID: "p1", ProductName: "Pho Bo", UnitPrice: 65000, Quantity: 2},
		{LineID: "l2", ProductID: "p2", ProductName: "Banh Mi", UnitPrice: 30000, Quantity: 1},
	}
}

func newTestStore(fetcher Fetcher, session auth.Session, opts ...Option) *Store {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := telemetry.New(prometheus.NewRegistry())
	return New(fetcher, session, logger, metrics, opts...)
}

func Test_Refresh_ReplacesSnapshot(t *testing.T) {
	fetcher := &mockFetcher{
		FetchFunc: func(ctx context.Context) ([]domain.CartItem, error) {
			return testItems(), nil
		},
	}
	store := newTestStore(fetcher, auth.NewTokenSession("tok"))

	require.NoError(t, store.Refresh(context.Background()))

	cart := store.Snapshot()
	assert.Equal(t, 3, cart.TotalItems())
	assert.Equal(t, int64(160000), cart.TotalAmount())
}

func Test_Refresh_DebouncedWithinWindow(t *testing.T) {
	fetcher := &mockFetcher{}
	clock := &fakeClock{t: time.Now()}
	session := auth.NewTokenSession("tok")
	store := newTestStore(fetcher, session, WithClock(clock.Now))

	require.NoError(t, store.Refresh(context.Background()))
	clock.Advance(100 * time.Millisecond)
	require.NoError(t, store.Refresh(context.Background()))

	assert.Equal(t, 1, fetcher.calls, "second refresh within 500ms must not hit the network")

	clock.Advance(500 * time.Millisecond)
	require.NoError(t, store.Refresh(context.Background()))
	assert.Equal(t, 2, fetcher.calls)
}

func Test_Refresh_UnauthenticatedForcesEmptyWithoutNetwork(t *testing.T) {
	fetcher := &mockFetcher{}
	store := newTestStore(fetcher, auth.NewTokenSession(""))

	require.NoError(t, store.Refresh(context.Background()))

	assert.Equal(t, 0, fetcher.calls)
	assert.Empty(t, store.Snapshot().Items)
}

func Test_Refresh_FailureRetainsPreviousSnapshot(t *testing.T) {
	fail := false
	fetcher := &mockFetcher{
		FetchFunc: func(ctx context.Context) ([]domain.CartItem, error) {
			if fail {
				return nil, errors.New("gateway timeout")
			}
			return testItems(), nil
		},
	}
	clock := &fakeClock{t: time.Now()}
	store := newTestStore(fetcher, auth.NewTokenSession("tok"), WithClock(clock.Now))

	require.NoError(t, store.Refresh(context.Background()))
	clock.Advance(time.Second)

	fail = true
	err := store.Refresh(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.ESYNC))
	assert.Equal(t, 3, store.Snapshot().TotalItems(), "last-known-good snapshot survives the failure")
}

func Test_Refresh_SupersededResponseDiscarded(t *testing.T) {
	store := (*Store)(nil)
	fetcher := &mockFetcher{
		FetchFunc: func(ctx context.Context) ([]domain.CartItem, error) {
			// A mutation lands while this fetch is in flight.
			store.Replace(testItems())
			return []domain.CartItem{}, nil
		},
	}
	store = newTestStore(fetcher, auth.NewTokenSession("tok"))

	require.NoError(t, store.Refresh(context.Background()))

	assert.Equal(t, 3, store.Snapshot().TotalItems(),
		"the stale fetch response must not overwrite the newer replacement")
}

func Test_Clear_OnLogout(t *testing.T) {
	fetcher := &mockFetcher{
		FetchFunc: func(ctx context.Context) ([]domain.CartItem, error) {
			return testItems(), nil
		},
	}
	session := auth.NewTokenSession("tok")
	store := newTestStore(fetcher, session)
	store.BindSession(session)

	require.NoError(t, store.Refresh(context.Background()))
	require.NotEmpty(t, store.Snapshot().Items)

	session.SetToken("")

	assert.Empty(t, store.Snapshot().Items)
}

func Test_Subscribe_NotifiedOnReplacement(t *testing.T) {
	store := newTestStore(&mockFetcher{}, auth.NewTokenSession("tok"))

	var seen []int
	store.Subscribe(func(cart domain.Cart) {
		seen = append(seen, cart.TotalItems())
	})

	store.Replace(testItems())
	store.Clear()

	assert.Equal(t, []int{3, 0}, seen)
}
