package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavolohq/tavolo/internal/auth"
	"github.com/tavolohq/tavolo/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test", srv.URL, 5*time.Second, auth.NewTokenSession("secret-token"))
}

func Test_CartClient_FetchAttachesBearerToken(t *testing.T) {
	var gotAuth string
	client := NewCartClient(newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/cart", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"items": []map[string]any{
				{"_id": "l1", "productId": "p1", "unitPrice": 65000, "quantity": 2},
			},
		})
	}))

	items, err := client.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "l1", items[0].LineID)
	assert.Equal(t, int64(65000), items[0].UnitPrice)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func Test_CartClient_AddSendsPayloadAndReportsEcho(t *testing.T) {
	client := NewCartClient(newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cart/add", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "p1", payload["productId"])
		assert.Equal(t, float64(2), payload["quantity"])
		assert.Equal(t, "extra chili", payload["specialInstructions"])

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"items":   []map[string]any{{"_id": "l1", "productId": "p1", "unitPrice": 65000, "quantity": 2}},
		})
	}))

	result, echoed, err := client.Add(context.Background(), "p1", 2, "extra chili")

	require.NoError(t, err)
	assert.True(t, echoed)
	assert.Len(t, result.Items, 1)
}

func Test_CartClient_ResponseWithoutItemsIsNotEchoed(t *testing.T) {
	client := NewCartClient(newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))

	_, echoed, err := client.Remove(context.Background(), "p1")

	require.NoError(t, err)
	assert.False(t, echoed, "absent items field must not read as an empty cart")
}

func Test_Client_NonSuccessStatusIsStatusError(t *testing.T) {
	client := NewCartClient(newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "cart not found", http.StatusNotFound)
	}))

	_, err := client.Fetch(context.Background())

	require.Error(t, err)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Status)
}

func Test_OrderClient_CancelHitsDedicatedEndpoint(t *testing.T) {
	client := NewOrderClient(newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/orders/o1/cancel", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "cold food", payload["feedback"])

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"order":   map[string]any{"_id": "o1", "status": "cancelled"},
		})
	}))

	o, err := client.Cancel(context.Background(), "o1", "cold food")

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, o.Status)
}

func Test_OrderClient_UpdateStatusFallbackPath(t *testing.T) {
	client := NewOrderClient(newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/o1/status", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "cancelled", payload["status"])

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"order":   map[string]any{"_id": "o1", "status": "cancelled"},
		})
	}))

	o, err := client.UpdateStatus(context.Background(), "o1", domain.OrderStatusCancelled)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, o.Status)
}

func Test_PromotionClient_ListActiveQuery(t *testing.T) {
	client := NewPromotionClient(newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("isActive"))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"promotions": []map[string]any{
				{"code": "WELCOME10", "type": "percentage", "value": 10, "isActive": true},
			},
		})
	}))

	promos, err := client.ListActive(context.Background())

	require.NoError(t, err)
	require.Len(t, promos, 1)
	assert.Equal(t, "WELCOME10", promos[0].Code)
}

func Test_Client_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // every request now fails at the transport

	client := NewCartClient(NewClient("test", srv.URL, time.Second, auth.NewTokenSession("tok")))

	for i := 0; i < 5; i++ {
		_, err := client.Fetch(context.Background())
		require.Error(t, err)
	}

	_, err := client.Fetch(context.Background())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState, "open breaker rejects without dialing")
}
