package notify

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavolohq/tavolo/internal/domain"
	"github.com/tavolohq/tavolo/internal/telemetry"
)

func newTestRelay(now func() time.Time) *Relay {
	r := NewRelay(telemetry.New(prometheus.NewRegistry()))
	if now != nil {
		r.WithClock(now)
	}
	return r
}

func Test_Emit_NewMessageReplacesPending(t *testing.T) {
	relay := newTestRelay(nil)

	relay.Emit("Added to cart", domain.SeveritySuccess)
	relay.Emit("Cart updated", domain.SeveritySuccess)

	msg, ok := relay.Current()
	require.True(t, ok)
	assert.Equal(t, "Cart updated", msg.Text, "M1 is discarded entirely, only M2 is visible")
}

func Test_Current_ExpiresAfterTTL(t *testing.T) {
	clock := time.Now()
	relay := newTestRelay(func() time.Time { return clock })

	relay.EmitFor("Removed from cart", domain.SeverityInfo, 3*time.Second)

	_, ok := relay.Current()
	require.True(t, ok)

	clock = clock.Add(3 * time.Second)
	_, ok = relay.Current()
	assert.False(t, ok, "message auto-dismisses once its display window elapses")
}

func Test_EmitFor_ClampsTTLToBand(t *testing.T) {
	relay := newTestRelay(nil)

	relay.EmitFor("short", domain.SeverityInfo, time.Second)
	msg, ok := relay.Current()
	require.True(t, ok)
	assert.Equal(t, MinTTL, msg.TTL)

	relay.EmitFor("long", domain.SeverityInfo, time.Minute)
	msg, ok = relay.Current()
	require.True(t, ok)
	assert.Equal(t, MaxTTL, msg.TTL)
}

func Test_Dismiss_DropsMessage(t *testing.T) {
	relay := newTestRelay(nil)

	relay.Emit("Cart cleared", domain.SeverityInfo)
	relay.Dismiss()

	_, ok := relay.Current()
	assert.False(t, ok)
}

func Test_ClearOnNavigate_PreventsStaleCrossPageMessages(t *testing.T) {
	relay := newTestRelay(nil)

	relay.Emit("Your order has been cancelled", domain.SeverityInfo)
	relay.ClearOnNavigate()

	_, ok := relay.Current()
	assert.False(t, ok)
}

func Test_InferSeverity_FallbackForUntaggedText(t *testing.T) {
	tests := []struct {
		text string
		want domain.Severity
	}{
		{"Could not update your cart", domain.SeverityError},
		{"Payment failed, try again", domain.SeverityError},
		{"Your promotion will expire soon", domain.SeverityWarning},
		{"Added to cart", domain.SeveritySuccess},
		{"Your order is on its way", domain.SeverityInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, InferSeverity(tt.text), tt.text)
	}
}

func Test_Emit_EmptySeverityUsesInference(t *testing.T) {
	relay := newTestRelay(nil)

	relay.Emit("Something failed badly", "")

	msg, ok := relay.Current()
	require.True(t, ok)
	assert.Equal(t, domain.SeverityError, msg.Severity)
}
