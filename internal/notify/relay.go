// Package notify implements the transient message surface consumed by the
// UI. The relay holds at most one message: a new emission immediately
// replaces any pending one, there is no queue.
package notify

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tavolohq/tavolo/internal/domain"
	"github.com/tavolohq/tavolo/internal/telemetry"
)

// Display durations. Emission sites may choose anything inside the band;
// out-of-band values are clamped.
const (
	MinTTL     = 3 * time.Second
	MaxTTL     = 5 * time.Second
	DefaultTTL = 4 * time.Second
)

// Relay is the single-slot notification surface.
type Relay struct {
	metrics    *telemetry.Metrics
	now        func() time.Time
	defaultTTL time.Duration

	mu      sync.Mutex
	current *domain.NotificationMessage
}

// NewRelay creates an empty relay.
func NewRelay(metrics *telemetry.Metrics) *Relay {
	return &Relay{
		metrics:    metrics,
		now:        time.Now,
		defaultTTL: DefaultTTL,
	}
}

// WithDefaultTTL overrides the display duration used by Emit. Values
// outside the band are clamped at emission time.
func (r *Relay) WithDefaultTTL(ttl time.Duration) *Relay {
	if ttl > 0 {
		r.defaultTTL = ttl
	}
	return r
}

// WithClock overrides the time source. Test seam.
func (r *Relay) WithClock(now func() time.Time) *Relay {
	r.now = now
	return r
}

// Emit publishes a message with the default display duration, replacing
// any pending message.
func (r *Relay) Emit(text string, severity domain.Severity) {
	r.EmitFor(text, severity, r.defaultTTL)
}

// EmitFor publishes a message with an emission-site display duration.
// An empty severity falls back to keyword inference; emitters should tag
// explicitly and treat the inference as a legacy fallback only.
func (r *Relay) EmitFor(text string, severity domain.Severity, ttl time.Duration) {
	if severity == "" {
		severity = InferSeverity(text)
	}
	if ttl < MinTTL {
		ttl = MinTTL
	}
	if ttl > MaxTTL {
		ttl = MaxTTL
	}

	msg := domain.NotificationMessage{
		ID:        uuid.NewString(),
		Text:      text,
		Severity:  severity,
		CreatedAt: r.now(),
		TTL:       ttl,
	}

	r.mu.Lock()
	r.current = &msg
	r.mu.Unlock()

	r.metrics.NotificationsEmitted.WithLabelValues(string(severity)).Inc()
}

// Error publishes the user-facing message of a domain error.
func (r *Relay) Error(err error) {
	r.Emit(domain.ErrorMessage(err), domain.SeverityError)
}

// Current returns the pending message, expiring it first if its display
// window has elapsed.
func (r *Relay) Current() (domain.NotificationMessage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return domain.NotificationMessage{}, false
	}
	if !r.now().Before(r.current.ExpiresAt()) {
		r.current = nil
		return domain.NotificationMessage{}, false
	}
	return *r.current, true
}

// Dismiss drops the pending message.
func (r *Relay) Dismiss() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = nil
}

// ClearOnNavigate drops the pending message when the UI changes views,
// preventing stale cross-page notifications.
func (r *Relay) ClearOnNavigate() {
	r.Dismiss()
}

// InferSeverity guesses a severity from keyword substrings in the text.
// It exists only for untagged legacy emissions and is not authoritative;
// every current emission site tags explicitly.
func InferSeverity(text string) domain.Severity {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "fail") || strings.Contains(lower, "error") || strings.Contains(lower, "could not"):
		return domain.SeverityError
	case strings.Contains(lower, "warn") || strings.Contains(lower, "expire"):
		return domain.SeverityWarning
	case strings.Contains(lower, "success") || strings.Contains(lower, "added") || strings.Contains(lower, "updated") || strings.Contains(lower, "removed"):
		return domain.SeveritySuccess
	default:
		return domain.SeverityInfo
	}
}
