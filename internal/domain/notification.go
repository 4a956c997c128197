package domain

import "time"

// Severity classifies a notification for presentation.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// NotificationMessage is an ephemeral, single-slot UI message. It is owned
// solely by the notification relay and discarded on replacement, expiry,
// dismissal, or navigation.
type NotificationMessage struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	Severity  Severity      `json:"severity"`
	CreatedAt time.Time     `json:"createdAt"`
	TTL       time.Duration `json:"-"`
}

// ExpiresAt returns the instant the message auto-dismisses.
func (m NotificationMessage) ExpiresAt() time.Time {
	return m.CreatedAt.Add(m.TTL)
}
