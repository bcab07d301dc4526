package notify

import "context"

// EventType labels the lifecycle moments that get pushed out to users.
type EventType string

const (
	EventRequestDenied   EventType = "request_denied"
	EventRequestAccepted EventType = "request_accepted"
	EventDealCompleted   EventType = "deal_completed"
)

// Event is a user-facing notification about a market lifecycle change.
type Event struct {
	Type      EventType `json:"type"`
	UserID    string    `json:"user_id"`
	OrderID   string    `json:"order_id,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	DealID    string    `json:"deal_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Notifier defines the interface for a component that delivers lifecycle
// notifications asynchronously.
type Notifier interface {
	// Notify enqueues an event for delivery.
	Notify(ctx context.Context, event Event) error
}
