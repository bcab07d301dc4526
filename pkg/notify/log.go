package notify

import (
	"context"
	"log/slog"
)

// LogNotifier writes events to the structured log instead of a queue. Used
// when no queue is configured, typically local development.
type LogNotifier struct{}

// Make sure we conform to the interface
var _ Notifier = (*LogNotifier)(nil)

// Notify logs the event.
func (n *LogNotifier) Notify(ctx context.Context, event Event) error {
	slog.Info("notification", "type", event.Type, "userId", event.UserID, "dealId", event.DealID, "orderId", event.OrderID)
	return nil
}
