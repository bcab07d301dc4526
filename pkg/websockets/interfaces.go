package websockets

import "context"

// ConnectionManager tracks the live market feed subscribers. Implementations
// are keyed by the transport's connection id (API Gateway connection id, or
// a generated id for in-process connections).
type ConnectionManager interface {
	AddConnection(ctx context.Context, connectionID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
}

// Publisher fans a market event out to every connected client. Delivery is
// best effort; a Publish error means the broadcast could not start at all.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}
