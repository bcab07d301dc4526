package storage

import "context"

// WebSocketManager persists the connection ids of live market feed
// subscribers so deal and order events can be broadcast to them. It is the
// storage-side counterpart of the websockets package's ConnectionManager,
// widened with enumeration for fan-out.
type WebSocketManager interface {
	AddConnection(ctx context.Context, connectionID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
	GetAllConnections(ctx context.Context) ([]string, error)
}
