package storage

import (
	"context"

	"github.com/tradeguild/ethos-p2p/pkg/models"
)

// OrderReader defines the interface for reading order book data.
type OrderReader interface {
	// GetOrder retrieves an order by its ID.
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)

	// ListOpenOrders retrieves all open orders of the given type, newest first.
	ListOpenOrders(ctx context.Context, orderType models.OrderType) ([]models.Order, error)

	// ListOrdersByCreator retrieves all orders created by a specific user.
	ListOrdersByCreator(ctx context.Context, creatorID string) ([]models.Order, error)
}

// OrderManager defines the interface for creating orders and managing their
// fulfillment requests before a deal exists.
type OrderManager interface {
	// CreateOrder stores a new order and returns it with server-side fields set.
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)

	// AppendRequest appends a pending fulfillment request to an open order.
	AppendRequest(ctx context.Context, req *models.FulfillmentRequest) (*models.FulfillmentRequest, error)

	// DenyRequest transitions a pending request to denied. The order is not altered.
	DenyRequest(ctx context.Context, orderID, requestID string) (*models.FulfillmentRequest, error)

	// RefreshCreatorScore updates the creator snapshot score on an order.
	RefreshCreatorScore(ctx context.Context, orderID string, score int) error
}

// OrderStore combines the reader and manager interfaces.
type OrderStore interface {
	OrderReader
	OrderManager
}
