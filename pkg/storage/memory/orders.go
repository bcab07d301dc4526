package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tradeguild/ethos-p2p/pkg/models"
	"github.com/tradeguild/ethos-p2p/pkg/storage"
)

// CreateOrder stores a new order, completing it with server-side details.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = uuid.New().String()
	order.Status = models.OrderOpen
	order.CreatedAt = time.Now()
	if order.Requests == nil {
		order.Requests = []models.FulfillmentRequest{}
	}

	s.orders[order.ID] = copyOrder(order)
	return copyOrder(order), nil
}

// GetOrder retrieves an order by its ID.
func (s *Store) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyOrder(order), nil
}

// ListOpenOrders retrieves all open orders of the given type, newest first.
func (s *Store) ListOpenOrders(ctx context.Context, orderType models.OrderType) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Order
	for _, order := range s.orders {
		if order.Status == models.OrderOpen && order.Type == orderType {
			out = append(out, *copyOrder(order))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ListOrdersByCreator retrieves all orders created by a specific user, newest first.
func (s *Store) ListOrdersByCreator(ctx context.Context, creatorID string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Order
	for _, order := range s.orders {
		if order.CreatorID == creatorID {
			out = append(out, *copyOrder(order))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// AppendRequest appends a pending fulfillment request to an open order.
func (s *Store) AppendRequest(ctx context.Context, req *models.FulfillmentRequest) (*models.FulfillmentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[req.OrderID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if order.Status != models.OrderOpen {
		return nil, storage.ErrOrderNotOpen
	}

	req.ID = uuid.New().String()
	req.Status = models.RequestPending
	req.CreatedAt = time.Now()

	order.Requests = append(order.Requests, *req)
	out := *req
	return &out, nil
}

// DenyRequest transitions a pending request to denied.
func (s *Store) DenyRequest(ctx context.Context, orderID, requestID string) (*models.FulfillmentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil, storage.ErrNotFound
	}

	for i := range order.Requests {
		if order.Requests[i].ID != requestID {
			continue
		}
		if order.Requests[i].Status != models.RequestPending {
			return nil, storage.ErrRequestNotPending
		}
		order.Requests[i].Status = models.RequestDenied
		out := order.Requests[i]
		return &out, nil
	}
	return nil, storage.ErrNotFound
}

// RefreshCreatorScore updates the creator snapshot score on an order.
func (s *Store) RefreshCreatorScore(ctx context.Context, orderID string, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return storage.ErrNotFound
	}
	order.Creator.EthosScore = score
	return nil
}
