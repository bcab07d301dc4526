package orders

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/tradeguild/ethos-p2p/pkg/api"
	"github.com/tradeguild/ethos-p2p/pkg/mapping"
	"github.com/tradeguild/ethos-p2p/pkg/models"
	"github.com/tradeguild/ethos-p2p/pkg/session"
	"github.com/tradeguild/ethos-p2p/pkg/storage"
	"github.com/tradeguild/ethos-p2p/pkg/trading"
)

// OrdersHandler holds the dependencies for order book handlers.
type OrdersHandler struct {
	Registry *session.Registry
	Service  *trading.Service
}

// NewOrdersHandler creates a new OrdersHandler.
func NewOrdersHandler(registry *session.Registry, service *trading.Service) *OrdersHandler {
	return &OrdersHandler{Registry: registry, Service: service}
}

func (h *OrdersHandler) actor(r *http.Request) (*session.Manager, error) {
	return h.Registry.Get(r.Header.Get(api.UserIDHeader))
}

// CreateOrder handles the logic for placing a new order on the book.
func (h *OrdersHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		http.Error(w, "Unknown user", http.StatusUnauthorized)
		return
	}

	var newOrder api.NewOrder
	if err := json.NewDecoder(r.Body).Decode(&newOrder); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	order, err := h.Service.CreateOrder(r.Context(), actor, mapping.ToDomainNewOrder(&newOrder))
	if err != nil {
		switch {
		case errors.Is(err, trading.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, trading.ErrUnauthorized):
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			http.Error(w, fmt.Sprintf("Failed to create order: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(mapping.ToApiOrder(order)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListOrders handles the logic for browsing open orders of one side.
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orderType := models.OrderType(r.URL.Query().Get("type"))
	if orderType != models.BUY && orderType != models.SELL {
		http.Error(w, "Query parameter 'type' must be 'buy' or 'sell'", http.StatusBadRequest)
		return
	}

	orders, err := h.Service.ListOpenOrders(r.Context(), orderType)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve orders: %v", err), http.StatusInternalServerError)
		return
	}

	apiOrders := make([]*api.Order, len(orders))
	for i := range orders {
		apiOrders[i] = mapping.ToApiOrder(&orders[i])
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiOrders); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListMyOrders handles the logic for listing the acting user's own orders.
func (h *OrdersHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		http.Error(w, "Unknown user", http.StatusUnauthorized)
		return
	}

	orders, err := h.Service.ListOrdersByCreator(r.Context(), actor.Profile().ID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve orders: %v", err), http.StatusInternalServerError)
		return
	}

	apiOrders := make([]*api.Order, len(orders))
	for i := range orders {
		apiOrders[i] = mapping.ToApiOrder(&orders[i])
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiOrders); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetOrderById handles the logic for retrieving a single order.
func (h *OrdersHandler) GetOrderById(w http.ResponseWriter, r *http.Request, orderId openapi_types.UUID) {
	order, err := h.Service.GetOrder(r.Context(), orderId.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve order: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiOrder(order)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// SubmitRequest handles the logic for bidding on an open order.
func (h *OrdersHandler) SubmitRequest(w http.ResponseWriter, r *http.Request, orderId openapi_types.UUID) {
	actor, err := h.actor(r)
	if err != nil {
		http.Error(w, "Unknown user", http.StatusUnauthorized)
		return
	}

	var newReq api.NewFulfillmentRequest
	if err := json.NewDecoder(r.Body).Decode(&newReq); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	req, err := h.Service.SubmitRequest(r.Context(), actor, orderId.String(), newReq.Amount)
	if err != nil {
		switch {
		case errors.Is(err, trading.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, trading.ErrUnauthorized):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Order not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrOrderNotOpen):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to submit request: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(mapping.ToApiFulfillmentRequest(req)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// AcceptRequest handles the creator accepting a pending request, which
// commits the deal.
func (h *OrdersHandler) AcceptRequest(w http.ResponseWriter, r *http.Request, orderId, requestId openapi_types.UUID) {
	actor, err := h.actor(r)
	if err != nil {
		http.Error(w, "Unknown user", http.StatusUnauthorized)
		return
	}

	deal, err := h.Service.AcceptRequest(r.Context(), actor, orderId.String(), requestId.String())
	if err != nil {
		switch {
		case errors.Is(err, trading.ErrUnauthorized):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Order or request not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrOrderNotOpen), errors.Is(err, storage.ErrRequestNotPending):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to accept request: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(mapping.ToApiDeal(deal)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// DenyRequest handles the creator denying a pending request. The order
// stays open.
func (h *OrdersHandler) DenyRequest(w http.ResponseWriter, r *http.Request, orderId, requestId openapi_types.UUID) {
	actor, err := h.actor(r)
	if err != nil {
		http.Error(w, "Unknown user", http.StatusUnauthorized)
		return
	}

	req, err := h.Service.DenyRequest(r.Context(), actor, orderId.String(), requestId.String())
	if err != nil {
		switch {
		case errors.Is(err, trading.ErrUnauthorized):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Order or request not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrRequestNotPending):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to deny request: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiFulfillmentRequest(req)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
