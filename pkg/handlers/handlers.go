package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	custommw "github.com/tradeguild/ethos-p2p/pkg/middleware"
	"github.com/tradeguild/ethos-p2p/pkg/session"
	"github.com/tradeguild/ethos-p2p/pkg/trading"

	dealshandler "github.com/tradeguild/ethos-p2p/pkg/handlers/deals"
	identityhandler "github.com/tradeguild/ethos-p2p/pkg/handlers/identity"
	ordershandler "github.com/tradeguild/ethos-p2p/pkg/handlers/orders"
	wshandler "github.com/tradeguild/ethos-p2p/pkg/handlers/websockets"
	"github.com/tradeguild/ethos-p2p/pkg/websockets"
)

// NewRouter wires every HTTP handler onto a chi router with structured
// request logging. The WebSocket handler is optional; pass nil when the
// market feed runs behind API Gateway instead of in-process.
func NewRouter(registry *session.Registry, service *trading.Service, connManager websockets.ConnectionManager, logger *slog.Logger) chi.Router {
	identity := identityhandler.NewIdentityHandler(registry)
	orders := ordershandler.NewOrdersHandler(registry, service)
	deals := dealshandler.NewDealsHandler(registry, service)

	router := chi.NewRouter()
	router.Use(custommw.RequestLogger(logger))

	router.Get("/tiers", identity.ListTiers)

	router.Route("/identity", func(r chi.Router) {
		r.Post("/connect", identity.Connect)
		r.Post("/refresh", identity.RefreshScore)
		r.Get("/profile", identity.GetProfile)
		r.Delete("/{platform}", func(w http.ResponseWriter, req *http.Request) {
			identity.Disconnect(w, req, chi.URLParam(req, "platform"))
		})
	})

	router.Route("/orders", func(r chi.Router) {
		r.Post("/", orders.CreateOrder)
		r.Get("/", orders.ListOrders)
		r.Get("/mine", orders.ListMyOrders)
		r.Get("/{orderId}", func(w http.ResponseWriter, req *http.Request) {
			orderId, ok := uuidParam(w, req, "orderId")
			if !ok {
				return
			}
			orders.GetOrderById(w, req, orderId)
		})
		r.Post("/{orderId}/requests", func(w http.ResponseWriter, req *http.Request) {
			orderId, ok := uuidParam(w, req, "orderId")
			if !ok {
				return
			}
			orders.SubmitRequest(w, req, orderId)
		})
		r.Post("/{orderId}/requests/{requestId}/accept", func(w http.ResponseWriter, req *http.Request) {
			orderId, ok := uuidParam(w, req, "orderId")
			if !ok {
				return
			}
			requestId, ok := uuidParam(w, req, "requestId")
			if !ok {
				return
			}
			orders.AcceptRequest(w, req, orderId, requestId)
		})
		r.Post("/{orderId}/requests/{requestId}/deny", func(w http.ResponseWriter, req *http.Request) {
			orderId, ok := uuidParam(w, req, "orderId")
			if !ok {
				return
			}
			requestId, ok := uuidParam(w, req, "requestId")
			if !ok {
				return
			}
			orders.DenyRequest(w, req, orderId, requestId)
		})
	})

	router.Route("/deals", func(r chi.Router) {
		r.Get("/", deals.ListMyDeals)
		r.Get("/{dealId}", func(w http.ResponseWriter, req *http.Request) {
			dealId, ok := uuidParam(w, req, "dealId")
			if !ok {
				return
			}
			deals.GetDealById(w, req, dealId)
		})
		r.Post("/{dealId}/messages", func(w http.ResponseWriter, req *http.Request) {
			dealId, ok := uuidParam(w, req, "dealId")
			if !ok {
				return
			}
			deals.PostMessage(w, req, dealId)
		})
		r.Post("/{dealId}/confirm", func(w http.ResponseWriter, req *http.Request) {
			dealId, ok := uuidParam(w, req, "dealId")
			if !ok {
				return
			}
			deals.ConfirmDeal(w, req, dealId)
		})
	})

	if connManager != nil {
		router.Handle("/ws", wshandler.NewHandler(connManager))
	}

	return router
}

// uuidParam parses a UUID path parameter, writing a 400 on failure.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (openapi_types.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid %s: %v", name, err), http.StatusBadRequest)
		return openapi_types.UUID{}, false
	}
	return id, true
}
