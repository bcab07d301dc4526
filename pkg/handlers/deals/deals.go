package deals

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/tradeguild/ethos-p2p/pkg/api"
	"github.com/tradeguild/ethos-p2p/pkg/mapping"
	"github.com/tradeguild/ethos-p2p/pkg/session"
	"github.com/tradeguild/ethos-p2p/pkg/storage"
	"github.com/tradeguild/ethos-p2p/pkg/trading"
)

// DealsHandler holds the dependencies for deal lifecycle handlers.
type DealsHandler struct {
	Registry *session.Registry
	Service  *trading.Service
}

// NewDealsHandler creates a new DealsHandler.
func NewDealsHandler(registry *session.Registry, service *trading.Service) *DealsHandler {
	return &DealsHandler{Registry: registry, Service: service}
}

func (h *DealsHandler) actor(r *http.Request) (*session.Manager, error) {
	return h.Registry.Get(r.Header.Get(api.UserIDHeader))
}

// ListMyDeals handles the logic for listing the acting user's deals.
func (h *DealsHandler) ListMyDeals(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		http.Error(w, "Unknown user", http.StatusUnauthorized)
		return
	}

	deals, err := h.Service.ListDealsByUser(r.Context(), actor)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve deals: %v", err), http.StatusInternalServerError)
		return
	}

	apiDeals := make([]*api.Deal, len(deals))
	for i := range deals {
		apiDeals[i] = mapping.ToApiDeal(&deals[i])
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiDeals); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetDealById handles the logic for retrieving a deal. Only the two parties
// may read it.
func (h *DealsHandler) GetDealById(w http.ResponseWriter, r *http.Request, dealId openapi_types.UUID) {
	actor, err := h.actor(r)
	if err != nil {
		http.Error(w, "Unknown user", http.StatusUnauthorized)
		return
	}

	deal, err := h.Service.GetDeal(r.Context(), actor, dealId.String())
	if err != nil {
		switch {
		case errors.Is(err, trading.ErrUnauthorized):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Deal not found", http.StatusNotFound)
		default:
			http.Error(w, fmt.Sprintf("Failed to retrieve deal: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiDeal(deal)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// PostMessage handles posting a chat message to an in-progress deal.
func (h *DealsHandler) PostMessage(w http.ResponseWriter, r *http.Request, dealId openapi_types.UUID) {
	actor, err := h.actor(r)
	if err != nil {
		http.Error(w, "Unknown user", http.StatusUnauthorized)
		return
	}

	var newMsg api.NewChatMessage
	if err := json.NewDecoder(r.Body).Decode(&newMsg); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	msg, err := h.Service.PostMessage(r.Context(), actor, dealId.String(), newMsg.Content)
	if err != nil {
		switch {
		case errors.Is(err, trading.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, trading.ErrUnauthorized), errors.Is(err, storage.ErrNotParticipant):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Deal not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrDealClosed):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to post message: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(mapping.ToApiChatMessage(msg)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ConfirmDeal handles recording the acting party's confirmation. The deal
// completes when both parties have confirmed.
func (h *DealsHandler) ConfirmDeal(w http.ResponseWriter, r *http.Request, dealId openapi_types.UUID) {
	actor, err := h.actor(r)
	if err != nil {
		http.Error(w, "Unknown user", http.StatusUnauthorized)
		return
	}

	deal, err := h.Service.Confirm(r.Context(), actor, dealId.String())
	if err != nil {
		switch {
		case errors.Is(err, trading.ErrUnauthorized), errors.Is(err, storage.ErrNotParticipant):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Deal not found", http.StatusNotFound)
		default:
			http.Error(w, fmt.Sprintf("Failed to confirm deal: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiDeal(deal)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
