package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tradeguild/ethos-p2p/pkg/api"
	"github.com/tradeguild/ethos-p2p/pkg/ethos"
	"github.com/tradeguild/ethos-p2p/pkg/mapping"
	"github.com/tradeguild/ethos-p2p/pkg/models"
	"github.com/tradeguild/ethos-p2p/pkg/session"
	"github.com/tradeguild/ethos-p2p/pkg/trust"
)

// IdentityHandler holds the dependencies for identity and profile handlers.
type IdentityHandler struct {
	Registry *session.Registry
}

// NewIdentityHandler creates a new IdentityHandler.
func NewIdentityHandler(registry *session.Registry) *IdentityHandler {
	return &IdentityHandler{Registry: registry}
}

// Connect links a social identity and returns the resulting profile. An
// empty user_id opens a fresh session.
func (h *IdentityHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req api.ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	platform := models.Platform(req.Platform)
	if platform != models.PlatformTwitter && platform != models.PlatformDiscord {
		http.Error(w, fmt.Sprintf("Unsupported platform: %q", req.Platform), http.StatusBadRequest)
		return
	}

	profile, err := h.Registry.Connect(r.Context(), req.UserId, platform, req.Username, req.ExternalId)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrUsernameRequired):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, session.ErrNoSession):
			http.Error(w, "Unknown user", http.StatusUnauthorized)
		case errors.Is(err, ethos.ErrScoreUnavailable):
			http.Error(w, fmt.Sprintf("Score oracle unavailable: %v", err), http.StatusBadGateway)
		default:
			http.Error(w, fmt.Sprintf("Failed to connect identity: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiProfile(profile)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// Disconnect unlinks the identity for the given platform. Removing the last
// identity ends the session.
func (h *IdentityHandler) Disconnect(w http.ResponseWriter, r *http.Request, platform string) {
	profile, err := h.Registry.Disconnect(r.Header.Get(api.UserIDHeader), models.Platform(platform))
	if err != nil {
		http.Error(w, "Unknown user", http.StatusUnauthorized)
		return
	}

	if profile == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiProfile(profile)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// RefreshScore re-pulls the acting user's score from the oracle. A failed
// pull keeps the previous score.
func (h *IdentityHandler) RefreshScore(w http.ResponseWriter, r *http.Request) {
	mgr, err := h.Registry.Get(r.Header.Get(api.UserIDHeader))
	if err != nil {
		http.Error(w, "Unknown user", http.StatusUnauthorized)
		return
	}

	profile, err := mgr.RefreshScore(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to refresh score: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiProfile(profile)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetProfile returns the acting user's profile with its current trust tier.
func (h *IdentityHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	mgr, err := h.Registry.Get(r.Header.Get(api.UserIDHeader))
	if err != nil {
		http.Error(w, "Unknown user", http.StatusUnauthorized)
		return
	}

	profile := mgr.Profile()
	if profile == nil {
		http.Error(w, "No profile", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiProfile(profile)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListTiers returns the full trust tier table.
func (h *IdentityHandler) ListTiers(w http.ResponseWriter, r *http.Request) {
	tiers := trust.Tiers()
	apiTiers := make([]api.TierInfo, len(tiers))
	for i, t := range tiers {
		apiTiers[i] = mapping.ToApiTier(t)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiTiers); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
