package session

import (
	"context"
	"sync"

	"github.com/tradeguild/ethos-p2p/pkg/ethos"
	"github.com/tradeguild/ethos-p2p/pkg/models"
)

// Registry tracks live sessions keyed by profile ID. A connect with no user
// ID opens a fresh session; disconnecting the last identity removes the
// session entirely.
type Registry struct {
	mu       sync.Mutex
	oracle   ethos.ScoreProvider
	sessions map[string]*Manager
}

// NewRegistry creates an empty registry backed by the given score oracle.
func NewRegistry(oracle ethos.ScoreProvider) *Registry {
	return &Registry{
		oracle:   oracle,
		sessions: make(map[string]*Manager),
	}
}

// Connect links an identity for the given user, creating the session when
// userID is empty. It returns the resulting profile.
func (r *Registry) Connect(ctx context.Context, userID string, platform models.Platform, username, externalID string) (*models.UserProfile, error) {
	mgr, isNew, err := r.managerFor(userID)
	if err != nil {
		return nil, err
	}

	profile, err := mgr.Connect(ctx, platform, username, externalID)
	if err != nil {
		return nil, err
	}

	if isNew {
		r.mu.Lock()
		r.sessions[profile.ID] = mgr
		r.mu.Unlock()
	}

	return profile, nil
}

// Disconnect unlinks the identity for the given platform. When the session
// goes anonymous it is removed from the registry and nil is returned.
func (r *Registry) Disconnect(userID string, platform models.Platform) (*models.UserProfile, error) {
	mgr, err := r.Get(userID)
	if err != nil {
		return nil, err
	}

	profile := mgr.Disconnect(platform)
	if profile == nil {
		r.mu.Lock()
		delete(r.sessions, userID)
		r.mu.Unlock()
	}

	return profile, nil
}

// Get returns the session for the given user ID.
func (r *Registry) Get(userID string) (*Manager, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mgr, ok := r.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}
	return mgr, nil
}

// DealStarted bumps the deal counters for the given user, if connected.
func (r *Registry) DealStarted(userID string) {
	if mgr, err := r.Get(userID); err == nil {
		mgr.DealStarted()
	}
}

// DealCompleted moves one deal from active to completed for the given user.
func (r *Registry) DealCompleted(userID string) {
	if mgr, err := r.Get(userID); err == nil {
		mgr.DealCompleted()
	}
}

func (r *Registry) managerFor(userID string) (*Manager, bool, error) {
	if userID == "" {
		return NewManager(r.oracle), true, nil
	}
	mgr, err := r.Get(userID)
	if err != nil {
		return nil, false, err
	}
	return mgr, false, nil
}
