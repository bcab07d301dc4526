package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tradeguild/ethos-p2p/pkg/ethos"
	"github.com/tradeguild/ethos-p2p/pkg/models"
	"github.com/tradeguild/ethos-p2p/pkg/trust"
)

var (
	// ErrUsernameRequired is returned when connecting with a blank username.
	ErrUsernameRequired = errors.New("username is required")

	// ErrNoSession is returned when an operation needs a connected identity
	// and the session has none.
	ErrNoSession = errors.New("no connected identity")
)

// Manager holds one user's trading session: the profile, its linked social
// identities, and the externally sourced Ethos score. The score is only ever
// replaced by an oracle response, never computed locally.
type Manager struct {
	mu      sync.Mutex
	oracle  ethos.ScoreProvider
	profile *models.UserProfile
}

// NewManager creates an empty session backed by the given score oracle.
func NewManager(oracle ethos.ScoreProvider) *Manager {
	return &Manager{oracle: oracle}
}

// Connect links a social identity to the session and pulls the Ethos score
// for it. Connecting a platform that is already linked replaces that
// identity in place; other platforms are untouched. An oracle failure
// surfaces to the caller and the session is left unchanged. externalID is
// the platform's own account id and may be empty.
func (m *Manager) Connect(ctx context.Context, platform models.Platform, username, externalID string) (*models.UserProfile, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return nil, ErrUsernameRequired
	}

	userkey := ethos.CreateUserkey(platform, username)

	m.mu.Lock()
	defer m.mu.Unlock()

	score, err := m.oracle.FetchScoreByUserkey(ctx, userkey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch score for %s: %w", userkey, err)
	}

	if m.profile == nil {
		m.profile = &models.UserProfile{
			ID:         uuid.New().String(),
			Identities: []models.SocialIdentity{},
			CreatedAt:  time.Now(),
		}
	}

	identity := models.SocialIdentity{
		Platform:    platform,
		Username:    username,
		ExternalID:  externalID,
		Verified:    true,
		ConnectedAt: time.Now(),
	}

	replaced := false
	for i := range m.profile.Identities {
		if m.profile.Identities[i].Platform == platform {
			m.profile.Identities[i] = identity
			replaced = true
			break
		}
	}
	if !replaced {
		m.profile.Identities = append(m.profile.Identities, identity)
	}

	m.profile.EthosScore = score.Score

	return m.snapshot(), nil
}

// Disconnect unlinks the identity for the given platform. When the last
// identity goes, the session reverts to anonymous and the profile is
// discarded. It returns the remaining profile, or nil once anonymous.
func (m *Manager) Disconnect(platform models.Platform) *models.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.profile == nil {
		return nil
	}

	kept := m.profile.Identities[:0]
	for _, id := range m.profile.Identities {
		if id.Platform != platform {
			kept = append(kept, id)
		}
	}
	m.profile.Identities = kept

	if len(m.profile.Identities) == 0 {
		m.profile = nil
		return nil
	}

	return m.snapshot()
}

// RefreshScore re-fetches the Ethos score for the primary identity. Unlike
// Connect, a failed refresh keeps the previous score and only logs: a
// temporarily unreachable oracle should not degrade an active session.
func (m *Manager) RefreshScore(ctx context.Context) (*models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.profile == nil || len(m.profile.Identities) == 0 {
		return nil, ErrNoSession
	}

	primary := m.profile.Identities[0]
	userkey := ethos.CreateUserkey(primary.Platform, primary.Username)

	score, err := m.oracle.FetchScoreByUserkey(ctx, userkey)
	if err != nil {
		slog.Warn("score refresh failed, keeping previous score", "userkey", userkey, "error", err)
		return m.snapshot(), nil
	}

	m.profile.EthosScore = score.Score
	return m.snapshot(), nil
}

// Profile returns a copy of the current profile, or nil when anonymous.
func (m *Manager) Profile() *models.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// HasIdentity reports whether the given platform is linked.
func (m *Manager) HasIdentity(platform models.Platform) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile == nil {
		return false
	}
	_, ok := m.profile.Identity(platform)
	return ok
}

// CanTrade reports whether the session may participate in the market: at
// least one linked identity and a score clearing the trading floor. It is
// recomputed from the current score on every call.
func (m *Manager) CanTrade() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile != nil && len(m.profile.Identities) > 0 && m.profile.EthosScore >= trust.MinTradingScore
}

// TrustTier resolves the tier for the session's current score.
func (m *Manager) TrustTier() trust.Tier {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile == nil {
		return trust.ResolveTier(0)
	}
	return trust.ResolveTier(m.profile.EthosScore)
}

// MaxConcurrentDeals returns the deal ceiling for the session's tier.
func (m *Manager) MaxConcurrentDeals() int {
	return m.TrustTier().MaxConcurrentDeals
}

// DealStarted bumps the profile's deal counters for a newly opened deal.
func (m *Manager) DealStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile == nil {
		return
	}
	m.profile.TotalDeals++
	m.profile.ActiveDeals++
}

// DealCompleted moves one deal from active to completed.
func (m *Manager) DealCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile == nil {
		return
	}
	m.profile.CompletedDeals++
	if m.profile.ActiveDeals > 0 {
		m.profile.ActiveDeals--
	}
}

// snapshot copies the profile so callers never share the internal slice.
// Callers must hold m.mu.
func (m *Manager) snapshot() *models.UserProfile {
	if m.profile == nil {
		return nil
	}
	cp := *m.profile
	cp.Identities = append([]models.SocialIdentity(nil), m.profile.Identities...)
	return &cp
}
