// Package ethos is the client for the external Ethos reputation oracle.
// The core never fabricates a score: every lookup failure is surfaced to the
// caller so the caller decides whether to retry, deny access, or keep a
// previously known score.
package ethos

import (
	"context"
	"errors"
)

// ErrScoreUnavailable is returned when the oracle cannot produce a score,
// whether from a transport failure, a non-2xx response, or a malformed
// payload.
var ErrScoreUnavailable = errors.New("ethos score unavailable")

// ScoreData is the oracle's answer for a single userkey.
type ScoreData struct {
	Score int    `json:"score"`
	Level string `json:"level,omitempty"`
}

// ScoreStatus reports whether a score computation is still in flight.
type ScoreStatus struct {
	IsPending bool `json:"isPending"`
}

// ScoreProvider defines the interface for fetching reputation scores.
type ScoreProvider interface {
	// FetchScoreByUserkey retrieves the score for a single userkey.
	FetchScoreByUserkey(ctx context.Context, userkey string) (*ScoreData, error)

	// FetchScoresByUserkeys retrieves scores for several userkeys at once.
	// Keys the oracle has no answer for map to nil.
	FetchScoresByUserkeys(ctx context.Context, userkeys []string) (map[string]*ScoreData, error)

	// CheckScoreStatus reports whether the score for a userkey is still
	// being computed.
	CheckScoreStatus(ctx context.Context, userkey string) (*ScoreStatus, error)
}
