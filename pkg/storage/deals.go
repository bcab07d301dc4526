package storage

import (
	"context"

	"github.com/tradeguild/ethos-p2p/pkg/models"
)

// DealReader defines the interface for reading deal data.
type DealReader interface {
	// GetDeal retrieves a deal by its ID.
	GetDeal(ctx context.Context, dealID string) (*models.DealAgreement, error)

	// ListDealsByUser retrieves all deals the user participates in, newest first.
	ListDealsByUser(ctx context.Context, userID string) ([]models.DealAgreement, error)
}

// DealManager defines the privileged interface for deal state transitions.
// AcceptRequest is the multi-record commit point: the request flips to
// accepted, the order leaves the open state, and the deal record is stored,
// all atomically. Two accepts racing on the same order must resolve
// first-committer-wins; the loser sees ErrOrderNotOpen.
type DealManager interface {
	// AcceptRequest atomically accepts a pending request against an open
	// order and persists the deal constructed from the pair.
	AcceptRequest(ctx context.Context, orderID, requestID string, deal *models.DealAgreement) (*models.DealAgreement, error)

	// AppendMessage appends a chat message to an in-progress deal.
	AppendMessage(ctx context.Context, dealID string, msg *models.ChatMessage) (*models.ChatMessage, error)

	// ConfirmDeal sets the confirmation flag of the given party. The flag
	// write and the completion check are a single atomic step; the returned
	// boolean reports whether this call completed the deal. Re-confirming is
	// a no-op.
	ConfirmDeal(ctx context.Context, dealID, userID string) (*models.DealAgreement, bool, error)
}

// DealStore combines the reader and manager interfaces.
type DealStore interface {
	DealReader
	DealManager
}
