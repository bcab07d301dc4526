package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tradeguild/ethos-p2p/pkg/models"
	"github.com/tradeguild/ethos-p2p/pkg/storage"
)

// AcceptRequest atomically accepts a pending request against an open order
// and stores the deal built from the pair. The whole transition happens
// under the store lock, so of two racing accepts only the first commits;
// the second finds the order no longer open.
func (s *Store) AcceptRequest(ctx context.Context, orderID, requestID string, deal *models.DealAgreement) (*models.DealAgreement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if order.Status != models.OrderOpen {
		return nil, storage.ErrOrderNotOpen
	}

	idx := -1
	for i := range order.Requests {
		if order.Requests[i].ID == requestID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, storage.ErrNotFound
	}
	if order.Requests[idx].Status != models.RequestPending {
		return nil, storage.ErrRequestNotPending
	}

	deal.ID = uuid.New().String()
	deal.CreatedAt = time.Now()
	if deal.Messages == nil {
		deal.Messages = []models.ChatMessage{}
	}

	order.Requests[idx].Status = models.RequestAccepted
	order.Status = models.OrderInProgress
	s.deals[deal.ID] = copyDeal(deal)

	return copyDeal(deal), nil
}

// GetDeal retrieves a deal by its ID.
func (s *Store) GetDeal(ctx context.Context, dealID string) (*models.DealAgreement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deal, ok := s.deals[dealID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyDeal(deal), nil
}

// ListDealsByUser retrieves all deals the user participates in, newest first.
func (s *Store) ListDealsByUser(ctx context.Context, userID string) ([]models.DealAgreement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.DealAgreement
	for _, deal := range s.deals {
		if deal.IsParty(userID) {
			out = append(out, *copyDeal(deal))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// AppendMessage appends a chat message to an in-progress deal. Insertion
// order under the store lock is the total order both parties observe.
func (s *Store) AppendMessage(ctx context.Context, dealID string, msg *models.ChatMessage) (*models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deal, ok := s.deals[dealID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if deal.Status != models.DealInProgress {
		return nil, storage.ErrDealClosed
	}

	msg.ID = uuid.New().String()
	msg.DealID = dealID
	msg.Timestamp = time.Now()

	deal.Messages = append(deal.Messages, *msg)
	out := *msg
	return &out, nil
}

// ConfirmDeal sets the caller's confirmation flag and, in the same critical
// section, checks whether both flags now hold (check-after-write). The
// returned boolean reports whether this call moved the deal to completed.
func (s *Store) ConfirmDeal(ctx context.Context, dealID, userID string) (*models.DealAgreement, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deal, ok := s.deals[dealID]
	if !ok {
		return nil, false, storage.ErrNotFound
	}

	switch userID {
	case deal.BuyerID:
		deal.BuyerConfirmed = true
	case deal.SellerID:
		deal.SellerConfirmed = true
	default:
		return nil, false, storage.ErrNotParticipant
	}

	completedNow := false
	if deal.Status == models.DealInProgress && deal.BuyerConfirmed && deal.SellerConfirmed {
		deal.Status = models.DealCompleted
		now := time.Now()
		deal.CompletedAt = &now
		completedNow = true
	}

	return copyDeal(deal), completedNow, nil
}
