package trading

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tradeguild/ethos-p2p/pkg/models"
	"github.com/tradeguild/ethos-p2p/pkg/notify"
	"github.com/tradeguild/ethos-p2p/pkg/storage"
	"github.com/tradeguild/ethos-p2p/pkg/trust"
	"github.com/tradeguild/ethos-p2p/pkg/websockets"
)

// Actor is the market-facing view of a connected session: the profile plus
// the trust standing derived from its current score.
type Actor interface {
	Profile() *models.UserProfile
	CanTrade() bool
	TrustTier() trust.Tier
}

// ProfileCounter tracks per-user deal counters as deals open and close.
type ProfileCounter interface {
	DealStarted(userID string)
	DealCompleted(userID string)
}

// Service is the trading engine. It enforces trust gating and role rules on
// top of the market store, and fans lifecycle changes out to the notifier
// and the WebSocket publisher. Delivery failures never roll back a
// committed state change.
type Service struct {
	store     storage.MarketStore
	notifier  notify.Notifier
	publisher websockets.Publisher
	counter   ProfileCounter
}

// NewService creates a new trading Service.
func NewService(store storage.MarketStore, notifier notify.Notifier, publisher websockets.Publisher, counter ProfileCounter) *Service {
	return &Service{
		store:     store,
		notifier:  notifier,
		publisher: publisher,
		counter:   counter,
	}
}

// CreateOrder validates and stores a new order for the acting user. The
// creator profile is snapshotted onto the order at creation time.
func (s *Service) CreateOrder(ctx context.Context, actor Actor, order *models.Order) (*models.Order, error) {
	if !actor.CanTrade() {
		return nil, fmt.Errorf("%w: score below trading floor or no linked identity", ErrUnauthorized)
	}

	if order.Type != models.BUY && order.Type != models.SELL {
		return nil, fmt.Errorf("%w: unknown order type %q", ErrValidation, order.Type)
	}
	if strings.TrimSpace(order.Asset) == "" {
		return nil, fmt.Errorf("%w: asset is required", ErrValidation)
	}
	if strings.TrimSpace(order.Currency) == "" {
		return nil, fmt.Errorf("%w: currency is required", ErrValidation)
	}
	if order.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if order.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if order.MinEthosRequired < 0 {
		return nil, fmt.Errorf("%w: minimum score cannot be negative", ErrValidation)
	}

	profile := actor.Profile()
	order.CreatorID = profile.ID
	order.Creator = *profile
	if order.MinEthosRequired == 0 {
		order.MinEthosRequired = trust.MinTradingScore
	}
	if order.MaxTradeAmount == 0 {
		order.MaxTradeAmount = actor.TrustTier().MaxTradeAmount
	}

	return s.store.CreateOrder(ctx, order)
}

// GetOrder retrieves a single order.
func (s *Service) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return s.store.GetOrder(ctx, orderID)
}

// ListOpenOrders lists open orders of the given type, newest first.
func (s *Service) ListOpenOrders(ctx context.Context, orderType models.OrderType) ([]models.Order, error) {
	return s.store.ListOpenOrders(ctx, orderType)
}

// ListOrdersByCreator lists all orders created by the given user.
func (s *Service) ListOrdersByCreator(ctx context.Context, creatorID string) ([]models.Order, error) {
	return s.store.ListOrdersByCreator(ctx, creatorID)
}

// SubmitRequest places a fulfillment request against an open order. The
// requester must clear the order's score bar, must not be the creator, and
// the requested amount must fit both the order and the requester's tier
// ceiling.
func (s *Service) SubmitRequest(ctx context.Context, actor Actor, orderID string, amount float64) (*models.FulfillmentRequest, error) {
	if !actor.CanTrade() {
		return nil, fmt.Errorf("%w: score below trading floor or no linked identity", ErrUnauthorized)
	}
	profile := actor.Profile()

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderOpen {
		return nil, storage.ErrOrderNotOpen
	}
	if profile.ID == order.CreatorID {
		return nil, fmt.Errorf("%w: cannot fulfill own order", ErrUnauthorized)
	}
	if profile.EthosScore < order.MinEthosRequired {
		return nil, fmt.Errorf("%w: score %d below order minimum %d", ErrUnauthorized, profile.EthosScore, order.MinEthosRequired)
	}

	limit := order.Amount
	if tierMax := actor.TrustTier().MaxTradeAmount; tierMax < limit {
		limit = tierMax
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if amount > limit {
		return nil, fmt.Errorf("%w: amount %.2f exceeds limit %.2f", ErrValidation, amount, limit)
	}

	req, err := s.store.AppendRequest(ctx, &models.FulfillmentRequest{
		OrderID:         orderID,
		RequesterID:     profile.ID,
		Requester:       *profile,
		RequestedAmount: amount,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, websockets.Message{
		Type: websockets.MessageTypeRequestPending,
		Payload: websockets.RequestPendingPayload{
			OrderID:     orderID,
			RequestID:   req.ID,
			RequesterID: req.RequesterID,
			Amount:      req.RequestedAmount,
		},
	})

	return req, nil
}

// AcceptRequest lets the order creator accept a pending request, committing
// the deal. Of two racing accepts on the same order only the first lands;
// the second surfaces storage.ErrOrderNotOpen.
func (s *Service) AcceptRequest(ctx context.Context, actor Actor, orderID, requestID string) (*models.DealAgreement, error) {
	profile := actor.Profile()
	if profile == nil {
		return nil, fmt.Errorf("%w: no session", ErrUnauthorized)
	}

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CreatorID != profile.ID {
		return nil, fmt.Errorf("%w: only the order creator can accept requests", ErrUnauthorized)
	}

	var req *models.FulfillmentRequest
	for i := range order.Requests {
		if order.Requests[i].ID == requestID {
			req = &order.Requests[i]
			break
		}
	}
	if req == nil {
		return nil, storage.ErrNotFound
	}

	deal, err := s.store.AcceptRequest(ctx, orderID, requestID, NewDealFromRequest(order, req))
	if err != nil {
		return nil, err
	}

	s.counter.DealStarted(deal.BuyerID)
	s.counter.DealStarted(deal.SellerID)

	if err := s.notifier.Notify(ctx, notify.Event{
		Type:      notify.EventRequestAccepted,
		UserID:    req.RequesterID,
		OrderID:   orderID,
		RequestID: requestID,
		DealID:    deal.ID,
	}); err != nil {
		slog.Error("failed to notify requester of acceptance", "requestId", requestID, "error", err)
	}

	s.publishDealUpdate(ctx, deal)

	return deal, nil
}

// DenyRequest lets the order creator deny a pending request. The order
// stays open. The requester is notified; a delivery failure does not undo
// the denial.
func (s *Service) DenyRequest(ctx context.Context, actor Actor, orderID, requestID string) (*models.FulfillmentRequest, error) {
	profile := actor.Profile()
	if profile == nil {
		return nil, fmt.Errorf("%w: no session", ErrUnauthorized)
	}

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CreatorID != profile.ID {
		return nil, fmt.Errorf("%w: only the order creator can deny requests", ErrUnauthorized)
	}

	req, err := s.store.DenyRequest(ctx, orderID, requestID)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.Notify(ctx, notify.Event{
		Type:      notify.EventRequestDenied,
		UserID:    req.RequesterID,
		OrderID:   orderID,
		RequestID: requestID,
	}); err != nil {
		slog.Error("failed to notify requester of denial", "requestId", requestID, "error", err)
	}

	return req, nil
}

// GetDeal retrieves a deal for one of its parties.
func (s *Service) GetDeal(ctx context.Context, actor Actor, dealID string) (*models.DealAgreement, error) {
	profile := actor.Profile()
	if profile == nil {
		return nil, fmt.Errorf("%w: no session", ErrUnauthorized)
	}

	deal, err := s.store.GetDeal(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if !deal.IsParty(profile.ID) {
		return nil, fmt.Errorf("%w: not a party to this deal", ErrUnauthorized)
	}

	return deal, nil
}

// ListDealsByUser lists the acting user's deals, newest first.
func (s *Service) ListDealsByUser(ctx context.Context, actor Actor) ([]models.DealAgreement, error) {
	profile := actor.Profile()
	if profile == nil {
		return nil, fmt.Errorf("%w: no session", ErrUnauthorized)
	}
	return s.store.ListDealsByUser(ctx, profile.ID)
}

// PostMessage appends a chat message to an in-progress deal the actor is a
// party to.
func (s *Service) PostMessage(ctx context.Context, actor Actor, dealID, content string) (*models.ChatMessage, error) {
	profile := actor.Profile()
	if profile == nil {
		return nil, fmt.Errorf("%w: no session", ErrUnauthorized)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: message content is required", ErrValidation)
	}

	deal, err := s.store.GetDeal(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if !deal.IsParty(profile.ID) {
		return nil, fmt.Errorf("%w: not a party to this deal", ErrUnauthorized)
	}

	msg, err := s.store.AppendMessage(ctx, dealID, &models.ChatMessage{
		SenderID: profile.ID,
		Content:  content,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, websockets.Message{
		Type: websockets.MessageTypeChatMessage,
		Payload: websockets.ChatMessagePayload{
			DealID:   dealID,
			SenderID: msg.SenderID,
			Content:  msg.Content,
		},
	})

	return msg, nil
}

// Confirm records the acting party's confirmation on a deal. Confirming
// twice is a no-op. When the second party confirms, the deal completes and
// both parties are notified.
func (s *Service) Confirm(ctx context.Context, actor Actor, dealID string) (*models.DealAgreement, error) {
	profile := actor.Profile()
	if profile == nil {
		return nil, fmt.Errorf("%w: no session", ErrUnauthorized)
	}

	deal, completed, err := s.store.ConfirmDeal(ctx, dealID, profile.ID)
	if err != nil {
		return nil, err
	}

	if completed {
		s.counter.DealCompleted(deal.BuyerID)
		s.counter.DealCompleted(deal.SellerID)

		for _, userID := range []string{deal.BuyerID, deal.SellerID} {
			if err := s.notifier.Notify(ctx, notify.Event{
				Type:   notify.EventDealCompleted,
				UserID: userID,
				DealID: deal.ID,
			}); err != nil {
				slog.Error("failed to notify party of completion", "dealId", deal.ID, "userId", userID, "error", err)
			}
		}

		s.publishDealUpdate(ctx, deal)
	}

	return deal, nil
}

func (s *Service) publishDealUpdate(ctx context.Context, deal *models.DealAgreement) {
	s.publish(ctx, websockets.Message{
		Type: websockets.MessageTypeDealUpdate,
		Payload: websockets.DealUpdatePayload{
			DealID:   deal.ID,
			OrderID:  deal.OrderID,
			BuyerID:  deal.BuyerID,
			SellerID: deal.SellerID,
			Status:   deal.Status,
		},
	})
}

func (s *Service) publish(ctx context.Context, msg websockets.Message) {
	if err := s.publisher.Publish(ctx, msg); err != nil {
		slog.Error("failed to publish websocket message", "type", msg.Type, "error", err)
	}
}
