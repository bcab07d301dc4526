package models

import (
	"time"
)

// Platform identifies a linkable social identity provider.
type Platform string

const (
	PlatformTwitter Platform = "twitter"
	PlatformDiscord Platform = "discord"
)

// OrderType defines the side of an order.
type OrderType string

const (
	BUY  OrderType = "buy"
	SELL OrderType = "sell"
)

// OrderStatus defines the possible states of an order.
type OrderStatus string

const (
	OrderOpen       OrderStatus = "open"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// RequestStatus defines the possible states of a fulfillment request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestDenied   RequestStatus = "denied"
)

// DealStatus defines the possible states of a deal agreement.
type DealStatus string

const (
	DealInProgress DealStatus = "in_progress"
	DealCompleted  DealStatus = "completed"
	DealDisputed   DealStatus = "disputed"
)

// SocialIdentity is a linked social account. A profile holds at most one
// identity per platform.
type SocialIdentity struct {
	Platform    Platform  `json:"platform" dynamodbav:"platform"`
	Username    string    `json:"username" dynamodbav:"username"`
	ExternalID  string    `json:"external_id,omitempty" dynamodbav:"external_id,omitempty"`
	Verified    bool      `json:"verified" dynamodbav:"verified"`
	ConnectedAt time.Time `json:"connected_at" dynamodbav:"connected_at"`
}

// UserProfile is the trading identity derived from linked social accounts.
// The Ethos score is externally sourced and only ever replaced by a refresh;
// it is never computed locally.
type UserProfile struct {
	ID             string           `json:"id" dynamodbav:"id"`
	EthosScore     int              `json:"ethos_score" dynamodbav:"ethos_score"`
	Identities     []SocialIdentity `json:"identities" dynamodbav:"identities"`
	TotalDeals     int              `json:"total_deals" dynamodbav:"total_deals"`
	ActiveDeals    int              `json:"active_deals" dynamodbav:"active_deals"`
	CompletedDeals int              `json:"completed_deals" dynamodbav:"completed_deals"`
	CreatedAt      time.Time        `json:"created_at" dynamodbav:"created_at"`
}

// Identity returns the identity linked for the given platform, if any.
func (p *UserProfile) Identity(platform Platform) (SocialIdentity, bool) {
	for _, id := range p.Identities {
		if id.Platform == platform {
			return id, true
		}
	}
	return SocialIdentity{}, false
}

// Order is a standing buy/sell offer. Amount and price are immutable after
// creation; only the status and the request list change.
type Order struct {
	ID               string               `dynamodbav:"id"`
	Type             OrderType            `dynamodbav:"type"`
	CreatorID        string               `dynamodbav:"creator_id"`
	Creator          UserProfile          `dynamodbav:"creator"`
	Asset            string               `dynamodbav:"asset"`
	Amount           float64              `dynamodbav:"amount"`
	Price            float64              `dynamodbav:"price"`
	Currency         string               `dynamodbav:"currency"`
	Region           string               `dynamodbav:"region"`
	PaymentMethod    string               `dynamodbav:"payment_method,omitempty"`
	Notes            string               `dynamodbav:"notes,omitempty"`
	MinEthosRequired int                  `dynamodbav:"min_ethos_required"`
	MaxTradeAmount   float64              `dynamodbav:"max_trade_amount"`
	Status           OrderStatus          `dynamodbav:"status"`
	CreatedAt        time.Time            `dynamodbav:"created_at"`
	Requests         []FulfillmentRequest `dynamodbav:"requests"`
}

// FulfillmentRequest is a trader's bid to take an open order. It is terminal
// once accepted or denied; an accepted request spawns exactly one deal.
type FulfillmentRequest struct {
	ID              string        `dynamodbav:"id"`
	OrderID         string        `dynamodbav:"order_id"`
	RequesterID     string        `dynamodbav:"requester_id"`
	Requester       UserProfile   `dynamodbav:"requester"`
	RequestedAmount float64       `dynamodbav:"requested_amount"`
	Status          RequestStatus `dynamodbav:"status"`
	CreatedAt       time.Time     `dynamodbav:"created_at"`
}

// ChatMessage is a single message in a deal's private chat. Messages are
// append-only and ordered by insertion.
type ChatMessage struct {
	ID        string    `dynamodbav:"id"`
	DealID    string    `dynamodbav:"deal_id"`
	SenderID  string    `dynamodbav:"sender_id"`
	Content   string    `dynamodbav:"content"`
	Timestamp time.Time `dynamodbav:"timestamp"`
}

// DealAgreement is the bilateral record of an accepted fulfillment request.
// Status is completed exactly when both parties have confirmed, and
// CompletedAt is stamped once on that transition.
type DealAgreement struct {
	ID              string        `dynamodbav:"id"`
	OrderID         string        `dynamodbav:"order_id"`
	BuyerID         string        `dynamodbav:"buyer_id"`
	SellerID        string        `dynamodbav:"seller_id"`
	Buyer           UserProfile   `dynamodbav:"buyer"`
	Seller          UserProfile   `dynamodbav:"seller"`
	Asset           string        `dynamodbav:"asset"`
	Amount          float64       `dynamodbav:"amount"`
	Price           float64       `dynamodbav:"price"`
	Currency        string        `dynamodbav:"currency"`
	Region          string        `dynamodbav:"region"`
	BuyerConfirmed  bool          `dynamodbav:"buyer_confirmed"`
	SellerConfirmed bool          `dynamodbav:"seller_confirmed"`
	Status          DealStatus    `dynamodbav:"status"`
	Messages        []ChatMessage `dynamodbav:"messages"`
	CreatedAt       time.Time     `dynamodbav:"created_at"`
	CompletedAt     *time.Time    `dynamodbav:"completed_at,omitempty"`
	ReferenceHash   string        `dynamodbav:"reference_hash"`
}

// IsParty reports whether the given user is the buyer or the seller.
func (d *DealAgreement) IsParty(userID string) bool {
	return userID == d.BuyerID || userID == d.SellerID
}
