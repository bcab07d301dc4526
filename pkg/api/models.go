// Package api defines the JSON types served over HTTP. These are kept
// separate from the domain models so storage concerns never leak into the
// wire format.
package api

import (
	"time"
)

// UserIDHeader carries the acting user's profile ID on authenticated routes.
const UserIDHeader = "X-User-Id"

// TierInfo describes a trust tier and its trading privileges.
type TierInfo struct {
	Key                string  `json:"key"`
	Label              string  `json:"label"`
	MinScore           int     `json:"min_score"`
	MaxScore           int     `json:"max_score"` // -1 means unbounded
	MaxTradeAmount     float64 `json:"max_trade_amount"`
	MaxConcurrentDeals int     `json:"max_concurrent_deals"`
}

// SocialIdentity is a linked social account on a profile.
type SocialIdentity struct {
	Platform    string    `json:"platform"`
	Username    string    `json:"username"`
	ExternalId  string    `json:"external_id,omitempty"`
	Verified    bool      `json:"verified"`
	ConnectedAt time.Time `json:"connected_at"`
}

// Profile is a user's trading identity with its current trust standing.
type Profile struct {
	Id             string           `json:"id"`
	EthosScore     int              `json:"ethos_score"`
	Tier           TierInfo         `json:"tier"`
	CanTrade       bool             `json:"can_trade"`
	Identities     []SocialIdentity `json:"identities"`
	TotalDeals     int              `json:"total_deals"`
	ActiveDeals    int              `json:"active_deals"`
	CompletedDeals int              `json:"completed_deals"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ConnectRequest links a social identity. UserId is empty on first connect;
// ExternalId is the platform's own account id when the caller knows it.
type ConnectRequest struct {
	UserId     string `json:"user_id,omitempty"`
	Platform   string `json:"platform"`
	Username   string `json:"username"`
	ExternalId string `json:"external_id,omitempty"`
}

// NewOrder is the payload for creating an order.
type NewOrder struct {
	Type             string  `json:"type"`
	Asset            string  `json:"asset"`
	Amount           float64 `json:"amount"`
	Price            float64 `json:"price"`
	Currency         string  `json:"currency"`
	Region           string  `json:"region,omitempty"`
	PaymentMethod    string  `json:"payment_method,omitempty"`
	Notes            string  `json:"notes,omitempty"`
	MinEthosRequired int     `json:"min_ethos_required,omitempty"`
	MaxTradeAmount   float64 `json:"max_trade_amount,omitempty"`
}

// Order is a standing offer on the book.
type Order struct {
	Id               string               `json:"id"`
	Type             string               `json:"type"`
	CreatorId        string               `json:"creator_id"`
	CreatorScore     int                  `json:"creator_score"`
	Asset            string               `json:"asset"`
	Amount           float64              `json:"amount"`
	Price            float64              `json:"price"`
	Currency         string               `json:"currency"`
	Region           string               `json:"region,omitempty"`
	PaymentMethod    string               `json:"payment_method,omitempty"`
	Notes            string               `json:"notes,omitempty"`
	MinEthosRequired int                  `json:"min_ethos_required"`
	MaxTradeAmount   float64              `json:"max_trade_amount"`
	Status           string               `json:"status"`
	CreatedAt        time.Time            `json:"created_at"`
	Requests         []FulfillmentRequest `json:"requests"`
}

// NewFulfillmentRequest is the payload for bidding on an order.
type NewFulfillmentRequest struct {
	Amount float64 `json:"amount"`
}

// FulfillmentRequest is a trader's bid to take an order.
type FulfillmentRequest struct {
	Id              string    `json:"id"`
	OrderId         string    `json:"order_id"`
	RequesterId     string    `json:"requester_id"`
	RequesterScore  int       `json:"requester_score"`
	RequestedAmount float64   `json:"requested_amount"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewChatMessage is the payload for posting to a deal chat.
type NewChatMessage struct {
	Content string `json:"content"`
}

// ChatMessage is one message in a deal chat.
type ChatMessage struct {
	Id        string    `json:"id"`
	DealId    string    `json:"deal_id"`
	SenderId  string    `json:"sender_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Deal is the bilateral record of an accepted request.
type Deal struct {
	Id              string        `json:"id"`
	OrderId         string        `json:"order_id"`
	BuyerId         string        `json:"buyer_id"`
	SellerId        string        `json:"seller_id"`
	Asset           string        `json:"asset"`
	Amount          float64       `json:"amount"`
	Price           float64       `json:"price"`
	Currency        string        `json:"currency"`
	Region          string        `json:"region,omitempty"`
	BuyerConfirmed  bool          `json:"buyer_confirmed"`
	SellerConfirmed bool          `json:"seller_confirmed"`
	Status          string        `json:"status"`
	Messages        []ChatMessage `json:"messages"`
	CreatedAt       time.Time     `json:"created_at"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
	ReferenceHash   string        `json:"reference_hash"`
}
