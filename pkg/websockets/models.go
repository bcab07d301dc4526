package websockets

import "github.com/tradeguild/ethos-p2p/pkg/models"

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeDealUpdate is for messages about deal lifecycle changes.
	MessageTypeDealUpdate MessageType = "dealUpdate"

	// MessageTypeChatMessage is for deal chat messages.
	MessageTypeChatMessage MessageType = "chatMessage"

	// MessageTypeRequestPending is for new fulfillment requests on an order.
	MessageTypeRequestPending MessageType = "requestPending"

	// MessageTypeNotification is for user-facing lifecycle notifications
	// relayed from the notification queue.
	MessageTypeNotification MessageType = "notification"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// DealUpdatePayload is the payload for a dealUpdate message.
type DealUpdatePayload struct {
	DealID   string            `json:"deal_id"`
	OrderID  string            `json:"order_id"`
	BuyerID  string            `json:"buyer_id"`
	SellerID string            `json:"seller_id"`
	Status   models.DealStatus `json:"status"`
}

// ChatMessagePayload is the payload for a chatMessage message.
type ChatMessagePayload struct {
	DealID   string `json:"deal_id"`
	SenderID string `json:"sender_id"`
	Content  string `json:"content"`
}

// RequestPendingPayload is the payload for a requestPending message.
type RequestPendingPayload struct {
	OrderID     string  `json:"order_id"`
	RequestID   string  `json:"request_id"`
	RequesterID string  `json:"requester_id"`
	Amount      float64 `json:"amount"`
}
