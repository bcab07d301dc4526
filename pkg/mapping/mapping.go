package mapping

import (
	"github.com/tradeguild/ethos-p2p/pkg/api"
	"github.com/tradeguild/ethos-p2p/pkg/models"
	"github.com/tradeguild/ethos-p2p/pkg/trust"
)

// ToApiTier converts a trust tier to its API representation.
func ToApiTier(t trust.Tier) api.TierInfo {
	return api.TierInfo{
		Key:                t.Key,
		Label:              t.Label,
		MinScore:           t.MinScore,
		MaxScore:           t.MaxScore,
		MaxTradeAmount:     t.MaxTradeAmount,
		MaxConcurrentDeals: t.MaxConcurrentDeals,
	}
}

// ToApiProfile converts a domain UserProfile to an API Profile. The tier and
// trading flag are derived from the current score at mapping time.
func ToApiProfile(p *models.UserProfile) *api.Profile {
	identities := make([]api.SocialIdentity, len(p.Identities))
	for i, id := range p.Identities {
		identities[i] = api.SocialIdentity{
			Platform:    string(id.Platform),
			Username:    id.Username,
			ExternalId:  id.ExternalID,
			Verified:    id.Verified,
			ConnectedAt: id.ConnectedAt,
		}
	}

	return &api.Profile{
		Id:             p.ID,
		EthosScore:     p.EthosScore,
		Tier:           ToApiTier(trust.ResolveTier(p.EthosScore)),
		CanTrade:       len(p.Identities) > 0 && p.EthosScore >= trust.MinTradingScore,
		Identities:     identities,
		TotalDeals:     p.TotalDeals,
		ActiveDeals:    p.ActiveDeals,
		CompletedDeals: p.CompletedDeals,
		CreatedAt:      p.CreatedAt,
	}
}

// ToDomainNewOrder converts an API NewOrder to a domain Order. Server-side
// fields are filled in by the trading service and the store.
func ToDomainNewOrder(newOrder *api.NewOrder) *models.Order {
	return &models.Order{
		Type:             models.OrderType(newOrder.Type),
		Asset:            newOrder.Asset,
		Amount:           newOrder.Amount,
		Price:            newOrder.Price,
		Currency:         newOrder.Currency,
		Region:           newOrder.Region,
		PaymentMethod:    newOrder.PaymentMethod,
		Notes:            newOrder.Notes,
		MinEthosRequired: newOrder.MinEthosRequired,
		MaxTradeAmount:   newOrder.MaxTradeAmount,
	}
}

// ToApiOrder converts a domain Order to an API Order.
func ToApiOrder(order *models.Order) *api.Order {
	requests := make([]api.FulfillmentRequest, len(order.Requests))
	for i := range order.Requests {
		requests[i] = *ToApiFulfillmentRequest(&order.Requests[i])
	}

	return &api.Order{
		Id:               order.ID,
		Type:             string(order.Type),
		CreatorId:        order.CreatorID,
		CreatorScore:     order.Creator.EthosScore,
		Asset:            order.Asset,
		Amount:           order.Amount,
		Price:            order.Price,
		Currency:         order.Currency,
		Region:           order.Region,
		PaymentMethod:    order.PaymentMethod,
		Notes:            order.Notes,
		MinEthosRequired: order.MinEthosRequired,
		MaxTradeAmount:   order.MaxTradeAmount,
		Status:           string(order.Status),
		CreatedAt:        order.CreatedAt,
		Requests:         requests,
	}
}

// ToApiFulfillmentRequest converts a domain FulfillmentRequest to its API form.
func ToApiFulfillmentRequest(req *models.FulfillmentRequest) *api.FulfillmentRequest {
	return &api.FulfillmentRequest{
		Id:              req.ID,
		OrderId:         req.OrderID,
		RequesterId:     req.RequesterID,
		RequesterScore:  req.Requester.EthosScore,
		RequestedAmount: req.RequestedAmount,
		Status:          string(req.Status),
		CreatedAt:       req.CreatedAt,
	}
}

// ToApiChatMessage converts a domain ChatMessage to its API form.
func ToApiChatMessage(msg *models.ChatMessage) *api.ChatMessage {
	return &api.ChatMessage{
		Id:        msg.ID,
		DealId:    msg.DealID,
		SenderId:  msg.SenderID,
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
	}
}

// ToApiDeal converts a domain DealAgreement to an API Deal.
func ToApiDeal(deal *models.DealAgreement) *api.Deal {
	messages := make([]api.ChatMessage, len(deal.Messages))
	for i := range deal.Messages {
		messages[i] = *ToApiChatMessage(&deal.Messages[i])
	}

	return &api.Deal{
		Id:              deal.ID,
		OrderId:         deal.OrderID,
		BuyerId:         deal.BuyerID,
		SellerId:        deal.SellerID,
		Asset:           deal.Asset,
		Amount:          deal.Amount,
		Price:           deal.Price,
		Currency:        deal.Currency,
		Region:          deal.Region,
		BuyerConfirmed:  deal.BuyerConfirmed,
		SellerConfirmed: deal.SellerConfirmed,
		Status:          string(deal.Status),
		Messages:        messages,
		CreatedAt:       deal.CreatedAt,
		CompletedAt:     deal.CompletedAt,
		ReferenceHash:   deal.ReferenceHash,
	}
}
