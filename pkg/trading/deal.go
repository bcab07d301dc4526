package trading

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/tradeguild/ethos-p2p/pkg/models"
)

// NewDealFromRequest builds the deal agreement for an accepted fulfillment
// request. On a sell order the requester is buying and the creator selling;
// a buy order inverts the roles.
func NewDealFromRequest(order *models.Order, req *models.FulfillmentRequest) *models.DealAgreement {
	buyer, seller := req.Requester, order.Creator
	if order.Type == models.BUY {
		buyer, seller = order.Creator, req.Requester
	}

	return &models.DealAgreement{
		OrderID:       order.ID,
		BuyerID:       buyer.ID,
		SellerID:      seller.ID,
		Buyer:         buyer,
		Seller:        seller,
		Asset:         order.Asset,
		Amount:        req.RequestedAmount,
		Price:         order.Price,
		Currency:      order.Currency,
		Region:        order.Region,
		Status:        models.DealInProgress,
		Messages:      []models.ChatMessage{},
		ReferenceHash: NewReferenceHash(),
	}
}

// NewReferenceHash generates the opaque settlement reference attached to a
// deal: "0x" followed by 64 random hex characters. It carries no on-chain
// meaning.
func NewReferenceHash() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("reading random bytes: %v", err))
	}
	return "0x" + hex.EncodeToString(buf)
}
