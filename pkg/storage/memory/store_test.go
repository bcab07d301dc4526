package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradeguild/ethos-p2p/pkg/models"
	"github.com/tradeguild/ethos-p2p/pkg/storage"
)

func seedOrder(t *testing.T, s *Store) *models.Order {
	t.Helper()
	order, err := s.CreateOrder(context.Background(), &models.Order{
		Type:             models.SELL,
		CreatorID:        "creator-1",
		Asset:            "USDT",
		Amount:           5000,
		Price:            1.02,
		Currency:         "NGN",
		Region:           "Nigeria",
		MinEthosRequired: 1400,
		MaxTradeAmount:   2500,
	})
	require.NoError(t, err)
	return order
}

func seedRequest(t *testing.T, s *Store, orderID string) *models.FulfillmentRequest {
	t.Helper()
	req, err := s.AppendRequest(context.Background(), &models.FulfillmentRequest{
		OrderID:         orderID,
		RequesterID:     "requester-1",
		RequestedAmount: 300,
	})
	require.NoError(t, err)
	return req
}

func TestCreateOrder_SetsServerSideFields(t *testing.T) {
	s := New()
	order := seedOrder(t, s)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderOpen, order.Status)
	assert.False(t, order.CreatedAt.IsZero())
	assert.Empty(t, order.Requests)
}

func TestAppendRequest(t *testing.T) {
	s := New()
	order := seedOrder(t, s)

	req := seedRequest(t, s, order.ID)
	assert.Equal(t, models.RequestPending, req.Status)
	assert.NotEmpty(t, req.ID)

	stored, err := s.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Requests, 1)
	assert.Equal(t, req.ID, stored.Requests[0].ID)

	t.Run("Unknown Order", func(t *testing.T) {
		_, err := s.AppendRequest(context.Background(), &models.FulfillmentRequest{OrderID: "nope"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestAcceptRequest_FirstCommitterWins(t *testing.T) {
	s := New()
	order := seedOrder(t, s)
	reqA := seedRequest(t, s, order.ID)
	reqB := seedRequest(t, s, order.ID)

	deal := func() *models.DealAgreement {
		return &models.DealAgreement{
			OrderID: order.ID, BuyerID: "requester-1", SellerID: "creator-1",
			Status: models.DealInProgress, Amount: 300,
		}
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{reqA.ID, reqB.ID} {
		wg.Add(1)
		go func(i int, requestID string) {
			defer wg.Done()
			_, errs[i] = s.AcceptRequest(context.Background(), order.ID, requestID, deal())
		}(i, id)
	}
	wg.Wait()

	// Exactly one accept commits; the loser is told the order is gone.
	if errs[0] == nil {
		assert.ErrorIs(t, errs[1], storage.ErrOrderNotOpen)
	} else {
		assert.NoError(t, errs[1])
		assert.ErrorIs(t, errs[0], storage.ErrOrderNotOpen)
	}

	stored, err := s.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderInProgress, stored.Status)
}

func TestAcceptRequest_AlreadyDecidedRequest(t *testing.T) {
	s := New()
	order := seedOrder(t, s)
	req := seedRequest(t, s, order.ID)

	_, err := s.DenyRequest(context.Background(), order.ID, req.ID)
	require.NoError(t, err)

	_, err = s.AcceptRequest(context.Background(), order.ID, req.ID, &models.DealAgreement{OrderID: order.ID})
	assert.ErrorIs(t, err, storage.ErrRequestNotPending)
}

func TestDenyRequest_Terminal(t *testing.T) {
	s := New()
	order := seedOrder(t, s)
	req := seedRequest(t, s, order.ID)

	denied, err := s.DenyRequest(context.Background(), order.ID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestDenied, denied.Status)

	// Denial leaves the order open.
	stored, _ := s.GetOrder(context.Background(), order.ID)
	assert.Equal(t, models.OrderOpen, stored.Status)

	_, err = s.DenyRequest(context.Background(), order.ID, req.ID)
	assert.ErrorIs(t, err, storage.ErrRequestNotPending)
}

func TestListOpenOrders_FiltersAndOrders(t *testing.T) {
	s := New()
	first := seedOrder(t, s)
	second := seedOrder(t, s)
	_, err := s.CreateOrder(context.Background(), &models.Order{Type: models.BUY, CreatorID: "creator-2", Asset: "USDC", Amount: 100, Price: 82.5, Currency: "INR", Region: "India"})
	require.NoError(t, err)

	sells, err := s.ListOpenOrders(context.Background(), models.SELL)
	require.NoError(t, err)
	require.Len(t, sells, 2)
	// Newest first.
	assert.Equal(t, second.ID, sells[0].ID)
	assert.Equal(t, first.ID, sells[1].ID)
}

func acceptedDeal(t *testing.T, s *Store) *models.DealAgreement {
	t.Helper()
	order := seedOrder(t, s)
	req := seedRequest(t, s, order.ID)
	deal, err := s.AcceptRequest(context.Background(), order.ID, req.ID, &models.DealAgreement{
		OrderID: order.ID, BuyerID: "requester-1", SellerID: "creator-1",
		Status: models.DealInProgress, Amount: req.RequestedAmount,
	})
	require.NoError(t, err)
	return deal
}

func TestAppendMessage_OrderedAndGuarded(t *testing.T) {
	s := New()
	deal := acceptedDeal(t, s)

	for _, content := range []string{"first", "second", "third"} {
		_, err := s.AppendMessage(context.Background(), deal.ID, &models.ChatMessage{SenderID: "requester-1", Content: content})
		require.NoError(t, err)
	}

	stored, err := s.GetDeal(context.Background(), deal.ID)
	require.NoError(t, err)
	require.Len(t, stored.Messages, 3)
	assert.Equal(t, "first", stored.Messages[0].Content)
	assert.Equal(t, "second", stored.Messages[1].Content)
	assert.Equal(t, "third", stored.Messages[2].Content)

	// Complete the deal, then messages are refused.
	_, _, err = s.ConfirmDeal(context.Background(), deal.ID, "requester-1")
	require.NoError(t, err)
	_, _, err = s.ConfirmDeal(context.Background(), deal.ID, "creator-1")
	require.NoError(t, err)

	_, err = s.AppendMessage(context.Background(), deal.ID, &models.ChatMessage{SenderID: "requester-1", Content: "late"})
	assert.ErrorIs(t, err, storage.ErrDealClosed)
}

func TestConfirmDeal(t *testing.T) {
	t.Run("Completes Only When Both Confirm", func(t *testing.T) {
		s := New()
		deal := acceptedDeal(t, s)

		after, completed, err := s.ConfirmDeal(context.Background(), deal.ID, "creator-1")
		require.NoError(t, err)
		assert.False(t, completed)
		assert.Equal(t, models.DealInProgress, after.Status)
		assert.True(t, after.SellerConfirmed)
		assert.False(t, after.BuyerConfirmed)
		assert.Nil(t, after.CompletedAt)

		after, completed, err = s.ConfirmDeal(context.Background(), deal.ID, "requester-1")
		require.NoError(t, err)
		assert.True(t, completed)
		assert.Equal(t, models.DealCompleted, after.Status)
		require.NotNil(t, after.CompletedAt)
	})

	t.Run("Idempotent", func(t *testing.T) {
		s := New()
		deal := acceptedDeal(t, s)

		first, _, err := s.ConfirmDeal(context.Background(), deal.ID, "requester-1")
		require.NoError(t, err)
		second, completed, err := s.ConfirmDeal(context.Background(), deal.ID, "requester-1")
		require.NoError(t, err)

		assert.False(t, completed)
		assert.Equal(t, first.Status, second.Status)
		assert.Equal(t, first.BuyerConfirmed, second.BuyerConfirmed)
		assert.Equal(t, first.SellerConfirmed, second.SellerConfirmed)
	})

	t.Run("After Completion Is A NoOp", func(t *testing.T) {
		s := New()
		deal := acceptedDeal(t, s)

		s.ConfirmDeal(context.Background(), deal.ID, "requester-1")
		_, _, err := s.ConfirmDeal(context.Background(), deal.ID, "creator-1")
		require.NoError(t, err)

		before, err := s.GetDeal(context.Background(), deal.ID)
		require.NoError(t, err)

		after, completed, err := s.ConfirmDeal(context.Background(), deal.ID, "creator-1")
		require.NoError(t, err)
		assert.False(t, completed)
		assert.Equal(t, before.Status, after.Status)
		assert.Equal(t, before.CompletedAt.Unix(), after.CompletedAt.Unix())
	})

	t.Run("Stranger Rejected", func(t *testing.T) {
		s := New()
		deal := acceptedDeal(t, s)

		_, _, err := s.ConfirmDeal(context.Background(), deal.ID, "stranger")
		assert.ErrorIs(t, err, storage.ErrNotParticipant)
	})
}

func TestWebSocketConnections(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.AddConnection(ctx, "conn-1"))
	require.NoError(t, s.AddConnection(ctx, "conn-2"))

	conns, err := s.GetAllConnections(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"conn-1", "conn-2"}, conns)

	require.NoError(t, s.RemoveConnection(ctx, "conn-1"))
	conns, _ = s.GetAllConnections(ctx)
	assert.Equal(t, []string{"conn-2"}, conns)
}
