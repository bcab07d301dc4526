package trading

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tradeguild/ethos-p2p/pkg/models"
	"github.com/tradeguild/ethos-p2p/pkg/notify"
	notifymocks "github.com/tradeguild/ethos-p2p/pkg/notify/mocks"
	"github.com/tradeguild/ethos-p2p/pkg/storage"
	"github.com/tradeguild/ethos-p2p/pkg/storage/memory"
	"github.com/tradeguild/ethos-p2p/pkg/trust"
	"github.com/tradeguild/ethos-p2p/pkg/websockets"
)

type testActor struct {
	profile *models.UserProfile
}

func (a *testActor) Profile() *models.UserProfile { return a.profile }

func (a *testActor) CanTrade() bool {
	return a.profile != nil && len(a.profile.Identities) > 0 && a.profile.EthosScore >= trust.MinTradingScore
}

func (a *testActor) TrustTier() trust.Tier {
	if a.profile == nil {
		return trust.ResolveTier(0)
	}
	return trust.ResolveTier(a.profile.EthosScore)
}

func actorWithScore(id string, score int) *testActor {
	return &testActor{profile: &models.UserProfile{
		ID:         id,
		EthosScore: score,
		Identities: []models.SocialIdentity{{Platform: models.PlatformTwitter, Username: id}},
	}}
}

type countingTracker struct {
	mu        sync.Mutex
	started   map[string]int
	completed map[string]int
}

func newCountingTracker() *countingTracker {
	return &countingTracker{started: map[string]int{}, completed: map[string]int{}}
}

func (c *countingTracker) DealStarted(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started[userID]++
}

func (c *countingTracker) DealCompleted(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completed[userID]++
}

func newTestService(t *testing.T) (*Service, *notifymocks.Notifier, *countingTracker) {
	t.Helper()
	notifier := new(notifymocks.Notifier)
	tracker := newCountingTracker()
	return NewService(memory.New(), notifier, &websockets.NoOpPublisher{}, tracker), notifier, tracker
}

func sellOrder() *models.Order {
	return &models.Order{
		Type:     models.SELL,
		Asset:    "USDT",
		Amount:   5000,
		Price:    1580,
		Currency: "NGN",
		Region:   "NG",
	}
}

func TestCreateOrder(t *testing.T) {
	t.Run("Defaults Score Bar And Trade Ceiling", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		creator := actorWithScore("creator-1", 1850)

		order, err := svc.CreateOrder(context.Background(), creator, sellOrder())

		require.NoError(t, err)
		assert.NotEmpty(t, order.ID)
		assert.Equal(t, "creator-1", order.CreatorID)
		assert.Equal(t, models.OrderOpen, order.Status)
		assert.Equal(t, trust.MinTradingScore, order.MinEthosRequired)
		assert.Equal(t, float64(5000), order.MaxTradeAmount)
	})

	t.Run("Untrusted Creator Rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		creator := actorWithScore("creator-1", 1399)

		_, err := svc.CreateOrder(context.Background(), creator, sellOrder())

		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Invalid Fields Rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		creator := actorWithScore("creator-1", 1850)

		for name, mutate := range map[string]func(*models.Order){
			"Bad Type":        func(o *models.Order) { o.Type = "short" },
			"No Asset":        func(o *models.Order) { o.Asset = " " },
			"No Currency":     func(o *models.Order) { o.Currency = "" },
			"Zero Amount":     func(o *models.Order) { o.Amount = 0 },
			"Negative Price":  func(o *models.Order) { o.Price = -1 },
			"Negative MinSco": func(o *models.Order) { o.MinEthosRequired = -5 },
		} {
			t.Run(name, func(t *testing.T) {
				order := sellOrder()
				mutate(order)
				_, err := svc.CreateOrder(context.Background(), creator, order)
				assert.ErrorIs(t, err, ErrValidation)
			})
		}
	})
}

func TestSubmitRequest(t *testing.T) {
	setup := func(t *testing.T) (*Service, *models.Order) {
		svc, _, _ := newTestService(t)
		order, err := svc.CreateOrder(context.Background(), actorWithScore("creator-1", 1850), sellOrder())
		require.NoError(t, err)
		return svc, order
	}

	t.Run("Success", func(t *testing.T) {
		svc, order := setup(t)
		req, err := svc.SubmitRequest(context.Background(), actorWithScore("buyer-1", 1650), order.ID, 800)

		require.NoError(t, err)
		assert.NotEmpty(t, req.ID)
		assert.Equal(t, models.RequestPending, req.Status)
		assert.Equal(t, "buyer-1", req.RequesterID)
	})

	t.Run("Creator Cannot Fulfill Own Order", func(t *testing.T) {
		svc, order := setup(t)
		_, err := svc.SubmitRequest(context.Background(), actorWithScore("creator-1", 1850), order.ID, 100)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Score Below Order Minimum", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		order := sellOrder()
		order.MinEthosRequired = 1700
		created, err := svc.CreateOrder(context.Background(), actorWithScore("creator-1", 1850), order)
		require.NoError(t, err)

		_, err = svc.SubmitRequest(context.Background(), actorWithScore("buyer-1", 1650), created.ID, 100)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Tier Ceiling Bounds Amount", func(t *testing.T) {
		svc, order := setup(t)
		// BASIC tier caps a single trade at 500.
		basic := actorWithScore("buyer-1", 1450)

		_, err := svc.SubmitRequest(context.Background(), basic, order.ID, 500)
		assert.NoError(t, err)

		_, err = svc.SubmitRequest(context.Background(), basic, order.ID, 501)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Order Amount Bounds Amount", func(t *testing.T) {
		svc, order := setup(t)
		_, err := svc.SubmitRequest(context.Background(), actorWithScore("buyer-1", 2100), order.ID, 5001)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Closed Order Rejected", func(t *testing.T) {
		svc, order := setup(t)
		buyer := actorWithScore("buyer-1", 1650)
		req, err := svc.SubmitRequest(context.Background(), buyer, order.ID, 100)
		require.NoError(t, err)
		acceptAll(t, svc, order.ID, req.ID)

		_, err = svc.SubmitRequest(context.Background(), actorWithScore("buyer-2", 1650), order.ID, 100)
		assert.ErrorIs(t, err, storage.ErrOrderNotOpen)
	})

	t.Run("Unknown Order", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.SubmitRequest(context.Background(), actorWithScore("buyer-1", 1650), "missing", 100)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func acceptAll(t *testing.T, svc *Service, orderID, requestID string) *models.DealAgreement {
	t.Helper()
	svc.notifier.(*notifymocks.Notifier).On("Notify", mock.Anything, mock.Anything).Return(nil).Maybe()
	deal, err := svc.AcceptRequest(context.Background(), actorWithScore("creator-1", 1850), orderID, requestID)
	require.NoError(t, err)
	return deal
}

func TestAcceptRequest(t *testing.T) {
	setup := func(t *testing.T, orderType models.OrderType) (*Service, *notifymocks.Notifier, *countingTracker, *models.Order, *models.FulfillmentRequest) {
		svc, notifier, tracker := newTestService(t)
		order := sellOrder()
		order.Type = orderType
		created, err := svc.CreateOrder(context.Background(), actorWithScore("creator-1", 1850), order)
		require.NoError(t, err)
		req, err := svc.SubmitRequest(context.Background(), actorWithScore("requester-1", 1650), created.ID, 400)
		require.NoError(t, err)
		return svc, notifier, tracker, created, req
	}

	t.Run("Sell Order Makes Requester The Buyer", func(t *testing.T) {
		svc, notifier, tracker, order, req := setup(t, models.SELL)
		notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e notify.Event) bool {
			return e.Type == notify.EventRequestAccepted && e.UserID == "requester-1"
		})).Return(nil)

		deal, err := svc.AcceptRequest(context.Background(), actorWithScore("creator-1", 1850), order.ID, req.ID)

		require.NoError(t, err)
		assert.Equal(t, "requester-1", deal.BuyerID)
		assert.Equal(t, "creator-1", deal.SellerID)
		assert.Equal(t, models.DealInProgress, deal.Status)
		assert.Len(t, deal.ReferenceHash, 66)
		assert.Equal(t, "0x", deal.ReferenceHash[:2])
		assert.Equal(t, 1, tracker.started["requester-1"])
		assert.Equal(t, 1, tracker.started["creator-1"])
		notifier.AssertExpectations(t)
	})

	t.Run("Buy Order Inverts Roles", func(t *testing.T) {
		svc, notifier, _, order, req := setup(t, models.BUY)
		notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

		deal, err := svc.AcceptRequest(context.Background(), actorWithScore("creator-1", 1850), order.ID, req.ID)

		require.NoError(t, err)
		assert.Equal(t, "creator-1", deal.BuyerID)
		assert.Equal(t, "requester-1", deal.SellerID)
	})

	t.Run("Only Creator Can Accept", func(t *testing.T) {
		svc, _, _, order, req := setup(t, models.SELL)
		_, err := svc.AcceptRequest(context.Background(), actorWithScore("requester-1", 1650), order.ID, req.ID)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Second Accept Loses", func(t *testing.T) {
		svc, notifier, _, order, req := setup(t, models.SELL)
		req2, err := svc.SubmitRequest(context.Background(), actorWithScore("requester-2", 1650), order.ID, 300)
		require.NoError(t, err)
		notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

		_, err = svc.AcceptRequest(context.Background(), actorWithScore("creator-1", 1850), order.ID, req.ID)
		require.NoError(t, err)

		_, err = svc.AcceptRequest(context.Background(), actorWithScore("creator-1", 1850), order.ID, req2.ID)
		assert.ErrorIs(t, err, storage.ErrOrderNotOpen)
	})

	t.Run("Notify Failure Keeps The Deal", func(t *testing.T) {
		svc, notifier, _, order, req := setup(t, models.SELL)
		notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("queue down"))

		deal, err := svc.AcceptRequest(context.Background(), actorWithScore("creator-1", 1850), order.ID, req.ID)

		require.NoError(t, err)
		assert.NotNil(t, deal)
	})
}

func TestDenyRequest(t *testing.T) {
	svc, notifier, _ := newTestService(t)
	order, err := svc.CreateOrder(context.Background(), actorWithScore("creator-1", 1850), sellOrder())
	require.NoError(t, err)
	req, err := svc.SubmitRequest(context.Background(), actorWithScore("requester-1", 1650), order.ID, 400)
	require.NoError(t, err)

	t.Run("Only Creator Can Deny", func(t *testing.T) {
		_, err := svc.DenyRequest(context.Background(), actorWithScore("requester-1", 1650), order.ID, req.ID)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Denial Notifies Requester And Keeps Order Open", func(t *testing.T) {
		notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e notify.Event) bool {
			return e.Type == notify.EventRequestDenied && e.UserID == "requester-1"
		})).Return(nil)

		denied, err := svc.DenyRequest(context.Background(), actorWithScore("creator-1", 1850), order.ID, req.ID)

		require.NoError(t, err)
		assert.Equal(t, models.RequestDenied, denied.Status)

		fresh, err := svc.GetOrder(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderOpen, fresh.Status)
		notifier.AssertExpectations(t)
	})

	t.Run("Denied Request Is Terminal", func(t *testing.T) {
		_, err := svc.AcceptRequest(context.Background(), actorWithScore("creator-1", 1850), order.ID, req.ID)
		assert.ErrorIs(t, err, storage.ErrRequestNotPending)
	})
}

func TestDealLifecycle(t *testing.T) {
	setup := func(t *testing.T) (*Service, *notifymocks.Notifier, *countingTracker, *models.DealAgreement) {
		svc, notifier, tracker := newTestService(t)
		order, err := svc.CreateOrder(context.Background(), actorWithScore("creator-1", 1850), sellOrder())
		require.NoError(t, err)
		req, err := svc.SubmitRequest(context.Background(), actorWithScore("requester-1", 1650), order.ID, 400)
		require.NoError(t, err)
		notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)
		deal, err := svc.AcceptRequest(context.Background(), actorWithScore("creator-1", 1850), order.ID, req.ID)
		require.NoError(t, err)
		return svc, notifier, tracker, deal
	}

	buyer := func() *testActor { return actorWithScore("requester-1", 1650) }
	seller := func() *testActor { return actorWithScore("creator-1", 1850) }
	stranger := func() *testActor { return actorWithScore("stranger", 2100) }

	t.Run("Messages Flow Between Parties Only", func(t *testing.T) {
		svc, _, _, deal := setup(t)

		msg, err := svc.PostMessage(context.Background(), buyer(), deal.ID, "  payment sent  ")
		require.NoError(t, err)
		assert.Equal(t, "payment sent", msg.Content)

		_, err = svc.PostMessage(context.Background(), buyer(), deal.ID, "   ")
		assert.ErrorIs(t, err, ErrValidation)

		_, err = svc.PostMessage(context.Background(), stranger(), deal.ID, "hello")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Single Confirmation Does Not Complete", func(t *testing.T) {
		svc, _, tracker, deal := setup(t)

		confirmed, err := svc.Confirm(context.Background(), buyer(), deal.ID)

		require.NoError(t, err)
		assert.True(t, confirmed.BuyerConfirmed)
		assert.False(t, confirmed.SellerConfirmed)
		assert.Equal(t, models.DealInProgress, confirmed.Status)
		assert.Zero(t, tracker.completed["requester-1"])
	})

	t.Run("Both Confirmations Complete Once", func(t *testing.T) {
		svc, _, tracker, deal := setup(t)

		_, err := svc.Confirm(context.Background(), buyer(), deal.ID)
		require.NoError(t, err)
		completed, err := svc.Confirm(context.Background(), seller(), deal.ID)
		require.NoError(t, err)

		assert.Equal(t, models.DealCompleted, completed.Status)
		require.NotNil(t, completed.CompletedAt)
		assert.Equal(t, 1, tracker.completed["requester-1"])
		assert.Equal(t, 1, tracker.completed["creator-1"])

		// Re-confirming after completion changes nothing.
		again, err := svc.Confirm(context.Background(), seller(), deal.ID)
		require.NoError(t, err)
		assert.Equal(t, completed.CompletedAt.Unix(), again.CompletedAt.Unix())
		assert.Equal(t, 1, tracker.completed["creator-1"])
	})

	t.Run("Confirmation Order Does Not Matter", func(t *testing.T) {
		svc, _, _, deal := setup(t)

		_, err := svc.Confirm(context.Background(), seller(), deal.ID)
		require.NoError(t, err)
		completed, err := svc.Confirm(context.Background(), buyer(), deal.ID)
		require.NoError(t, err)

		assert.Equal(t, models.DealCompleted, completed.Status)
	})

	t.Run("Stranger Cannot Confirm Or Read", func(t *testing.T) {
		svc, _, _, deal := setup(t)

		_, err := svc.Confirm(context.Background(), stranger(), deal.ID)
		assert.ErrorIs(t, err, storage.ErrNotParticipant)

		_, err = svc.GetDeal(context.Background(), stranger(), deal.ID)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Completed Deal Rejects New Messages", func(t *testing.T) {
		svc, _, _, deal := setup(t)
		_, err := svc.Confirm(context.Background(), buyer(), deal.ID)
		require.NoError(t, err)
		_, err = svc.Confirm(context.Background(), seller(), deal.ID)
		require.NoError(t, err)

		_, err = svc.PostMessage(context.Background(), buyer(), deal.ID, "one more thing")
		assert.ErrorIs(t, err, storage.ErrDealClosed)
	})

	t.Run("Parties List Their Deals", func(t *testing.T) {
		svc, _, _, deal := setup(t)

		deals, err := svc.ListDealsByUser(context.Background(), buyer())
		require.NoError(t, err)
		require.Len(t, deals, 1)
		assert.Equal(t, deal.ID, deals[0].ID)

		deals, err = svc.ListDealsByUser(context.Background(), stranger())
		require.NoError(t, err)
		assert.Empty(t, deals)
	})
}
