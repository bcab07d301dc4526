package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tradeguild/ethos-p2p/pkg/models"
	"github.com/tradeguild/ethos-p2p/pkg/storage"
	"github.com/tradeguild/ethos-p2p/pkg/storage/dynamodb/mocks"
)

func dealItem(t *testing.T, buyerConfirmed, sellerConfirmed bool) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(&models.DealAgreement{
		ID:              "deal-1",
		OrderID:         "order-1",
		BuyerID:         "buyer-1",
		SellerID:        "seller-1",
		BuyerConfirmed:  buyerConfirmed,
		SellerConfirmed: sellerConfirmed,
		Status:          models.DealInProgress,
	})
	assert.NoError(t, err)
	return item
}

func TestConfirmDeal(t *testing.T) {
	t.Run("First Confirmation", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, DealsTableName: "deals"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: dealItem(t, false, false)}, nil)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.UpdateItemOutput{Attributes: dealItem(t, true, false)}, nil)

		deal, completed, err := store.ConfirmDeal(context.Background(), "deal-1", "buyer-1")

		assert.NoError(t, err)
		assert.False(t, completed)
		assert.Equal(t, models.DealInProgress, deal.Status)
		assert.True(t, deal.BuyerConfirmed)
		mockClient.AssertExpectations(t)
	})

	t.Run("Second Confirmation Completes", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, DealsTableName: "deals"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: dealItem(t, true, false)}, nil)
		// Flag write returns both flags set, then the completion stamp lands.
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.UpdateItemOutput{Attributes: dealItem(t, true, true)}, nil)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.UpdateItemOutput{}, nil)

		deal, completed, err := store.ConfirmDeal(context.Background(), "deal-1", "seller-1")

		assert.NoError(t, err)
		assert.True(t, completed)
		assert.Equal(t, models.DealCompleted, deal.Status)
		assert.NotNil(t, deal.CompletedAt)
		mockClient.AssertExpectations(t)
	})

	t.Run("Completion Already Stamped", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, DealsTableName: "deals"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: dealItem(t, true, false)}, nil)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.UpdateItemOutput{Attributes: dealItem(t, true, true)}, nil)
		// The counterparty's confirm won the completion race.
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Once().Return(nil, &types.ConditionalCheckFailedException{})
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: dealItem(t, true, true)}, nil)

		_, completed, err := store.ConfirmDeal(context.Background(), "deal-1", "seller-1")

		assert.NoError(t, err)
		assert.False(t, completed)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not A Participant", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, DealsTableName: "deals"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: dealItem(t, false, false)}, nil)

		_, _, err := store.ConfirmDeal(context.Background(), "deal-1", "stranger")

		assert.ErrorIs(t, err, storage.ErrNotParticipant)
		mockClient.AssertExpectations(t)
	})

	t.Run("Deal Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, DealsTableName: "deals"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, _, err := store.ConfirmDeal(context.Background(), "deal-1", "buyer-1")

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertExpectations(t)
	})
}
