package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/tradeguild/ethos-p2p/pkg/models"
	"github.com/tradeguild/ethos-p2p/pkg/storage"
)

const (
	buyerIDIndex  = "buyer_id-index"
	sellerIDIndex = "seller_id-index"
)

// GetDeal retrieves a deal from DynamoDB by its ID.
func (s *Store) GetDeal(ctx context.Context, dealID string) (*models.DealAgreement, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": dealID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deal ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.DealsTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get deal from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var deal models.DealAgreement
	if err := attributevalue.UnmarshalMap(result.Item, &deal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deal: %w", err)
	}

	return &deal, nil
}

// ListDealsByUser retrieves all deals the user participates in, newest first.
// The buyer and seller indexes are queried separately and merged.
func (s *Store) ListDealsByUser(ctx context.Context, userID string) ([]models.DealAgreement, error) {
	var deals []models.DealAgreement
	for index, attr := range map[string]string{buyerIDIndex: "buyer_id", sellerIDIndex: "seller_id"} {
		result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.DealsTableName),
			IndexName:              aws.String(index),
			KeyConditionExpression: aws.String(fmt.Sprintf("%s = :userID", attr)),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":userID": &types.AttributeValueMemberS{Value: userID},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query deals by %s: %w", attr, err)
		}

		var batch []models.DealAgreement
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal deals: %w", err)
		}
		deals = append(deals, batch...)
	}

	sort.Slice(deals, func(i, j int) bool { return deals[i].CreatedAt.After(deals[j].CreatedAt) })
	return deals, nil
}

// AppendMessage appends a chat message to an in-progress deal.
func (s *Store) AppendMessage(ctx context.Context, dealID string, msg *models.ChatMessage) (*models.ChatMessage, error) {
	msg.ID = uuid.New().String()
	msg.DealID = dealID
	msg.Timestamp = time.Now()

	msgAV, err := attributevalue.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.DealsTableName),
		Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: dealID}},
		UpdateExpression:    aws.String("SET messages = list_append(messages, :msg)"),
		ConditionExpression: aws.String("attribute_exists(id) AND #status = :in_progress"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":msg":         &types.AttributeValueMemberL{Value: []types.AttributeValue{msgAV}},
			":in_progress": &types.AttributeValueMemberS{Value: string(models.DealInProgress)},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, storage.ErrDealClosed
		}
		return nil, fmt.Errorf("failed to append message: %w", err)
	}

	return msg, nil
}

// ConfirmDeal sets the caller's confirmation flag, then checks the flags the
// write returned (check-after-write) and stamps completion exactly once via
// a conditional update.
func (s *Store) ConfirmDeal(ctx context.Context, dealID, userID string) (*models.DealAgreement, bool, error) {
	deal, err := s.GetDeal(ctx, dealID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get deal for confirmation: %w", err)
	}

	var flag string
	switch userID {
	case deal.BuyerID:
		flag = "buyer_confirmed"
	case deal.SellerID:
		flag = "seller_confirmed"
	default:
		return nil, false, storage.ErrNotParticipant
	}

	// 1. Set the party's flag and read back the full item in the same call.
	result, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.DealsTableName),
		Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: dealID}},
		UpdateExpression:    aws.String(fmt.Sprintf("SET %s = :true", flag)),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true": &types.AttributeValueMemberBOOL{Value: true},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to set confirmation flag: %w", err)
	}

	var updated models.DealAgreement
	if err := attributevalue.UnmarshalMap(result.Attributes, &updated); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal confirmed deal: %w", err)
	}

	if !(updated.Status == models.DealInProgress && updated.BuyerConfirmed && updated.SellerConfirmed) {
		return &updated, false, nil
	}

	// 2. Both flags hold: stamp completion. The condition makes the stamp
	// exactly-once even if the counterparty's confirm runs concurrently.
	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal completion time: %w", err)
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.DealsTableName),
		Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: dealID}},
		UpdateExpression:    aws.String("SET #status = :completed, completed_at = :now"),
		ConditionExpression: aws.String("#status = :in_progress"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":completed":   &types.AttributeValueMemberS{Value: string(models.DealCompleted)},
			":in_progress": &types.AttributeValueMemberS{Value: string(models.DealInProgress)},
			":now":         nowAV,
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			// The counterparty's confirm already completed the deal.
			fresh, gerr := s.GetDeal(ctx, dealID)
			if gerr != nil {
				return nil, false, fmt.Errorf("failed to re-read completed deal: %w", gerr)
			}
			return fresh, false, nil
		}
		return nil, false, fmt.Errorf("failed to stamp completion: %w", err)
	}

	updated.Status = models.DealCompleted
	updated.CompletedAt = &now
	return &updated, true, nil
}
