package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/tradeguild/ethos-p2p/pkg/models"
	"github.com/tradeguild/ethos-p2p/pkg/storage"
)

// AcceptRequest atomically accepts a pending request against an open order
// and persists the deal built from the pair. The order update is guarded on
// the order still being open and the request still pending, so of two
// racing accepts only the first commits.
func (s *Store) AcceptRequest(ctx context.Context, orderID, requestID string, deal *models.DealAgreement) (*models.DealAgreement, error) {
	// 1. Get the current order to locate the request inside the list.
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order for acceptance: %w", err)
	}

	idx := -1
	for i := range order.Requests {
		if order.Requests[i].ID == requestID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, storage.ErrNotFound
	}
	if order.Requests[idx].Status != models.RequestPending {
		return nil, storage.ErrRequestNotPending
	}

	// 2. Complete the deal object with server-side details.
	deal.ID = uuid.New().String()
	deal.CreatedAt = time.Now()
	if deal.Messages == nil {
		deal.Messages = []models.ChatMessage{}
	}

	dealAV, err := attributevalue.MarshalMap(deal)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deal: %w", err)
	}

	// 3. Construct the TransactWriteItems input.
	reqPath := fmt.Sprintf("requests[%d]", idx)
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: accept the request and take the order off the book.
				Update: &types.Update{
					TableName:           aws.String(s.OrdersTableName),
					Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: orderID}},
					UpdateExpression:    aws.String(fmt.Sprintf("SET #status = :in_progress, %s.#st = :accepted", reqPath)),
					ConditionExpression: aws.String(fmt.Sprintf("#status = :open AND %s.id = :rid AND %s.#st = :pending", reqPath, reqPath)),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
						"#st":     "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":in_progress": &types.AttributeValueMemberS{Value: string(models.OrderInProgress)},
						":accepted":    &types.AttributeValueMemberS{Value: string(models.RequestAccepted)},
						":open":        &types.AttributeValueMemberS{Value: string(models.OrderOpen)},
						":rid":         &types.AttributeValueMemberS{Value: requestID},
						":pending":     &types.AttributeValueMemberS{Value: string(models.RequestPending)},
					},
				},
			},
			{
				// Operation 2: create the deal record.
				Put: &types.Put{
					TableName:           aws.String(s.DealsTableName),
					Item:                dealAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	// 4. Execute the transaction.
	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			// The order update failing its conditional check means another
			// accept got there first.
			if len(tce.CancellationReasons) > 0 && tce.CancellationReasons[0].Code != nil && *tce.CancellationReasons[0].Code == "ConditionalCheckFailed" {
				return nil, storage.ErrOrderNotOpen
			}
		}
		return nil, fmt.Errorf("failed to execute acceptance transaction: %w", err)
	}

	return deal, nil
}
