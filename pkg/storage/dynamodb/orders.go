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

const (
	openOrdersGSI   = "status-created_at-index"
	creatorIDIndex  = "creator_id-index"
)

// CreateOrder stores a new order, completing it with server-side details.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.ID = uuid.New().String()
	order.Status = models.OrderOpen
	order.CreatedAt = time.Now()
	if order.Requests == nil {
		order.Requests = []models.FulfillmentRequest{}
	}

	item, err := attributevalue.MarshalMap(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.OrdersTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to put order: %w", err)
	}

	return order, nil
}

// GetOrder retrieves an order from DynamoDB by its ID.
func (s *Store) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": orderID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.OrdersTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get order from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var order models.Order
	if err := attributevalue.UnmarshalMap(result.Item, &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order: %w", err)
	}

	return &order, nil
}

// ListOpenOrders retrieves all open orders of the given type, newest first.
func (s *Store) ListOpenOrders(ctx context.Context, orderType models.OrderType) ([]models.Order, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.OrdersTableName),
		IndexName:              aws.String(openOrdersGSI),
		KeyConditionExpression: aws.String("#status = :status"),
		FilterExpression:       aws.String("#type = :type"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
			"#type":   "type",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.OrderOpen)},
			":type":   &types.AttributeValueMemberS{Value: string(orderType)},
		},
		ScanIndexForward: aws.Bool(false), // Sort by created_at in descending order
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for open orders: %w", err)
	}

	var orders []models.Order
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &orders); err != nil {
		return nil, fmt.Errorf("failed to unmarshal orders: %w", err)
	}

	return orders, nil
}

// ListOrdersByCreator retrieves all orders created by a specific user.
func (s *Store) ListOrdersByCreator(ctx context.Context, creatorID string) ([]models.Order, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.OrdersTableName),
		IndexName:              aws.String(creatorIDIndex),
		KeyConditionExpression: aws.String("creator_id = :creatorID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":creatorID": &types.AttributeValueMemberS{Value: creatorID},
		},
		ScanIndexForward: aws.Bool(false),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for orders by creator: %w", err)
	}

	var orders []models.Order
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &orders); err != nil {
		return nil, fmt.Errorf("failed to unmarshal orders: %w", err)
	}

	return orders, nil
}

// AppendRequest appends a pending fulfillment request to an open order.
func (s *Store) AppendRequest(ctx context.Context, req *models.FulfillmentRequest) (*models.FulfillmentRequest, error) {
	req.ID = uuid.New().String()
	req.Status = models.RequestPending
	req.CreatedAt = time.Now()

	reqAV, err := attributevalue.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.OrdersTableName),
		Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: req.OrderID}},
		UpdateExpression:    aws.String("SET requests = list_append(requests, :req)"),
		ConditionExpression: aws.String("attribute_exists(id) AND #status = :open"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":req":  &types.AttributeValueMemberL{Value: []types.AttributeValue{reqAV}},
			":open": &types.AttributeValueMemberS{Value: string(models.OrderOpen)},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, storage.ErrOrderNotOpen
		}
		return nil, fmt.Errorf("failed to append request: %w", err)
	}

	return req, nil
}

// DenyRequest transitions a pending request to denied.
func (s *Store) DenyRequest(ctx context.Context, orderID, requestID string) (*models.FulfillmentRequest, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order for denial: %w", err)
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

	reqPath := fmt.Sprintf("requests[%d]", idx)
	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.OrdersTableName),
		Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: orderID}},
		UpdateExpression:    aws.String(fmt.Sprintf("SET %s.#st = :denied", reqPath)),
		ConditionExpression: aws.String(fmt.Sprintf("%s.id = :rid AND %s.#st = :pending", reqPath, reqPath)),
		ExpressionAttributeNames: map[string]string{
			"#st": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":denied":  &types.AttributeValueMemberS{Value: string(models.RequestDenied)},
			":rid":     &types.AttributeValueMemberS{Value: requestID},
			":pending": &types.AttributeValueMemberS{Value: string(models.RequestPending)},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, storage.ErrRequestNotPending
		}
		return nil, fmt.Errorf("failed to deny request: %w", err)
	}

	denied := order.Requests[idx]
	denied.Status = models.RequestDenied
	return &denied, nil
}

// RefreshCreatorScore updates the creator snapshot score on an order.
func (s *Store) RefreshCreatorScore(ctx context.Context, orderID string, score int) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.OrdersTableName),
		Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: orderID}},
		UpdateExpression:    aws.String("SET creator.ethos_score = :score"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":score": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", score)},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("failed to refresh creator score: %w", err)
	}
	return nil
}
