package websockets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
)

// AllConnectionsGetter enumerates every live connection id for fan-out.
type AllConnectionsGetter interface {
	GetAllConnections(ctx context.Context) ([]string, error)
}

// GatewayPublisher broadcasts market events to every connected client
// through the API Gateway management API. Connections that API Gateway
// reports gone are pruned from the connection store as they are found.
type GatewayPublisher struct {
	connections AllConnectionsGetter
	manager     ConnectionManager
	client      *apigatewaymanagementapi.Client
}

// NewPublisher builds a GatewayPublisher against the given management API
// endpoint, loading AWS credentials from the ambient config.
func NewPublisher(connections AllConnectionsGetter, manager ConnectionManager, apiEndpoint string) (*GatewayPublisher, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(apiEndpoint)
	})

	return &GatewayPublisher{
		connections: connections,
		manager:     manager,
		client:      client,
	}, nil
}

// Publish sends one message to every live connection. Individual delivery
// failures are logged and skipped so one bad connection cannot starve the
// rest of the broadcast.
func (p *GatewayPublisher) Publish(ctx context.Context, message Message) error {
	ids, err := p.connections.GetAllConnections(ctx)
	if err != nil {
		return fmt.Errorf("failed to get all connections: %w", err)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	for _, id := range ids {
		p.send(ctx, id, data)
	}

	return nil
}

func (p *GatewayPublisher) send(ctx context.Context, connectionID string, data []byte) {
	_, err := p.client.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
		ConnectionId: aws.String(connectionID),
		Data:         data,
	})
	if err == nil {
		return
	}

	var gone *apigwtypes.GoneException
	if errors.As(err, &gone) {
		slog.Info("pruning stale feed connection", "connection_id", connectionID)
		if err := p.manager.RemoveConnection(ctx, connectionID); err != nil {
			slog.Error("failed to prune stale connection", "connection_id", connectionID, "error", err)
		}
		return
	}

	slog.Error("failed to deliver market event", "connection_id", connectionID, "error", err)
}
