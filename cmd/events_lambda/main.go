package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/tradeguild/ethos-p2p/pkg/notify"
	dydbstore "github.com/tradeguild/ethos-p2p/pkg/storage/dynamodb"
	"github.com/tradeguild/ethos-p2p/pkg/websockets"
)

var publisher websockets.Publisher

func init() {
	// Load environment variables from .env file (useful for local testing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")
	wsEndpoint := os.Getenv("WEBSOCKET_API_ENDPOINT")
	if connectionsTable == "" || wsEndpoint == "" {
		log.Fatal("DYNAMODB_CONNECTIONS_TABLE_NAME or WEBSOCKET_API_ENDPOINT not set")
	}

	// Only the connections table is used here; order and deal tables are
	// untouched.
	store := dydbstore.New(dynamodb.NewFromConfig(cfg), "", "", connectionsTable)

	publisher, err = websockets.NewPublisher(store, store, wsEndpoint)
	if err != nil {
		log.Fatalf("failed to create websocket publisher: %v", err)
	}
}

// HandleRequest relays queued notification events to connected WebSocket
// clients.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var event notify.Event
		if err := json.Unmarshal([]byte(message.Body), &event); err != nil {
			log.Printf("ERROR: failed to unmarshal event from SQS message %s: %v", message.MessageId, err)
			// Returning an error lets SQS retry the message.
			return err
		}

		msg := websockets.Message{
			Type:    websockets.MessageTypeNotification,
			Payload: event,
		}
		if err := publisher.Publish(ctx, msg); err != nil {
			log.Printf("ERROR: failed to publish event %s: %v", event.Type, err)
			return err
		}

		log.Printf("Relayed %s event for user %s", event.Type, event.UserID)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
