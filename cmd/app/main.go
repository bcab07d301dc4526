package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"
	"github.com/tradeguild/ethos-p2p/pkg/ethos"
	"github.com/tradeguild/ethos-p2p/pkg/handlers"
	"github.com/tradeguild/ethos-p2p/pkg/notify"
	"github.com/tradeguild/ethos-p2p/pkg/session"
	"github.com/tradeguild/ethos-p2p/pkg/storage"
	dydbstore "github.com/tradeguild/ethos-p2p/pkg/storage/dynamodb"
	"github.com/tradeguild/ethos-p2p/pkg/storage/memory"
	"github.com/tradeguild/ethos-p2p/pkg/trading"
	"github.com/tradeguild/ethos-p2p/pkg/websockets"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Score oracle client.
	ethosURL := os.Getenv("ETHOS_API_URL")
	if ethosURL == "" {
		log.Fatal("ETHOS_API_URL environment variable not set")
	}
	oracle := ethos.NewClient(ethosURL)

	// Storage backend: in-memory by default, DynamoDB when configured.
	var store storage.Storage
	switch backend := os.Getenv("STORAGE_BACKEND"); backend {
	case "", "memory":
		store = memory.New()
	case "dynamodb":
		cfg, err := config.LoadDefaultConfig(context.TODO())
		if err != nil {
			log.Fatalf("unable to load SDK config, %v", err)
		}
		ordersTable := os.Getenv("DYNAMODB_ORDERS_TABLE_NAME")
		dealsTable := os.Getenv("DYNAMODB_DEALS_TABLE_NAME")
		connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")
		if ordersTable == "" || dealsTable == "" || connectionsTable == "" {
			log.Fatal("One or more DynamoDB table name environment variables are not set")
		}
		store = dydbstore.New(dynamodb.NewFromConfig(cfg), ordersTable, dealsTable, connectionsTable)
	default:
		log.Fatalf("Unknown STORAGE_BACKEND: %q", backend)
	}

	// Notification channel: SQS when configured, otherwise the log.
	var notifier notify.Notifier = &notify.LogNotifier{}
	if queueURL := os.Getenv("SQS_QUEUE_URL"); queueURL != "" {
		cfg, err := config.LoadDefaultConfig(context.TODO())
		if err != nil {
			log.Fatalf("unable to load SDK config, %v", err)
		}
		notifier = notify.NewSQSNotifier(sqs.NewFromConfig(cfg), queueURL)
	}

	// WebSocket publisher: API Gateway when configured, otherwise a no-op.
	var publisher websockets.Publisher = &websockets.NoOpPublisher{}
	if wsEndpoint := os.Getenv("WEBSOCKET_API_ENDPOINT"); wsEndpoint != "" {
		p, err := websockets.NewPublisher(store, store, wsEndpoint)
		if err != nil {
			log.Fatalf("failed to create websocket publisher: %v", err)
		}
		publisher = p
	}

	registry := session.NewRegistry(oracle)
	service := trading.NewService(store, notifier, publisher, registry)

	router := handlers.NewRouter(registry, service, store, logger)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
