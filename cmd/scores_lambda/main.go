package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/tradeguild/ethos-p2p/pkg/ethos"
	"github.com/tradeguild/ethos-p2p/pkg/models"
	"github.com/tradeguild/ethos-p2p/pkg/storage"
	dydbstore "github.com/tradeguild/ethos-p2p/pkg/storage/dynamodb"
)

var store storage.MarketStore
var oracle ethos.ScoreProvider

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	ethosURL := os.Getenv("ETHOS_API_URL")
	if ethosURL == "" {
		log.Fatal("ETHOS_API_URL environment variable not set")
	}
	oracle = ethos.NewClient(ethosURL)

	ordersTable := os.Getenv("DYNAMODB_ORDERS_TABLE_NAME")
	dealsTable := os.Getenv("DYNAMODB_DEALS_TABLE_NAME")
	if ordersTable == "" || dealsTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	store = dydbstore.New(dynamodb.NewFromConfig(cfg), ordersTable, dealsTable, "")
}

// HandleRequest is triggered by an EventBridge Schedule. It re-pulls the
// creator scores snapshotted on open orders so the book reflects current
// reputations between visits.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting score refresh for open orders...")

	var open []models.Order
	for _, side := range []models.OrderType{models.BUY, models.SELL} {
		orders, err := store.ListOpenOrders(ctx, side)
		if err != nil {
			log.Printf("ERROR: failed to list open %s orders: %v", side, err)
			return err
		}
		open = append(open, orders...)
	}

	if len(open) == 0 {
		log.Println("No open orders found.")
		return nil
	}

	// One bulk oracle call for all creators on the book.
	userkeyByOrder := make(map[string]string, len(open))
	var userkeys []string
	seen := make(map[string]bool)
	for _, order := range open {
		identity, ok := order.Creator.Identity(models.PlatformTwitter)
		if !ok && len(order.Creator.Identities) > 0 {
			identity = order.Creator.Identities[0]
			ok = true
		}
		if !ok {
			log.Printf("Order %s creator has no linked identity, skipping", order.ID)
			continue
		}
		userkey := ethos.CreateUserkey(identity.Platform, identity.Username)
		userkeyByOrder[order.ID] = userkey
		if !seen[userkey] {
			seen[userkey] = true
			userkeys = append(userkeys, userkey)
		}
	}

	scores, err := oracle.FetchScoresByUserkeys(ctx, userkeys)
	if err != nil {
		log.Printf("ERROR: bulk score fetch failed: %v", err)
		return err
	}

	refreshed := 0
	for _, order := range open {
		userkey, ok := userkeyByOrder[order.ID]
		if !ok {
			continue
		}
		score := scores[userkey]
		if score == nil {
			log.Printf("No score returned for %s, keeping snapshot on order %s", userkey, order.ID)
			continue
		}
		if score.Score == order.Creator.EthosScore {
			continue
		}
		if err := store.RefreshCreatorScore(ctx, order.ID, score.Score); err != nil {
			log.Printf("ERROR: failed to refresh score on order %s: %v", order.ID, err)
			// Continue with the rest of the batch.
			continue
		}
		refreshed++
	}

	log.Printf("Score refresh finished. Updated %d of %d open orders.", refreshed, len(open))
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
