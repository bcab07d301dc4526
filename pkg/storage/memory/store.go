// Package memory implements the storage interfaces with in-process maps.
// It is the authoritative store for a single-node deployment; the dynamodb
// package provides the same contracts backed by a database.
package memory

import (
	"sync"

	"github.com/tradeguild/ethos-p2p/pkg/models"
	"github.com/tradeguild/ethos-p2p/pkg/storage"
)

// Store implements the Storage interface with in-memory maps. Every order
// and every deal mutates under the store lock, which makes each record the
// unit of mutual exclusion the deal engine requires.
type Store struct {
	mu     sync.Mutex
	orders map[string]*models.Order
	deals  map[string]*models.DealAgreement
	conns  map[string]struct{}
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		orders: make(map[string]*models.Order),
		deals:  make(map[string]*models.DealAgreement),
		conns:  make(map[string]struct{}),
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

// copyOrder returns a detached copy so callers cannot mutate stored state.
func copyOrder(o *models.Order) *models.Order {
	out := *o
	out.Requests = make([]models.FulfillmentRequest, len(o.Requests))
	copy(out.Requests, o.Requests)
	return &out
}

func copyDeal(d *models.DealAgreement) *models.DealAgreement {
	out := *d
	out.Messages = make([]models.ChatMessage, len(d.Messages))
	copy(out.Messages, d.Messages)
	if d.CompletedAt != nil {
		t := *d.CompletedAt
		out.CompletedAt = &t
	}
	return &out
}
