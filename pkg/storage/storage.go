package storage

// Storage defines the root interface for the entire data layer.
// It composes all available storage operations. Components should depend on
// the more granular interfaces (OrderStore, DealStore, etc.) instead of this
// one.
type Storage interface {
	MarketStore
	WebSocketManager
}

// MarketStore is the complete set of marketplace operations needed by the
// trading engine: the order book plus the deal store.
type MarketStore interface {
	OrderStore
	DealStore
}
