package websockets

import "context"

// NoOpPublisher discards every market event. It serves deployments without
// a WebSocket endpoint configured, and tests that do not care about the
// feed.
type NoOpPublisher struct{}

var _ Publisher = (*NoOpPublisher)(nil)

func (p *NoOpPublisher) Publish(ctx context.Context, message Message) error {
	return nil
}
