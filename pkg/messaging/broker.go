package messaging

import (
	"context"
)

// Broker publishes domain events to downstream consumers. The API server
// publishes booking events through it; the worker subscribes.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}
