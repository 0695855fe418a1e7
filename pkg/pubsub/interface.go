package pubsub

import "context"

// Publisher publishes chat payloads for an external bot to consume.
type Publisher interface {
	Publish(ctx context.Context, channel string, message string) error
	Ping(ctx context.Context) error
	Close() error
}
