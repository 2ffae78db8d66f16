package ports

import "context"

// EventPublisher mirrors room events to an external bus.
type EventPublisher interface {
	// Publish sends one encoded event. kind is the event name and payload its
	// JSON body.
	Publish(ctx context.Context, roomID, kind string, payload []byte) error
}
