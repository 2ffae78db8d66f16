package natsbus

import (
	"context"
	"fmt"
	"strings"

	"thegame/internal/ports"

	"github.com/nats-io/nats.go"
)

// Publisher mirrors public room events onto NATS subjects of the form
// <prefix>.room.<roomId>.<kind>.
type Publisher struct {
	conn   *nats.Conn
	prefix string
}

// Connect dials url and returns a publisher using prefix for every subject.
func Connect(url, prefix, clientName string) (*Publisher, error) {
	conn, err := nats.Connect(url, nats.Name(clientName))
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", url, err)
	}
	return &Publisher{conn: conn, prefix: prefix}, nil
}

// Publish sends payload without waiting for subscribers.
func (p *Publisher) Publish(ctx context.Context, roomID, kind string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.conn.Publish(Subject(p.prefix, roomID, kind), payload); err != nil {
		return fmt.Errorf("nats publish: %w", err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *Publisher) Close() error {
	if p == nil || p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}

// Subject builds the subject for a room event. NATS token separators and
// wildcards in roomID are replaced so a room always maps to one token.
func Subject(prefix, roomID, kind string) string {
	token := strings.NewReplacer(".", "_", "*", "_", ">", "_", " ", "_").Replace(roomID)
	if prefix == "" {
		return fmt.Sprintf("room.%s.%s", token, kind)
	}
	return fmt.Sprintf("%s.room.%s.%s", prefix, token, kind)
}

var _ ports.EventPublisher = (*Publisher)(nil)
