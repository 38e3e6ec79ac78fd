package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// ErrNATSURLRequired is returned by NewNATS without a server URL.
var ErrNATSURLRequired = errors.New("messaging: nats url is required")

// NATSConfig configures NewNATS.
type NATSConfig struct {
	URL     string
	Options []nats.Option
}

// NATS publishes on core NATS subjects.
type NATS struct {
	state
	conn *nats.Conn
}

// NewNATS dials cfg.URL.
func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	conn, err := nats.Connect(cfg.URL, cfg.Options...)
	if err != nil {
		return nil, fmt.Errorf("messaging: nats connect %s: %w", cfg.URL, err)
	}

	return &NATS{conn: conn}, nil
}

// Publish returns once the server has processed the message, or when ctx ends.
func (n *NATS) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := n.check(ctx, destination); err != nil {
		return PublishResult{}, err
	}

	m := &nats.Msg{Subject: destination, Data: msg.Body, Header: nats.Header{}}
	eachHeader(msg.Headers, func(h Header) { m.Header.Add(h.Key, string(h.Value)) })

	if err := n.conn.PublishMsg(m); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: nats publish %s: %w", destination, err)
	}
	if err := n.conn.FlushWithContext(ctx); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: nats flush: %w", err)
	}

	return PublishResult{Topic: destination, Timestamp: time.Now()}, nil
}

// Close drains buffered messages before closing the connection.
func (n *NATS) Close() error {
	if !n.markClosed() {
		return nil
	}

	err := n.conn.Drain()
	n.conn.Close()
	return err
}
