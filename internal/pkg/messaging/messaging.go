package messaging

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/atomic"
)

var (
	// ErrClosed is returned by Publish after Close.
	ErrClosed = errors.New("messaging: publisher closed")
	// ErrDestinationRequired is returned for an empty topic or subject.
	ErrDestinationRequired = errors.New("messaging: destination is required")
)

// Publisher sends messages to a topic (Kafka, NSQ) or subject (NATS).
type Publisher interface {
	io.Closer
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// OutgoingMessage is a broker-neutral message. Key only matters to Kafka
// partitioning; NSQ has no headers and drops them.
type OutgoingMessage struct {
	Body    []byte
	Key     []byte
	Headers []Header
}

// Header may repeat a key and carry binary values.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult reports where and when the broker accepted a message.
type PublishResult struct {
	Topic     string
	Timestamp time.Time
}

// state is the closed flag and argument checks every backend shares.
type state struct {
	closed atomic.Bool
}

func (s *state) check(ctx context.Context, destination string) error {
	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case s.closed.Load():
		return ErrClosed
	case destination == "":
		return ErrDestinationRequired
	default:
		return nil
	}
}

// markClosed reports whether this call closed s.
func (s *state) markClosed() bool {
	return !s.closed.Swap(true)
}

// eachHeader calls fn for every header with a non-empty key.
func eachHeader(hs []Header, fn func(Header)) {
	for _, h := range hs {
		if h.Key != "" {
			fn(h)
		}
	}
}
