package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"

	nsq "github.com/nsqio/go-nsq"
)

// ErrNSQProducerAddrRequired is returned by NewNSQ without an nsqd address.
var ErrNSQProducerAddrRequired = errors.New("messaging: nsq producer address is required")

// NSQConfig configures NewNSQ. A nil ProducerConfig uses nsq.NewConfig.
type NSQConfig struct {
	ProducerAddr   string
	ProducerConfig *nsq.Config
}

// NSQ publishes message bodies to nsqd topics.
type NSQ struct {
	state
	producer *nsq.Producer
}

// NewNSQ creates the producer. nsqd is dialed on first publish.
func NewNSQ(cfg NSQConfig) (*NSQ, error) {
	if cfg.ProducerAddr == "" {
		return nil, ErrNSQProducerAddrRequired
	}

	pcfg := cfg.ProducerConfig
	if pcfg == nil {
		pcfg = nsq.NewConfig()
	}

	producer, err := nsq.NewProducer(cfg.ProducerAddr, pcfg)
	if err != nil {
		return nil, fmt.Errorf("messaging: nsq producer: %w", err)
	}
	producer.SetLoggerLevel(nsq.LogLevelError)

	return &NSQ{producer: producer}, nil
}

// Publish sends only msg.Body; nsqd has no keys or headers.
func (n *NSQ) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := n.check(ctx, destination); err != nil {
		return PublishResult{}, err
	}

	if err := n.producer.Publish(destination, msg.Body); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: nsq publish %s: %w", destination, err)
	}

	return PublishResult{Topic: destination, Timestamp: time.Now()}, nil
}

func (n *NSQ) Close() error {
	if n.markClosed() {
		n.producer.Stop()
	}
	return nil
}
