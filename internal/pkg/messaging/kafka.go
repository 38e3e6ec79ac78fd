package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// ErrKafkaBrokersRequired is returned by NewKafka without brokers.
var ErrKafkaBrokersRequired = errors.New("messaging: kafka brokers are required")

// KafkaConfig configures NewKafka.
type KafkaConfig struct {
	Brokers []string
	// BatchTimeout of zero keeps the kafka-go default.
	BatchTimeout time.Duration
	// Transport carries TLS and SASL settings. Nil uses kafka.DefaultTransport.
	Transport kafka.RoundTripper
}

// Kafka publishes through one kafka-go writer shared by all topics.
type Kafka struct {
	state
	writer *kafka.Writer
}

// NewKafka builds the writer. Brokers are dialed on first publish.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Transport:              cfg.Transport,
	}

	return &Kafka{writer: w}, nil
}

// Publish writes msg to the destination topic. Messages with the same Key land
// on the same partition.
func (k *Kafka) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := k.check(ctx, destination); err != nil {
		return PublishResult{}, err
	}

	km := kafka.Message{Topic: destination, Key: msg.Key, Value: msg.Body, Time: time.Now()}
	eachHeader(msg.Headers, func(h Header) {
		km.Headers = append(km.Headers, kafka.Header{Key: h.Key, Value: h.Value})
	})

	if err := k.writer.WriteMessages(ctx, km); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: kafka publish %s: %w", destination, err)
	}

	return PublishResult{Topic: destination, Timestamp: km.Time}, nil
}

// Close flushes pending writes.
func (k *Kafka) Close() error {
	if !k.markClosed() {
		return nil
	}
	return k.writer.Close()
}
