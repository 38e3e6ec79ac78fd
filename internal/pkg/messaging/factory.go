package messaging

import (
	"errors"
	"fmt"
	"strings"
)

// Driver names accepted by NewFromDriver.
const (
	DriverNoop  = "noop"
	DriverNSQ   = "nsq"
	DriverNATS  = "nats"
	DriverKafka = "kafka"
)

// ErrUnknownDriver is returned for a driver name NewFromDriver does not know.
var ErrUnknownDriver = errors.New("messaging: unknown driver")

// FactoryOptions holds the settings of every backend; only the selected one is read.
type FactoryOptions struct {
	NSQ   NSQConfig
	Kafka KafkaConfig
	NATS  NATSConfig
}

// NewFromDriver builds the Publisher named by driver, case-insensitively.
// An empty name means noop.
func NewFromDriver(driver string, opts FactoryOptions) (Publisher, error) {
	name := strings.ToLower(strings.TrimSpace(driver))
	if name == "" {
		name = DriverNoop
	}

	builders := map[string]func() (Publisher, error){
		DriverNoop:  func() (Publisher, error) { return NewNoop(), nil },
		DriverNSQ:   func() (Publisher, error) { return NewNSQ(opts.NSQ) },
		DriverKafka: func() (Publisher, error) { return NewKafka(opts.Kafka) },
		DriverNATS:  func() (Publisher, error) { return NewNATS(opts.NATS) },
	}

	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	return build()
}
