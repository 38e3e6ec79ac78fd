package app

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nsqio/go-nsq"
	"github.com/rs/cors"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpgate/internal/pkg/hash"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/messaging"
	"github.com/shandysiswandi/otpgate/internal/pkg/otp"
	"github.com/shandysiswandi/otpgate/internal/pkg/router"
	"github.com/shandysiswandi/otpgate/internal/pkg/seal"
	"github.com/shandysiswandi/otpgate/internal/pkg/uid"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
)

const (
	minMasterKeyBytes = 32
	linkKeySalt       = "otpgate/qrcode-link"
	defaultConfigPath = "/config/config.yaml"
	localConfigPath   = "./config/config.yaml"
)

func fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}

// configPath prefers CONFIG_PATH, then the local file when LOCAL=true.
func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	if os.Getenv("LOCAL") == "true" {
		return localConfigPath
	}
	return defaultConfigPath
}

func (a *App) initConfig() {
	path := configPath()
	cfg, err := config.NewViper(path)
	if err != nil {
		fatal("failed to load config", "path", path, "error", err)
	}

	if tz := cfg.GetString("app.tz"); tz != "" {
		//nolint:errcheck,gosec // best effort
		os.Setenv("TZ", tz)
	}

	a.config = cfg
}

func (a *App) initInstrument() {
	c := a.config
	ins, err := instrument.New(context.Background(), &instrument.Config{
		Enabled:          c.GetBool("instrument.enabled"),
		ServiceName:      c.GetString("instrument.service_name"),
		ServiceVersion:   c.GetString("instrument.service_version"),
		Environment:      c.GetString("instrument.env"),
		OTLPEndpoint:     c.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       c.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: c.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  c.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       c.GetArray("instrument.log_mask_fields"),
		LogLevel:         c.GetString("instrument.log_level"),
	})
	if err != nil {
		fatal("failed to init instrumentation", "error", err)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))
	a.otp = otp.NewEngine()

	v, err := validator.NewV10Validator()
	if err != nil {
		fatal("failed to init validator", "error", err)
	}
	a.validator = v

	masterKey := a.config.GetBinary("otp.master_key")
	if len(masterKey) < minMasterKeyBytes {
		fatal("otp.master_key must be base64 of at least 32 bytes", "length", len(masterKey))
	}
	a.deriver = hash.NewHMACSHA512(masterKey)

	keys, err := seal.NewHKDFKeyProvider(a.config.GetBinary("otp.qrcode.link_secret"), []byte(linkKeySalt))
	if err != nil {
		fatal("otp.qrcode.link_secret must be non-empty base64", "error", err)
	}
	a.sealer = seal.NewAESGCM(keys)
}

func (a *App) initMessaging() {
	driver := strings.TrimSpace(a.config.GetString("messaging.driver"))
	client, err := messaging.NewFromDriver(driver, messaging.FactoryOptions{
		NSQ: messaging.NSQConfig{
			ProducerAddr:   a.config.GetString("messaging.nsq.producer_addr"),
			ProducerConfig: a.nsqConfig(),
		},
		Kafka: messaging.KafkaConfig{
			Brokers:      a.config.GetArray("messaging.kafka.brokers"),
			BatchTimeout: a.config.GetSecond("messaging.kafka.batch_timeout_seconds"),
			Transport:    a.kafkaTransport(),
		},
		NATS: messaging.NATSConfig{
			URL:     a.config.GetString("messaging.nats.url"),
			Options: a.natsOptions(),
		},
	})
	if err != nil {
		fatal("failed to init messaging", "driver", driver, "error", err)
	}

	a.messaging = messaging.NewRetry(client, messaging.RetryConfig{
		Base:       a.config.GetSecond("messaging.retry_base_seconds"),
		Cap:        a.config.GetSecond("messaging.retry_cap_seconds"),
		MaxRetries: uint64(max(a.config.GetInt("messaging.retry_max"), 0)), //nolint:gosec // clamped
	})
}

func (a *App) nsqConfig() *nsq.Config {
	const prefix = "messaging.nsq.producer_config."

	cfg := nsq.NewConfig()
	cfg.DialTimeout = a.config.GetSecond(prefix + "dial_timeout_seconds")
	cfg.ReadTimeout = a.config.GetSecond(prefix + "read_timeout_seconds")
	cfg.WriteTimeout = a.config.GetSecond(prefix + "write_timeout_seconds")
	return cfg
}

func (a *App) natsOptions() []nats.Option {
	const prefix = "messaging.nats."

	return []nats.Option{
		nats.Name(a.config.GetString(prefix + "name")),
		nats.MaxReconnects(a.config.GetInt(prefix + "max_reconnects")),
		nats.Timeout(a.config.GetSecond(prefix + "timeout_seconds")),
		nats.ReconnectWait(a.config.GetSecond(prefix + "reconnect_wait_seconds")),
		nats.PingInterval(a.config.GetSecond(prefix + "ping_interval_seconds")),
		nats.MaxPingsOutstanding(a.config.GetInt(prefix + "max_pings_outstanding")),
		nats.RetryOnFailedConnect(a.config.GetBool(prefix + "retry_on_failed_connect")),
	}
}

// kafkaTransport returns nil unless TLS or SASL is configured.
func (a *App) kafkaTransport() kafka.RoundTripper {
	useTLS := a.config.GetBool("messaging.kafka.tls")
	username := a.config.GetString("messaging.kafka.sasl.username")
	if !useTLS && username == "" {
		return nil
	}

	transport := &kafka.Transport{
		ClientID:    a.config.GetString("messaging.kafka.client_id"),
		DialTimeout: a.config.GetSecond("messaging.kafka.dial_timeout_seconds"),
	}
	if useTLS {
		transport.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	if username != "" {
		transport.SASL = plain.Mechanism{
			Username: username,
			Password: a.config.GetString("messaging.kafka.sasl.password"),
		}
	}

	return transport
}

func (a *App) initHTTPServer() {
	const prefix = "app.server.http."

	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
	})

	handler := cors.New(cors.Options{
		AllowedOrigins:   a.config.GetArray("app.server.cors"),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", router.HeaderCorrelationID, router.HeaderRequestID},
		ExposedHeaders:   []string{router.HeaderCorrelationID},
		AllowCredentials: true,
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString(prefix + "address"),
		Handler:           handler,
		ReadTimeout:       a.config.GetSecond(prefix + "read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond(prefix + "read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond(prefix + "write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond(prefix + "idle_timeout_seconds"),
	}
}

func (a *App) initClosers() {
	a.closers = []closer{
		{name: "messaging", fn: func(context.Context) error { return a.messaging.Close() }},
		{name: "instrument", fn: a.ins.Shutdown},
		{name: "config", fn: func(context.Context) error { return a.config.Close() }},
	}
}
