package pipeline

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	kafkaMinBytes    = 10
	kafkaMaxBytes    = 10e6
	kafkaMaxAttempts = 16
)

// Transport carries requests to the signer and its results back.
type Transport interface {
	Send(ctx context.Context, messages ...Message) error
	Read(ctx context.Context) (Message, error)
	Close() error
}

type KafkaTransportConfig struct {
	Brokers       []string
	RequestTopic  string
	ResultTopic   string
	ConsumerGroup string
	TLSConfig     *tls.Config
	ProducerCreds *plain.Mechanism
	ConsumerCreds *plain.Mechanism
	Timeout       time.Duration
}

// KafkaTransport writes requests to one topic and reads results from another
// within its own consumer group.
type KafkaTransport struct {
	cfg    KafkaTransportConfig
	reader *kafka.Reader
	writer *kafka.Writer
}

func NewKafkaTransport(cfg KafkaTransportConfig) (*KafkaTransport, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers configured")
	}
	if cfg.RequestTopic == "" || cfg.ResultTopic == "" {
		return nil, fmt.Errorf("kafka request and result topics are required")
	}

	// a nil *plain.Mechanism must not end up as a non-nil sasl.Mechanism
	var producerSASL, consumerSASL sasl.Mechanism
	if cfg.ProducerCreds != nil {
		producerSASL = cfg.ProducerCreds
	}
	if cfg.ConsumerCreds != nil {
		consumerSASL = cfg.ConsumerCreds
	}

	kt := &KafkaTransport{cfg: cfg}
	kt.reader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.ConsumerGroup,
		Topic:       cfg.ResultTopic,
		MinBytes:    kafkaMinBytes,
		MaxBytes:    kafkaMaxBytes,
		MaxAttempts: kafkaMaxAttempts,
		Dialer: &kafka.Dialer{
			Timeout:       cfg.Timeout,
			DualStack:     true,
			TLS:           cfg.TLSConfig,
			SASLMechanism: consumerSASL,
		},
	})
	kt.writer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.RequestTopic,
		Balancer:     &kafka.LeastBytes{},
		MaxAttempts:  kafkaMaxAttempts,
		BatchTimeout: cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		Transport: &kafka.Transport{
			Dial: (&net.Dialer{
				Timeout: cfg.Timeout,
			}).DialContext,
			TLS:  cfg.TLSConfig,
			SASL: producerSASL,
		},
	}
	return kt, nil
}

func (kt *KafkaTransport) Send(ctx context.Context, messages ...Message) error {
	kafkaMessages := make([]kafka.Message, len(messages))
	for i, m := range messages {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to marshal a message %s: %w", m.ID, err)
		}
		kafkaMessages[i] = kafka.Message{Key: []byte(m.ID), Value: data}
	}

	if err := kt.writer.WriteMessages(ctx, kafkaMessages...); err != nil {
		return fmt.Errorf("failed to WriteMessages: %w", err)
	}
	return nil
}

func (kt *KafkaTransport) Read(ctx context.Context) (Message, error) {
	kafkaMessage, err := kt.reader.ReadMessage(ctx)
	if err != nil {
		return Message{}, fmt.Errorf("failed to ReadMessage: %w", err)
	}

	var message Message
	if err := json.Unmarshal(kafkaMessage.Value, &message); err != nil {
		return Message{}, fmt.Errorf("failed to unmarshal a message %s: %w", string(kafkaMessage.Value), err)
	}
	message.Offset = uint64(kafkaMessage.Offset)
	return message, nil
}

func (kt *KafkaTransport) Close() error {
	if err := kt.reader.Close(); err != nil {
		return fmt.Errorf("failed to Close reader: %w", err)
	}
	if err := kt.writer.Close(); err != nil {
		return fmt.Errorf("failed to Close writer: %w", err)
	}
	return nil
}

// SplitBrokers parses a comma separated broker list.
func SplitBrokers(brokers string) []string {
	var out []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func GetTLSConfig(trustStorePath string) (*tls.Config, error) {
	if trustStorePath == "" {
		return &tls.Config{}, nil
	}

	caCert, err := os.ReadFile(trustStorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read trustStorePath: %w", err)
	}

	caCertPool := x509.NewCertPool()
	caCertPool.AppendCertsFromPEM(caCert)

	return &tls.Config{
		RootCAs: caCertPool,
	}, nil
}

// ParseCredentials reads "username:password" into a SASL plain mechanism.
// An empty string disables SASL.
func ParseCredentials(creds string) (*plain.Mechanism, error) {
	if creds == "" {
		return nil, nil
	}
	parts := strings.SplitN(creds, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("credentials must be in the username:password form")
	}
	return &plain.Mechanism{
		Username: parts[0],
		Password: parts[1],
	}, nil
}
