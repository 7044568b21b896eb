package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/weather-forecast-service/internal/observability"
	"github.com/couchcryptid/weather-forecast-service/internal/refresh"
)

// Header keys set on every published view.
const (
	HeaderIdentifier = "identifier"
	HeaderUpdatedAt  = "updated_at"
)

// Publisher produces every newly published forecast view to a Kafka topic.
// It implements refresh.Observer.
type Publisher struct {
	writer  *kafkago.Writer
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewPublisher creates a Kafka producer for topic.
func NewPublisher(brokers []string, topic string, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &Publisher{
		writer:  w,
		logger:  logger.With("component", "kafka", "topic", topic),
		metrics: metrics,
	}
}

// ForecastChanged publishes u keyed by its provider identifier. Failures are
// logged and counted; they never fail the refresh that produced the view.
func (p *Publisher) ForecastChanged(ctx context.Context, u refresh.Update) {
	if err := p.Publish(ctx, u); err != nil {
		p.logger.Error("publish forecast view failed", "identifier", u.Identifier, "error", err)
		if p.metrics != nil {
			p.metrics.PublishErrors.Inc()
		}
		return
	}
	if p.metrics != nil {
		p.metrics.ViewsPublished.Inc()
	}
	p.logger.Debug("forecast view published", "identifier", u.Identifier, "days", len(u.Days))
}

// RefreshFailed only logs; failed refreshes publish nothing.
func (p *Publisher) RefreshFailed(_ context.Context, err error) {
	p.logger.Debug("refresh failed, nothing published", "error", err)
}

// Publish writes u as one message.
func (p *Publisher) Publish(ctx context.Context, u refresh.Update) error {
	msg, err := serializeToMessage(u)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a view update into a Kafka message.
func serializeToMessage(u refresh.Update) (kafkago.Message, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize forecast view: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(u.Identifier),
		Value: data,
		Time:  u.UpdatedAt,
		Headers: []kafkago.Header{
			{Key: HeaderIdentifier, Value: []byte(u.Identifier)},
			{Key: HeaderUpdatedAt, Value: []byte(u.UpdatedAt.Format(time.RFC3339))},
		},
	}, nil
}

// EnsureTopic creates topic through the cluster controller. An existing topic
// is not an error.
func EnsureTopic(ctx context.Context, broker, topic string, partitions int) error {
	var d kafkago.Dialer
	conn, err := d.DialContext(ctx, "tcp", broker)
	if err != nil {
		return fmt.Errorf("dial %s: %w", broker, err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("find controller: %w", err)
	}
	cc, err := d.DialContext(ctx, "tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer cc.Close()

	err = cc.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     partitions,
		ReplicationFactor: 1,
	})
	if err != nil && !isTopicExists(err) {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	return nil
}

func isTopicExists(err error) bool {
	return errors.Is(err, kafkago.TopicAlreadyExists)
}
