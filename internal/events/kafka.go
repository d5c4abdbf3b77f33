package events

import (
	"context"
	"fmt"
	"time"

	"hotelinfinity/pkg/kafka"
	"hotelinfinity/pkg/metrics"
	"hotelinfinity/pkg/middleware"
)

const (
	schemaVersion   = "1"
	contentTypeJSON = "application/json"
)

// Producer is satisfied by *kafka.Producer.
type Producer interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

// KafkaPublisher writes each event as one JSON message keyed by Event.Key.
type KafkaPublisher struct {
	producer Producer
	source   string
	timeout  time.Duration
	metrics  *metrics.Metrics
}

func NewKafkaPublisher(producer Producer, source string, timeout time.Duration, m *metrics.Metrics) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		source:   source,
		timeout:  timeout,
		metrics:  m,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	// The request may already be finished when the event goes out.
	ctx = context.WithoutCancel(ctx)
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	msg, err := kafka.NewMessage().
		WithKey(event.Key).
		WithEventID(event.ID).
		WithEventType(string(event.Type)).
		WithSource(p.source).
		WithSchemaVersion(schemaVersion).
		WithCorrelationID(middleware.GetRequestID(ctx)).
		WithTimestamp(event.OccurredAt).
		WithHeader(kafka.HeaderContentType, contentTypeJSON).
		WithValue(event).
		BuildE()
	if err == nil {
		err = p.producer.Publish(ctx, msg)
	}
	p.metrics.ObserveEvent(string(event.Type), publishResult(err))
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

// publishResult labels a publish attempt by kafka error class.
func publishResult(err error) string {
	if err == nil {
		return "ok"
	}
	return kafka.ClassifyError(err).String()
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
