package kafka

import (
	"context"
	"time"

	"github.com/dcms-platform/manifest-service/pkg/cloudevents"
	"github.com/dcms-platform/manifest-service/pkg/logging"
	"github.com/dcms-platform/manifest-service/pkg/metrics"
)

// InstrumentedProducer wraps a Producer with metrics and structured logging
type InstrumentedProducer struct {
	producer *Producer
	metrics  *metrics.Metrics
	logger   *logging.Logger
}

// NewInstrumentedProducer creates a new instrumented producer
func NewInstrumentedProducer(producer *Producer, m *metrics.Metrics, logger *logging.Logger) *InstrumentedProducer {
	return &InstrumentedProducer{
		producer: producer,
		metrics:  m,
		logger:   logger,
	}
}

// PublishEvent publishes a CloudEvent and records the outcome
func (p *InstrumentedProducer) PublishEvent(ctx context.Context, topic string, event *cloudevents.DCMSCloudEvent) error {
	start := time.Now()

	err := p.producer.PublishEvent(ctx, topic, event)
	duration := time.Since(start)

	success := err == nil
	if p.metrics != nil {
		p.metrics.RecordKafkaPublish(topic, event.Type, success, duration)
	}
	if p.logger != nil {
		p.logger.KafkaPublish(ctx, topic, event.Type, success, duration)
	}

	return err
}

// PublishEventAsync publishes a CloudEvent asynchronously with metrics
func (p *InstrumentedProducer) PublishEventAsync(ctx context.Context, topic string, event *cloudevents.DCMSCloudEvent, callback func(error)) {
	start := time.Now()

	wrappedCallback := func(err error) {
		duration := time.Since(start)

		success := err == nil
		if p.metrics != nil {
			p.metrics.RecordKafkaPublish(topic, event.Type, success, duration)
		}
		if p.logger != nil {
			p.logger.KafkaPublish(ctx, topic, event.Type, success, duration)
		}

		if callback != nil {
			callback(err)
		}
	}

	p.producer.PublishEventAsync(ctx, topic, event, wrappedCallback)
}

// PublishBatch publishes multiple events with metrics
func (p *InstrumentedProducer) PublishBatch(ctx context.Context, topic string, events []*cloudevents.DCMSCloudEvent) error {
	start := time.Now()

	err := p.producer.PublishBatch(ctx, topic, events)
	duration := time.Since(start)

	success := err == nil
	if p.metrics != nil && len(events) > 0 {
		perEvent := duration / time.Duration(len(events))
		for _, event := range events {
			p.metrics.RecordKafkaPublish(topic, event.Type, success, perEvent)
		}
	}

	return err
}

// Close closes the underlying producer
func (p *InstrumentedProducer) Close() error {
	return p.producer.Close()
}
