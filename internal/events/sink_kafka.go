package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/twmb/franz-go/pkg/kgo"
)

// kafkaProducer is the subset of *kgo.Client the sink needs; tests substitute
// a capturing fake.
type kafkaProducer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// KafkaSink publishes events as JSON to a single Kafka topic. Records are
// keyed by the triggering report id so all events for one report land on one
// partition in order.
type KafkaSink struct {
	client kafkaProducer
	topic  string
}

// NewKafkaSink connects a franz-go producer to the given brokers.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaSink{client: client, topic: topic}, nil
}

func (s *KafkaSink) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(partitionKey(event)),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce event: %w", err)
	}
	return nil
}

// Close flushes and releases the underlying producer.
func (s *KafkaSink) Close() {
	s.client.Close()
}

func partitionKey(event Event) string {
	switch event.Type {
	case TypeReportCreated:
		return strconv.FormatInt(event.ReportID, 10)
	default:
		return strconv.FormatInt(event.LostID, 10)
	}
}
