package config

import (
	"github.com/segmentio/kafka-go"
)

// NewKafkaWriter returns a writer for the event topic, or nil when no
// brokers are configured.
func NewKafkaWriter(cfg KafkaConfig) *kafka.Writer {
	if !cfg.Enabled() {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.LeastBytes{}, // Balancer for selecting partition
		AllowAutoTopicCreation: true,
		MaxAttempts:            3,
	}
}
