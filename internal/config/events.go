package config

import (
	"log/slog"
	"strings"

	"github.com/quizflow/quiz-service/internal/events"
)

// EventConfig holds configuration for event publishing
type EventConfig struct {
	Enabled      bool
	KafkaBrokers string
	QuizTopic    string
}

// GetKafkaBrokers returns Kafka brokers as a slice
func (c *EventConfig) GetKafkaBrokers() []string {
	return strings.Split(c.KafkaBrokers, ",")
}

// CreateEventPublisher creates an event publisher based on configuration
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, quiz events will be dropped")
		return events.NoopEventPublisher{}, nil
	}

	logger.Info("Creating Kafka event publisher",
		"brokers", c.KafkaBrokers,
		"topic", c.QuizTopic)

	return events.NewKafkaEventPublisher(events.PublisherConfig{
		KafkaBrokers: c.GetKafkaBrokers(),
		TopicName:    c.QuizTopic,
		Logger:       logger,
	})
}
