package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"matchly/internal/shared/config"
	"matchly/pkg/logger"

	"github.com/IBM/sarama"
)

// Notifier delivers match notifications. Delivery is best effort;
// callers never fail an API response on a notification error.
type Notifier interface {
	NotifyMatch(ctx context.Context, notification MatchNotification) error
	Close() error
}

type kafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	logger   *logger.Logger
}

// NewKafkaNotifier builds a Notifier backed by a Kafka sync producer.
// Messages are keyed by offer id so retries land on the same partition.
func NewKafkaNotifier(cfg config.KafkaConfig, log *logger.Logger) (Notifier, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = cfg.RetryMax
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &kafkaNotifier{
		producer: producer,
		topic:    cfg.MatchTopic,
		logger:   log,
	}, nil
}

func (n *kafkaNotifier) NotifyMatch(ctx context.Context, notification MatchNotification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal match notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(notification.OfferID.String()),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := n.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("send match notification: %w", err)
	}

	n.logger.InfoWithContext(ctx, "Match notification published", map[string]interface{}{
		"transaction_id": notification.TransactionID.String(),
		"partition":      partition,
		"offset":         offset,
	})
	return nil
}

func (n *kafkaNotifier) Close() error {
	return n.producer.Close()
}

// noopNotifier is used when Kafka is disabled
type noopNotifier struct{}

func NewNoopNotifier() Notifier {
	return &noopNotifier{}
}

func (n *noopNotifier) NotifyMatch(context.Context, MatchNotification) error {
	return nil
}

func (n *noopNotifier) Close() error {
	return nil
}
