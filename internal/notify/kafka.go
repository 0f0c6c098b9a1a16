package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"seatly/pkg/logger"
)

// KafkaPublisher mirrors seat deltas onto a Kafka topic for external
// consumers (analytics, cache warmers, other app instances). Messages are
// keyed by screening ID so one screening's deltas stay ordered within a
// partition.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) (*KafkaPublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 5 * time.Second
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaPublisher{producer: producer, topic: topic, log: log}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, delta Delta) {
	payload, err := json.Marshal(delta)
	if err != nil {
		p.log.LogNotifyFailure(ctx, delta.ScreeningID.String(), err)
		return
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(delta.ScreeningID.String()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("reason"), Value: []byte(delta.Reason)},
		},
		Timestamp: delta.At,
	}

	if _, _, err := p.producer.SendMessage(message); err != nil {
		p.log.LogNotifyFailure(ctx, delta.ScreeningID.String(), err)
	}
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
