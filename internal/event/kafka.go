package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
)

type KafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaProducer opens a synchronous producer on brokers.
func NewKafkaProducer(brokers []string, topic string) (*KafkaProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return NewKafkaProducerFrom(producer, topic), nil
}

func NewKafkaProducerFrom(producer sarama.SyncProducer, topic string) *KafkaProducer {
	return &KafkaProducer{
		producer: producer,
		topic:    topic,
	}
}

// Publish sends the event keyed by game id, so one table's events stay ordered.
func (that *KafkaProducer) Publish(_ context.Context, event *Event) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: that.topic,
		Key:   sarama.StringEncoder(event.GameID),
		Value: sarama.ByteEncoder(eventJSON),
	}

	if _, _, err = that.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}

	return nil
}

func (that *KafkaProducer) Close() error {
	return that.producer.Close()
}
