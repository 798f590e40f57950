package kafka_client

import (
	"errors"
	"testing"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/stretchr/testify/assert"
)

func TestDrainDeliveriesCountsFailures(t *testing.T) {
	deliveries := make(chan kafka.Event, 3)
	deliveries <- &kafka.Message{Key: []byte("a")}
	deliveries <- &kafka.Message{Key: []byte("b"), TopicPartition: kafka.TopicPartition{Error: errors.New("msg timed out")}}
	deliveries <- &kafka.Message{Key: []byte("c")}

	assert.Equal(t, 1, drainDeliveries(deliveries, 3))
	assert.Empty(t, deliveries)
}

func TestDrainDeliveriesDoesNotBlock(t *testing.T) {
	deliveries := make(chan kafka.Event, 2)
	deliveries <- &kafka.Message{Key: []byte("a")}

	assert.Equal(t, 0, drainDeliveries(deliveries, 2))
}
