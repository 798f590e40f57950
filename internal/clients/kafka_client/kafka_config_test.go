package kafka_client

import (
	"testing"
	"time"

	"github.com/spacesedan/moodlens/config"
	"github.com/stretchr/testify/assert"
)

func TestGetKafkaConfigFillsDefaults(t *testing.T) {
	cfg := GetKafkaConfig(config.Settings{KafkaBroker: "kafka:9092", KafkaGroupID: "moodlens"})

	assert.Equal(t, "kafka:9092", cfg.Broker)
	assert.Equal(t, KAFKA_TOPIC_ANALYSIS_REQUEST, cfg.RequestTopic)
	assert.Equal(t, KAFKA_TOPIC_ANALYSIS_RESULTS, cfg.ResultTopic)
	assert.Equal(t, 1, cfg.BatchSize)
	assert.Equal(t, 5*time.Second, cfg.BatchTimeout)
	assert.Equal(t, "moodlens-producer", cfg.TransactionID)
}

func TestGetKafkaConfigKeepsSettings(t *testing.T) {
	cfg := GetKafkaConfig(config.Settings{
		KafkaRequestTopic:  "in",
		KafkaResultTopic:   "out",
		KafkaResultBatch:   25,
		KafkaResultTimeout: time.Second,
	})

	assert.Equal(t, "in", cfg.RequestTopic)
	assert.Equal(t, "out", cfg.ResultTopic)
	assert.Equal(t, 25, cfg.BatchSize)
	assert.Equal(t, time.Second, cfg.BatchTimeout)
}
