package kafka_client

import (
	"time"

	"github.com/spacesedan/moodlens/config"
)

type KafkaConfig struct {
	Broker        string
	GroupID       string
	RequestTopic  string
	ResultTopic   string
	BatchSize     int
	BatchTimeout  time.Duration
	TransactionID string
}

func GetKafkaConfig(s config.Settings) KafkaConfig {
	cfg := KafkaConfig{
		Broker:        s.KafkaBroker,
		GroupID:       s.KafkaGroupID,
		RequestTopic:  s.KafkaRequestTopic,
		ResultTopic:   s.KafkaResultTopic,
		BatchSize:     s.KafkaResultBatch,
		BatchTimeout:  s.KafkaResultTimeout,
		TransactionID: s.KafkaGroupID + "-producer",
	}
	if cfg.RequestTopic == "" {
		cfg.RequestTopic = KAFKA_TOPIC_ANALYSIS_REQUEST
	}
	if cfg.ResultTopic == "" {
		cfg.ResultTopic = KAFKA_TOPIC_ANALYSIS_RESULTS
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = 5 * time.Second
	}
	return cfg
}
