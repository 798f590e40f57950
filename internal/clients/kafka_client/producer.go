package kafka_client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// Record is one message to publish. Value is JSON encoded.
type Record struct {
	Key   string
	Value interface{}
}

type Producer struct {
	producer *kafka.Producer
}

func NewProducer(cfg KafkaConfig) (*Producer, error) {
	slog.Info("[KafkaClient] Initializing Kafka Producer...",
		slog.String("broker", cfg.Broker))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":                     cfg.Broker,
		"security.protocol":                     "PLAINTEXT",
		"api.version.request":                   "true",
		"enable.idempotence":                    true,
		"acks":                                  "all",
		"max.in.flight.requests.per.connection": 1,
		"transactional.id":                      cfg.TransactionID,
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	if err := p.InitTransactions(context.Background()); err != nil {
		p.Close()
		return nil, fmt.Errorf("[KafkaClient] Failed to init transactions: %w", err)
	}

	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return &Producer{producer: p}, nil
}

func (p *Producer) Close() {
	slog.Info("[KafkaClient] Flushing Kafka producer before shutdown...")
	if remaining := p.producer.Flush(FLUSH_WAIT); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	p.producer.Close()
	slog.Info("[KafkaClient] Kafka producer shut down")
}

// PublishBatch writes every record to topic inside one transaction. Either all
// records become visible to read_committed consumers or none do.
func (p *Producer) PublishBatch(ctx context.Context, topic string, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	messages := make([]*kafka.Message, 0, len(records))
	for _, record := range records {
		value, err := json.Marshal(record.Value)
		if err != nil {
			return fmt.Errorf("[KafkaClient] failed to serialize record %s: %w", record.Key, err)
		}
		messages = append(messages, &kafka.Message{
			TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
			Key:            []byte(record.Key),
			Value:          value,
		})
	}

	if err := p.producer.BeginTransaction(); err != nil {
		return fmt.Errorf("[KafkaClient] failed to begin transaction: %w", err)
	}

	// Buffered for the whole batch so librdkafka never blocks on a report.
	deliveries := make(chan kafka.Event, len(messages))
	for _, msg := range messages {
		if err := p.produce(msg, deliveries); err != nil {
			return p.abort(ctx, err)
		}
	}

	var commitErr error
	for i := 0; i < 3; i++ {
		commitErr = p.producer.CommitTransaction(ctx)
		if commitErr == nil {
			break
		}
		if kafkaErr, ok := commitErr.(kafka.Error); ok && kafkaErr.TxnRequiresAbort() {
			return p.abort(ctx, commitErr)
		}
		slog.Warn("[KafkaClient] Failed to commit transaction, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", commitErr.Error()))
	}
	if commitErr != nil {
		return fmt.Errorf("[KafkaClient] failed to commit transaction after 3 retries: %w", commitErr)
	}

	if failed := drainDeliveries(deliveries, len(messages)); failed > 0 {
		slog.Warn("[KafkaClient] Delivery reports carried errors",
			slog.String("topic", topic),
			slog.Int("failed", failed))
	}

	slog.Info("[KafkaClient] Published batch transactionally",
		slog.String("topic", topic),
		slog.Int("records", len(records)))
	return nil
}

func (p *Producer) produce(msg *kafka.Message, deliveries chan kafka.Event) error {
	var err error
	for i := 0; i < 3; i++ {
		err = p.producer.Produce(msg, deliveries)
		if err == nil {
			return nil
		}
		slog.Warn("[KafkaClient] Failed to produce message, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
	}
	return err
}

func (p *Producer) abort(ctx context.Context, cause error) error {
	if abortErr := p.producer.AbortTransaction(ctx); abortErr != nil {
		return fmt.Errorf("[KafkaClient] failed to abort transaction after %v: %w", cause, abortErr)
	}
	return fmt.Errorf("[KafkaClient] transaction aborted: %w", cause)
}

// drainDeliveries reads up to n delivery reports that are already queued and
// returns how many carried an error. CommitTransaction flushes the batch, so
// the reports are in the channel by the time it returns.
func drainDeliveries(deliveries <-chan kafka.Event, n int) int {
	failed := 0
	for i := 0; i < n; i++ {
		select {
		case ev := <-deliveries:
			if m, ok := ev.(*kafka.Message); ok && m.TopicPartition.Error != nil {
				slog.Warn("[KafkaClient] Message delivery failed",
					slog.String("key", string(m.Key)),
					slog.String("error", m.TopicPartition.Error.Error()))
				failed++
			}
		default:
			return failed
		}
	}
	return failed
}
