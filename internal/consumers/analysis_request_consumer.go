package consumers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/moodlens/internal/analysis"
	"github.com/spacesedan/moodlens/internal/clients/kafka_client"
	"github.com/spacesedan/moodlens/internal/models"
	"github.com/spacesedan/moodlens/internal/monitoring"
	"github.com/spacesedan/moodlens/internal/utils"
)

// Deduper remembers request ids that already produced a published result.
type Deduper interface {
	IsProcessed(ctx context.Context, requestID string) bool
	MarkProcessed(ctx context.Context, requestID string) error
}

type ResultPublisher interface {
	PublishBatch(ctx context.Context, topic string, records []kafka_client.Record) error
}

type OffsetCommitter interface {
	Commit(msg *kafka.Message) error
}

type noopDeduper struct{}

func (noopDeduper) IsProcessed(context.Context, string) bool     { return false }
func (noopDeduper) MarkProcessed(context.Context, string) error { return nil }

// pendingResult pairs a consumed message with the result it produced. result
// is nil for messages that are skipped but still need their offset committed.
// final is false for transient failures so a retry with the same id is
// analyzed again.
type pendingResult struct {
	msg    *kafka.Message
	result *models.AnalysisResultMessage
	final  bool
}

type AnalysisRequestConsumer struct {
	analyzer  *analysis.Analyzer
	publisher ResultPublisher
	dedupe    Deduper
	cfg       kafka_client.KafkaConfig
	buffer    *utils.BatchBuffer[pendingResult]
	inFlight  *utils.InFlightTracker
}

// NewAnalysisRequestConsumer builds a consumer. dedupe may be nil, in which
// case only duplicates still waiting in the current batch are skipped.
func NewAnalysisRequestConsumer(analyzer *analysis.Analyzer, publisher ResultPublisher, dedupe Deduper, cfg kafka_client.KafkaConfig) *AnalysisRequestConsumer {
	if dedupe == nil {
		dedupe = noopDeduper{}
	}
	return &AnalysisRequestConsumer{
		analyzer:  analyzer,
		publisher: publisher,
		dedupe:    dedupe,
		cfg:       cfg,
		buffer:    utils.NewBatchBuffer[pendingResult](cfg.BatchSize),
		inFlight:  utils.NewInFlightTracker(),
	}
}

// Start reads requests until ctx is cancelled. Results are published in
// batches and offsets are committed only after the batch is on the result
// topic, so a crash redelivers rather than loses requests.
func (c *AnalysisRequestConsumer) Start(ctx context.Context, consumer *kafka.Consumer) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	ticker := time.NewTicker(c.cfg.BatchTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[AnalysisRequestConsumer] Consumer shutting down...",
				slog.Int("unpublished", c.buffer.Size()))
			return
		case <-ticker.C:
			c.flush(ctx, committer)
		default:
			msg, err := iterator.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				continue
			}
			if msg == nil {
				continue
			}

			c.buffer.Add(c.handleMessage(ctx, msg))
			if c.buffer.Full() {
				c.flush(ctx, committer)
			}
		}
	}
}

func (c *AnalysisRequestConsumer) handleMessage(ctx context.Context, msg *kafka.Message) pendingResult {
	var req models.AnalysisRequestMessage
	if err := utils.DeserializeFromJSON(msg.Value, &req); err != nil {
		monitoring.KafkaMessages.WithLabelValues("malformed").Inc()
		return pendingResult{msg: msg}
	}
	if req.RequestID == "" {
		req.RequestID = string(msg.Key)
	}
	if req.RequestID == "" {
		slog.Warn("[AnalysisRequestConsumer] Request has no id, skipping",
			slog.Int64("offset", int64(msg.TopicPartition.Offset)))
		monitoring.KafkaMessages.WithLabelValues("malformed").Inc()
		return pendingResult{msg: msg}
	}

	if c.dedupe.IsProcessed(ctx, req.RequestID) || !c.inFlight.Track(req.RequestID) {
		slog.Info("[AnalysisRequestConsumer] Duplicate request, skipping",
			slog.String("request_id", req.RequestID))
		monitoring.KafkaMessages.WithLabelValues("duplicate").Inc()
		return pendingResult{msg: msg}
	}

	result, final := c.analyze(ctx, req)
	return pendingResult{msg: msg, result: &result, final: final}
}

// analyze reports final=false when the failure is worth retrying.
func (c *AnalysisRequestConsumer) analyze(ctx context.Context, req models.AnalysisRequestMessage) (models.AnalysisResultMessage, bool) {
	result, err := c.analyzer.Analyze(ctx, req.Text)
	if err != nil {
		slog.Warn("[AnalysisRequestConsumer] Analysis failed",
			slog.String("request_id", req.RequestID),
			slog.Int("text_length", len(req.Text)),
			slog.String("error", err.Error()))
		monitoring.KafkaMessages.WithLabelValues("failed").Inc()
		return models.AnalysisResultMessage{
			RequestID: req.RequestID,
			Error:     analysis.PublicMessage(err),
		}, errors.Is(err, analysis.ErrInvalidInput)
	}

	monitoring.KafkaMessages.WithLabelValues("analyzed").Inc()
	return models.AnalysisResultMessage{RequestID: req.RequestID, Result: &result}, true
}

// flush publishes the buffered results and then commits every buffered
// offset. A failed publish puts the batch back so the next flush retries it.
func (c *AnalysisRequestConsumer) flush(ctx context.Context, committer OffsetCommitter) {
	batch := c.buffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	var records []kafka_client.Record
	for _, pending := range batch {
		if pending.result != nil {
			records = append(records, kafka_client.Record{Key: pending.result.RequestID, Value: pending.result})
		}
	}

	if err := c.publisher.PublishBatch(ctx, c.cfg.ResultTopic, records); err != nil {
		slog.Error("[AnalysisRequestConsumer] Failed to publish results, will retry",
			slog.Int("records", len(records)),
			slog.String("error", err.Error()))
		for _, pending := range batch {
			c.buffer.Add(pending)
		}
		return
	}

	for _, pending := range batch {
		if pending.result != nil && pending.final {
			if err := c.dedupe.MarkProcessed(ctx, pending.result.RequestID); err != nil {
				slog.Warn("[AnalysisRequestConsumer] Failed to record processed request",
					slog.String("request_id", pending.result.RequestID),
					slog.String("error", err.Error()))
			}
		}
		if pending.result != nil {
			c.inFlight.Release(pending.result.RequestID)
		}

		if err := committer.Commit(pending.msg); err != nil {
			slog.Warn("[AnalysisRequestConsumer] Failed to commit offset",
				slog.String("error", err.Error()))
		}
	}
}
