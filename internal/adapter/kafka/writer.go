package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/ghg-globe/internal/config"
	"github.com/couchcryptid/ghg-globe/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes community reports to a Kafka topic.
// It implements globe.ReportPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured reports topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaReportsTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		WriteTimeout: 5 * time.Second,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishReport serializes one report and writes it keyed by report ID, so
// replays of the same report land on the same partition.
func (w *Writer) PublishReport(ctx context.Context, report domain.CommunityReport) error {
	msg, err := serializeToMessage(report)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish report %s: %w", report.ID, err)
	}
	w.logger.Debug("report published", "report_id", report.ID, "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a CommunityReport into a Kafka message.
func serializeToMessage(report domain.CommunityReport) (kafkago.Message, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize community report: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(report.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "category", Value: []byte(report.Category)},
			{Key: "location_source", Value: []byte(report.LocationSource)},
			{Key: "submitted_at", Value: []byte(report.SubmittedAt.Format(time.RFC3339))},
		},
	}, nil
}
