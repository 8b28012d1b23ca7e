package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/grainair/internal/config"
	"github.com/couchcryptid/grainair/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// publishTimeout bounds a single Submit. Report submission is not cancellable
// by the caller, so the publisher enforces its own limit.
const publishTimeout = 10 * time.Second

// messageWriter is the subset of *kafkago.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// ReportPublisher publishes submitted incident reports to a Kafka topic.
// It implements report.Backend.
type ReportPublisher struct {
	writer  messageWriter
	brokers []string
	logger  *slog.Logger
}

// NewReportPublisher creates a Kafka producer for the configured report topic.
func NewReportPublisher(cfg *config.Config, logger *slog.Logger) *ReportPublisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaReportTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		MaxAttempts:  3,
	}
	return &ReportPublisher{writer: w, brokers: cfg.KafkaBrokers, logger: logger}
}

// Submit publishes one report. Keys are report IDs so retries of the same
// report land on the same partition.
func (p *ReportPublisher) Submit(ctx context.Context, r domain.Report) error {
	msg, err := serializeToMessage(r)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish report %s: %w", r.ID, err)
	}
	p.logger.Info("report published", "report_id", r.ID, "incident_type", r.Draft.IncidentType)
	return nil
}

// CheckReadiness dials the first reachable broker.
func (p *ReportPublisher) CheckReadiness(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}
	var errs []error
	for _, broker := range p.brokers {
		conn, err := kafkago.DialContext(ctx, "tcp", broker)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return conn.Close()
	}
	return fmt.Errorf("kafka unreachable: %w", errors.Join(errs...))
}

func (p *ReportPublisher) Close() error {
	return p.writer.Close()
}

// reportMessage is the published JSON form of a report.
type reportMessage struct {
	ID               string              `json:"id"`
	IncidentType     domain.IncidentType `json:"incident_type"`
	Location         string              `json:"location"`
	Description      string              `json:"description"`
	Captured         *domain.Coordinate  `json:"captured,omitempty"`
	PlaceName        string              `json:"place_name,omitempty"`
	NearestStationID int                 `json:"nearest_station_id,omitempty"`
	SubmittedAt      time.Time           `json:"submitted_at"`
}

// serializeToMessage marshals a Report into a Kafka message.
func serializeToMessage(r domain.Report) (kafkago.Message, error) {
	data, err := json.Marshal(reportMessage{
		ID:               r.ID,
		IncidentType:     r.Draft.IncidentType,
		Location:         r.Draft.Location,
		Description:      r.Draft.Description,
		Captured:         r.Draft.Captured,
		PlaceName:        r.Draft.PlaceName,
		NearestStationID: r.Draft.NearestStation,
		SubmittedAt:      r.SubmittedAt.UTC(),
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize report: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(r.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "incident_type", Value: []byte(r.Draft.IncidentType)},
			{Key: "submitted_at", Value: []byte(r.SubmittedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
