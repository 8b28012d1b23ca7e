//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/couchcryptid/grainair/internal/adapter/kafka"
	"github.com/couchcryptid/grainair/internal/config"
	"github.com/couchcryptid/grainair/internal/domain"
	"github.com/couchcryptid/grainair/internal/i18n"
	"github.com/couchcryptid/grainair/internal/observability"
	"github.com/couchcryptid/grainair/internal/report"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testReportTopic = "test-incident-reports"

type publishedReport struct {
	ID               string             `json:"id"`
	IncidentType     string             `json:"incident_type"`
	Location         string             `json:"location"`
	Description      string             `json:"description"`
	Captured         *domain.Coordinate `json:"captured"`
	NearestStationID int                `json:"nearest_station_id"`
	SubmittedAt      time.Time          `json:"submitted_at"`
}

// TestReportPublishedToKafka submits a report through the workflow with the
// Kafka backend and reads it back from the topic.
func TestReportPublishedToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testReportTopic)

	cfg := &config.Config{
		KafkaBrokers:     []string{broker},
		KafkaReportTopic: testReportTopic,
	}
	publisher := kafka.NewReportPublisher(cfg, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	require.NoError(t, publisher.CheckReadiness(ctx))

	catalog, err := domain.DefaultCatalog()
	require.NoError(t, err)

	wf := report.NewWorkflow(report.Options{
		Locator:   report.FixedLocator{Position: domain.Coordinate{Lat: 26.9124, Lng: 75.7873}},
		Backend:   publisher,
		Notifier:  report.NotifierFunc(func(report.Notification) {}),
		Localizer: i18n.MustNew(i18n.English),
		Logger:    discardLogger(),
		Metrics:   observability.NewMetricsForTesting(),
		Catalog:   catalog,
	})

	require.NoError(t, wf.Open())
	require.NoError(t, wf.CaptureLocation(ctx))
	require.NoError(t, wf.SetDescription("factory chimney, black smoke"))
	require.NoError(t, wf.SetIncidentType(domain.IncidentIndustrial))
	require.NoError(t, wf.Submit(ctx))
	assert.Equal(t, report.PhaseIdle, wf.State().Phase)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testReportTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from report topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "industrial", headers["incident_type"])
	_, err = time.Parse(time.RFC3339, headers["submitted_at"])
	assert.NoError(t, err, "submitted_at should be valid RFC3339")

	var got publishedReport
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, string(msg.Key), got.ID)
	assert.Equal(t, "industrial", got.IncidentType)
	assert.Equal(t, "26.912400, 75.787300", got.Location)
	assert.Equal(t, "factory chimney, black smoke", got.Description)
	require.NotNil(t, got.Captured)
	assert.InDelta(t, 26.9124, got.Captured.Lat, 1e-9)
	assert.Equal(t, 7, got.NearestStationID, "Jaipur station")
}

// TestReportPublishFailure points the publisher at an unreachable broker and checks the workflow ends in the failed state with the draft kept.
func TestReportPublishFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := &config.Config{
		KafkaBrokers:     []string{"127.0.0.1:1"},
		KafkaReportTopic: testReportTopic,
	}
	publisher := kafka.NewReportPublisher(cfg, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	assert.Error(t, publisher.CheckReadiness(ctx))

	wf := report.NewWorkflow(report.Options{
		Locator:   report.UnavailableLocator{},
		Backend:   publisher,
		Notifier:  report.NotifierFunc(func(report.Notification) {}),
		Localizer: i18n.MustNew(i18n.English),
		Logger:    discardLogger(),
		Metrics:   observability.NewMetricsForTesting(),
	})
	require.NoError(t, wf.Open())
	require.NoError(t, wf.SetLocation("Ring road"))
	require.NoError(t, wf.SetDescription("tyre burning"))

	err := wf.Submit(ctx)
	require.Error(t, err)
	assert.False(t, errors.Is(err, report.ErrInvalidTransition))
	assert.Equal(t, report.PhaseFailed, wf.State().Phase)
	assert.Equal(t, "tyre burning", wf.Draft().Description)
}
