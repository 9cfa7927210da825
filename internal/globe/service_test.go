package globe_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/couchcryptid/ghg-globe/internal/domain"
	"github.com/couchcryptid/ghg-globe/internal/globe"
	"github.com/couchcryptid/ghg-globe/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockPublisher struct {
	mu        sync.Mutex
	err       error
	published []domain.CommunityReport
}

func (m *mockPublisher) PublishReport(_ context.Context, r domain.CommunityReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, r)
	return m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, pub globe.ReportPublisher) (*globe.Service, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	locator := domain.NewTableLocator(rand.New(rand.NewPCG(3, 5)))
	svc, err := globe.New(domain.NewEncoder(domain.ClampSize), locator, pub, domain.DefaultSelection, discardLogger(), metrics)
	require.NoError(t, err)
	return svc, metrics
}

// --- tests ---

func TestNew_InvalidSelection(t *testing.T) {
	_, err := globe.New(
		domain.NewEncoder(domain.ClampSize),
		domain.NewTableLocator(nil),
		nil,
		domain.Selection{Gas: "co2", Year: 1900, Opacity: 0.5},
		discardLogger(),
		observability.NewMetricsForTesting(),
	)
	require.ErrorIs(t, err, domain.ErrYearOutOfRange)
}

func TestService_CheckReadiness(t *testing.T) {
	svc, _ := newTestService(t, nil)
	assert.NoError(t, svc.CheckReadiness(context.Background()))
}

func TestService_SelectAndCurrentScene(t *testing.T) {
	svc, metrics := newTestService(t, nil)

	sel := domain.Selection{Gas: domain.GasN2O, Year: 2050, Opacity: 0.3}
	require.NoError(t, svc.Select(sel))
	assert.Equal(t, sel, svc.Selection())

	markers, err := svc.CurrentScene()
	require.NoError(t, err)
	require.Len(t, markers, len(domain.Cities()))
	assert.InDelta(t, 0.3, markers[0].Color.A, 1e-9)
	assert.Equal(t, domain.GasN2O, markers[0].City.Gas)

	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.SceneBuilds.WithLabelValues("n2o")), 1e-9)
	assert.InDelta(t, float64(len(markers)), testutil.ToFloat64(metrics.MarkersRendered), 1e-9)
}

func TestService_SelectRejectsInvalid(t *testing.T) {
	svc, _ := newTestService(t, nil)

	err := svc.Select(domain.Selection{Gas: domain.GasCO2, Year: 2023, Opacity: 2})
	require.ErrorIs(t, err, domain.ErrOpacityOutOfRange)
	assert.Equal(t, domain.DefaultSelection, svc.Selection())
}

func TestService_SelectRejectsNonCanonicalGas(t *testing.T) {
	svc, _ := newTestService(t, nil)

	err := svc.Select(domain.Selection{Gas: "CO2", Year: 2023, Opacity: 0.5})
	require.ErrorIs(t, err, domain.ErrUnknownGas)
	assert.Equal(t, domain.DefaultSelection, svc.Selection())

	_, err = svc.CurrentScene()
	require.NoError(t, err)
}

func TestService_SceneWithInvalidSelection(t *testing.T) {
	svc, metrics := newTestService(t, nil)

	_, err := svc.Scene(domain.Selection{Gas: "xenon", Year: 2023, Opacity: 1})
	require.ErrorIs(t, err, domain.ErrUnknownGas)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.SceneBuildErrors), 1e-9)
}

func TestService_SubmitReport(t *testing.T) {
	pub := &mockPublisher{}
	svc, metrics := newTestService(t, pub)

	report, err := svc.SubmitReport(context.Background(), domain.ReportInput{
		Category:    "deforestation",
		Location:    "Vancouver",
		Description: "Clear-cut near the park",
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.CommunityReport{report}, svc.Reports())
	assert.Equal(t, []domain.CommunityReport{report}, pub.published)
	assert.Equal(t, domain.LocationTable, report.LocationSource)

	info, err := svc.Report(report.ID)
	require.NoError(t, err)
	assert.Equal(t, "DEFORESTATION", info.Category)

	markers, err := svc.CurrentScene()
	require.NoError(t, err)
	assert.Len(t, markers, len(domain.Cities())+1)

	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.ReportsSubmitted.WithLabelValues("table")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.ReportsStored), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.PublisherEnabled), 1e-9)
}

func TestService_SubmitReport_EmptyDescriptionRejected(t *testing.T) {
	pub := &mockPublisher{}
	svc, metrics := newTestService(t, pub)

	_, err := svc.SubmitReport(context.Background(), domain.ReportInput{Category: "waste", Location: "Lagos"})
	require.ErrorIs(t, err, domain.ErrMissingField)

	assert.Empty(t, svc.Reports())
	assert.Empty(t, pub.published)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.ReportsRejected.WithLabelValues("description")), 1e-9)
}

func TestService_SubmitReport_PublishFailureKeepsReport(t *testing.T) {
	pub := &mockPublisher{err: errors.New("broker down")}
	svc, metrics := newTestService(t, pub)

	report, err := svc.SubmitReport(context.Background(), domain.ReportInput{Location: "Atlantis", Description: "Rising seas"})
	require.NoError(t, err)

	assert.Len(t, svc.Reports(), 1)
	assert.Equal(t, domain.LocationRandom, report.LocationSource)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.ReportPublishErrors), 1e-9)
}

func TestService_SubmitReport_Concurrent(t *testing.T) {
	svc, _ := newTestService(t, nil)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SubmitReport(context.Background(), domain.ReportInput{Location: "Cairo", Description: "Dust"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, svc.Reports(), 50)
}

func TestService_Report_NotFound(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, err := svc.Report("nope")
	require.ErrorIs(t, err, domain.ErrReportNotFound)
}

func TestService_CityInfo(t *testing.T) {
	svc, _ := newTestService(t, nil)

	info, err := svc.CityInfo("Lagos", domain.Selection{Gas: domain.GasCH4, Year: 2023, Opacity: 1})
	require.NoError(t, err)
	assert.Equal(t, "Lagos", info.City)
	assert.Equal(t, "Methane", info.GasName)
	assert.Equal(t, domain.AirQualitySensitive, info.AirQualityStatus)

	_, err = svc.CityInfo("Gotham", domain.DefaultSelection)
	require.ErrorIs(t, err, domain.ErrUnknownCity)
}

func TestService_GasesInDisplayOrder(t *testing.T) {
	svc, _ := newTestService(t, nil)

	gases := svc.Gases()
	require.Len(t, gases, 3)
	assert.Equal(t, domain.GasCO2, gases[0].Key)
	assert.Equal(t, domain.GasCH4, gases[1].Key)
	assert.Equal(t, domain.GasN2O, gases[2].Key)
}
