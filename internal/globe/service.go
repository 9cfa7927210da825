// Package globe is the application layer of the greenhouse-gas globe. It owns
// the selection state and community report list and turns them into marker
// scenes for a rendering host.
package globe

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/couchcryptid/ghg-globe/internal/domain"
	"github.com/couchcryptid/ghg-globe/internal/observability"
)

// ReportPublisher forwards accepted community reports downstream.
type ReportPublisher interface {
	PublishReport(ctx context.Context, report domain.CommunityReport) error
}

// Service serves scenes and accepts community reports. It is safe for
// concurrent use; state changes are serialized.
type Service struct {
	encoder   *domain.Encoder
	cities    []domain.Measurement
	locator   domain.Locator
	publisher ReportPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics

	mu    sync.RWMutex
	state domain.State
}

// New creates a Service over the built-in city dataset. Pass a nil publisher
// to keep reports in memory only.
func New(
	encoder *domain.Encoder,
	locator domain.Locator,
	publisher ReportPublisher,
	initial domain.Selection,
	logger *slog.Logger,
	metrics *observability.Metrics,
) (*Service, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}

	if publisher != nil {
		metrics.PublisherEnabled.Set(1)
	} else {
		metrics.PublisherEnabled.Set(0)
	}

	return &Service{
		encoder:   encoder,
		cities:    domain.Cities(),
		locator:   locator,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		state:     domain.NewState(initial),
	}, nil
}

// CheckReadiness returns nil once the city dataset is loaded.
func (s *Service) CheckReadiness(_ context.Context) error {
	if len(s.cities) == 0 {
		return errors.New("city dataset is empty")
	}
	return nil
}

// Gases returns the display metadata of every supported gas.
func (s *Service) Gases() []domain.GasSpec {
	return s.encoder.Gases.Specs()
}

// Cities returns a copy of the city dataset.
func (s *Service) Cities() []domain.Measurement {
	return slices.Clone(s.cities)
}

// Selection returns the stored selection.
func (s *Service) Selection() domain.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Selection
}

// Select replaces the stored selection.
func (s *Service) Select(sel domain.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.WithSelection(sel)
	if err != nil {
		return err
	}
	s.state = next
	s.logger.Debug("selection changed", "gas", sel.Gas, "year", sel.Year, "opacity", sel.Opacity)
	return nil
}

// Scene rebuilds every marker for sel, including all community reports.
func (s *Service) Scene(sel domain.Selection) ([]domain.Marker, error) {
	start := time.Now()

	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()
	state.Selection = sel

	markers, err := s.encoder.BuildScene(state, s.cities)
	if err != nil {
		s.metrics.SceneBuildErrors.Inc()
		return nil, err
	}

	s.metrics.SceneBuilds.WithLabelValues(string(sel.Gas)).Inc()
	s.metrics.SceneBuildDuration.Observe(time.Since(start).Seconds())
	s.metrics.MarkersRendered.Set(float64(len(markers)))
	s.logger.Debug("scene built",
		"gas", sel.Gas,
		"year", sel.Year,
		"markers", len(markers),
	)
	return markers, nil
}

// CurrentScene rebuilds every marker for the stored selection.
func (s *Service) CurrentScene() ([]domain.Marker, error) {
	return s.Scene(s.Selection())
}

// CityInfo returns the details payload for the named city under sel.
func (s *Service) CityInfo(city string, sel domain.Selection) (domain.CityInfo, error) {
	return s.encoder.CityDetails(s.cities, city, sel)
}

// SubmitReport validates and stores a community report, then publishes it.
// A failed publish is logged; the report stays stored.
func (s *Service) SubmitReport(ctx context.Context, in domain.ReportInput) (domain.CommunityReport, error) {
	s.mu.Lock()
	next, report, err := s.state.SubmitReport(in, s.locator)
	if err != nil {
		s.mu.Unlock()
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			s.metrics.ReportsRejected.WithLabelValues(verr.Field).Inc()
		}
		return domain.CommunityReport{}, err
	}
	s.state = next
	stored := len(next.Reports)
	s.mu.Unlock()

	s.metrics.ReportsSubmitted.WithLabelValues(string(report.LocationSource)).Inc()
	s.metrics.ReportsStored.Set(float64(stored))
	s.logger.Info("report submitted",
		"report_id", report.ID,
		"category", report.Category,
		"location", report.Location,
		"location_source", report.LocationSource,
	)

	if s.publisher != nil {
		if err := s.publisher.PublishReport(ctx, report); err != nil {
			s.metrics.ReportPublishErrors.Inc()
			s.logger.Warn("publish report failed",
				"report_id", report.ID,
				"error", err,
			)
		}
	}

	return report, nil
}

// Reports returns every stored report in submission order.
func (s *Service) Reports() []domain.CommunityReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.Reports)
}

// Report returns the details payload of one stored report.
func (s *Service) Report(id string) (domain.ReportInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, err := s.state.FindReport(id)
	if err != nil {
		return domain.ReportInfo{}, err
	}
	return domain.NewReportInfo(r), nil
}
