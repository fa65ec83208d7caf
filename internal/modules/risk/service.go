package risk

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/quantfolio/internal/events"
	"github.com/aristath/quantfolio/internal/marketdata"
	"github.com/aristath/quantfolio/internal/modules/portfolio"
	"github.com/aristath/quantfolio/internal/utils"
)

// ComputeResult summarizes one risk metrics run.
type ComputeResult struct {
	RunID    string         `json:"run_id"`
	AsOfDate string         `json:"asof_date"`
	Metrics  []MetricRecord `json:"metrics"`
}

// Service orchestrates one risk metrics run: load the book, build the
// portfolio and benchmark return series, calculate, persist, announce.
type Service struct {
	positions *portfolio.PositionRepository
	provider  *marketdata.Provider
	calc      *Calculator
	repo      *Repository
	bus       *events.Bus
	log       zerolog.Logger
}

// NewService creates a risk service.
func NewService(
	positions *portfolio.PositionRepository,
	provider *marketdata.Provider,
	calc *Calculator,
	repo *Repository,
	bus *events.Bus,
	log zerolog.Logger,
) *Service {
	return &Service{
		positions: positions,
		provider:  provider,
		calc:      calc,
		repo:      repo,
		bus:       bus,
		log:       log.With().Str("service", "risk").Logger(),
	}
}

// Compute runs the full metric set for one as-of date and replaces the
// stored set. An empty date means today.
func (s *Service) Compute(asOfDate string) (*ComputeResult, error) {
	defer utils.OperationTimer("risk_compute", s.log)()

	if asOfDate == "" {
		asOfDate = time.Now().Format("2006-01-02")
	}

	snapshot, err := s.positions.Snapshot(asOfDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings snapshot: %w", err)
	}

	portfolioReturns, err := s.provider.PortfolioReturns(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to build portfolio returns: %w", err)
	}

	benchmarkReturns, err := s.provider.CompositeBenchmarkReturns(asOfDate)
	if err != nil {
		return nil, fmt.Errorf("failed to build benchmark returns: %w", err)
	}

	records, err := s.calc.Calculate(asOfDate, portfolioReturns, benchmarkReturns, snapshot)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	for i := range records {
		records[i].RunID = runID
	}

	if err := s.repo.ReplaceForDate(asOfDate, records); err != nil {
		return nil, fmt.Errorf("failed to persist risk metrics: %w", err)
	}

	if s.bus != nil {
		s.bus.Publish(&events.RiskComputedData{
			RunID:    runID,
			AsOfDate: asOfDate,
			Metrics:  len(records),
		})
	}

	s.log.Info().
		Str("run_id", runID).
		Str("asof_date", asOfDate).
		Int("metrics", len(records)).
		Msg("Risk metrics computed")

	return &ComputeResult{RunID: runID, AsOfDate: asOfDate, Metrics: records}, nil
}

// MetricsForDate loads stored metrics with derived risk levels. An
// empty date means the latest stored set.
func (s *Service) MetricsForDate(asOfDate string) ([]MetricRecord, error) {
	if asOfDate == "" {
		latest, err := s.repo.LatestDate()
		if err != nil {
			return nil, err
		}
		if latest == "" {
			return nil, fmt.Errorf("no risk metrics stored yet")
		}
		asOfDate = latest
	}

	records, err := s.repo.GetByDate(asOfDate)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no risk metrics stored for %s", asOfDate)
	}

	for i := range records {
		records[i].Level = Level(records[i].MetricName, records[i].Value)
	}

	return records, nil
}

// Dates lists the as-of dates with stored metrics, newest first.
func (s *Service) Dates(limit int) ([]string, error) {
	return s.repo.Dates(limit)
}
