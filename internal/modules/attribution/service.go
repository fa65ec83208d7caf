package attribution

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/quantfolio/internal/domain"
	"github.com/aristath/quantfolio/internal/events"
	"github.com/aristath/quantfolio/internal/marketdata"
	"github.com/aristath/quantfolio/internal/modules/portfolio"
	"github.com/aristath/quantfolio/internal/utils"
	"github.com/aristath/quantfolio/pkg/formulas"
)

// staleReturnThreshold is the 1bp cutoff below which a day's returns
// are treated as stale prices rather than genuinely flat markets.
const staleReturnThreshold = 1e-4

// ComputeResult summarizes one attribution run.
type ComputeResult struct {
	RunID        string      `json:"run_id"`
	AsOfDate     string      `json:"asof_date"`
	LookbackDays int         `json:"lookback_days"`
	Skipped      bool        `json:"skipped,omitempty"`
	Effects      []EffectRow `json:"effects,omitempty"`
}

// Service orchestrates one attribution run across the three scopes.
type Service struct {
	positions *portfolio.PositionRepository
	provider  *marketdata.Provider
	repo      *Repository
	bus       *events.Bus
	log       zerolog.Logger
}

// NewService creates an attribution service.
func NewService(
	positions *portfolio.PositionRepository,
	provider *marketdata.Provider,
	repo *Repository,
	bus *events.Bus,
	log zerolog.Logger,
) *Service {
	return &Service{
		positions: positions,
		provider:  provider,
		repo:      repo,
		bus:       bus,
		log:       log.With().Str("service", "attribution").Logger(),
	}
}

// Compute runs Brinson-Fachler attribution for one as-of date and
// lookback window (1 = daily, 30 = monthly) and replaces the stored
// rows for that key. When both sides moved less than 1bp the run is
// skipped as stale and nothing is written.
func (s *Service) Compute(asOfDate string, lookbackDays int) (*ComputeResult, error) {
	defer utils.OperationTimer("attribution_compute", s.log)()

	if asOfDate == "" {
		asOfDate = time.Now().Format("2006-01-02")
	}
	if lookbackDays <= 0 {
		lookbackDays = 1
	}

	snapshot, err := s.positions.Snapshot(asOfDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings snapshot: %w", err)
	}
	if len(snapshot.Holdings) == 0 {
		return nil, fmt.Errorf("no portfolio holdings as of %s", asOfDate)
	}

	portfolioRows, err := s.portfolioSectorRows(snapshot, lookbackDays)
	if err != nil {
		return nil, err
	}

	benchmarkRows, err := s.benchmarkSectorRows(asOfDate, lookbackDays)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()

	if isStale(portfolioRows, benchmarkRows) {
		s.log.Info().
			Str("asof_date", asOfDate).
			Int("lookback_days", lookbackDays).
			Msg("Both sides moved less than 1bp, skipping stale attribution run")

		s.publishComputed(runID, asOfDate, lookbackDays, 0, true)
		return &ComputeResult{RunID: runID, AsOfDate: asOfDate, LookbackDays: lookbackDays, Skipped: true}, nil
	}

	var effects []EffectRow
	for _, scope := range ScopeNames() {
		scopedPortfolio, err := FilterScope(portfolioRows, scope)
		if err != nil {
			if scope == ScopeTotal {
				return nil, err
			}
			s.log.Warn().Err(err).Str("scope", scope).Msg("Skipping attribution scope")
			continue
		}
		scopedBenchmark, err := FilterScope(benchmarkRows, scope)
		if err != nil {
			if scope == ScopeTotal {
				return nil, err
			}
			s.log.Warn().Err(err).Str("scope", scope).Msg("Skipping attribution scope")
			continue
		}

		for _, row := range Decompose(scopedPortfolio, scopedBenchmark) {
			row.AsOfDate = asOfDate
			row.AttributionType = scope
			row.LookbackDays = lookbackDays
			row.RunID = runID
			effects = append(effects, row)
		}
	}

	if err := s.repo.ReplaceForRun(asOfDate, lookbackDays, effects); err != nil {
		return nil, fmt.Errorf("failed to persist attribution effects: %w", err)
	}

	s.publishComputed(runID, asOfDate, lookbackDays, len(effects), false)

	s.log.Info().
		Str("run_id", runID).
		Str("asof_date", asOfDate).
		Int("lookback_days", lookbackDays).
		Int("rows", len(effects)).
		Msg("Attribution computed")

	return &ComputeResult{RunID: runID, AsOfDate: asOfDate, LookbackDays: lookbackDays, Effects: effects}, nil
}

// EffectsForDate loads stored effects. An empty date means the latest
// stored run for the lookback window.
func (s *Service) EffectsForDate(asOfDate string, lookbackDays int) ([]EffectRow, error) {
	if lookbackDays <= 0 {
		lookbackDays = 1
	}

	if asOfDate == "" {
		latest, err := s.repo.LatestDate(lookbackDays)
		if err != nil {
			return nil, err
		}
		if latest == "" {
			return nil, fmt.Errorf("no attribution stored yet for lookback %d", lookbackDays)
		}
		asOfDate = latest
	}

	effects, err := s.repo.GetByDate(asOfDate, lookbackDays)
	if err != nil {
		return nil, err
	}
	if len(effects) == 0 {
		return nil, fmt.Errorf("no attribution stored for %s with lookback %d", asOfDate, lookbackDays)
	}

	return effects, nil
}

// portfolioSectorRows aggregates the book into per-sector weights and
// period returns. Sectors without usable price history are excluded
// and the weights are taken over the sectors that remain.
func (s *Service) portfolioSectorRows(snapshot *domain.HoldingsSnapshot, lookbackDays int) ([]domain.SectorReturn, error) {
	bySector := make(map[string][]domain.Holding)
	for _, holding := range snapshot.Holdings {
		bySector[holding.Sector] = append(bySector[holding.Sector], holding)
	}

	sectors := make([]string, 0, len(bySector))
	for sector := range bySector {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)

	var (
		rows       []domain.SectorReturn
		totalValue float64
	)
	for _, sector := range sectors {
		holdings := bySector[sector]

		series, err := s.provider.GroupReturns(holdings, snapshot.AsOfDate)
		if err != nil {
			s.log.Warn().Err(err).Str("sector", sector).Msg("Excluding sector without usable returns")
			continue
		}

		ret, ok := periodReturn(series, snapshot.AsOfDate, lookbackDays)
		if !ok {
			s.log.Warn().
				Str("sector", sector).
				Str("asof_date", snapshot.AsOfDate).
				Int("lookback_days", lookbackDays).
				Msg("Excluding sector without a return for the window")
			continue
		}

		var sectorValue float64
		for _, holding := range holdings {
			sectorValue += holding.MarketValue
		}

		rows = append(rows, domain.SectorReturn{Sector: sector, Weight: sectorValue, Return: ret})
		totalValue += sectorValue
	}

	if len(rows) == 0 || totalValue <= 0 {
		return nil, fmt.Errorf("no portfolio sector returns as of %s", snapshot.AsOfDate)
	}
	for i := range rows {
		rows[i].Weight /= totalValue
	}

	return rows, nil
}

// benchmarkSectorRows builds the six equal-weight benchmark sector
// rows. A component without a return for the window fails the run; a
// partial composite would misstate the benchmark.
func (s *Service) benchmarkSectorRows(asOfDate string, lookbackDays int) ([]domain.SectorReturn, error) {
	sectors := marketdata.BenchmarkSectors()
	weight := 1.0 / float64(len(sectors))

	rows := make([]domain.SectorReturn, 0, len(sectors))
	for _, sector := range sectors {
		series, err := s.provider.SectorBenchmarkReturns(sector, asOfDate)
		if err != nil {
			return nil, fmt.Errorf("benchmark sector %s: %w", sector, err)
		}

		ret, ok := periodReturn(series, asOfDate, lookbackDays)
		if !ok {
			return nil, fmt.Errorf("benchmark sector %s has no return for %s (lookback %d)", sector, asOfDate, lookbackDays)
		}

		rows = append(rows, domain.SectorReturn{Sector: sector, Weight: weight, Return: ret})
	}

	return rows, nil
}

func (s *Service) publishComputed(runID, asOfDate string, lookbackDays, rows int, skipped bool) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(&events.AttributionComputedData{
		RunID:        runID,
		AsOfDate:     asOfDate,
		LookbackDays: lookbackDays,
		Rows:         rows,
		Skipped:      skipped,
	})
}

// periodReturn extracts the window return from a date-ascending series
// capped at the as-of date: the exact-date daily return for lookback 1,
// or the compounded return over (asof-lookback, asof] otherwise.
func periodReturn(series domain.ReturnSeries, asOfDate string, lookbackDays int) (float64, bool) {
	if len(series) == 0 {
		return 0, false
	}

	if lookbackDays <= 1 {
		last := series[len(series)-1]
		if last.Date != asOfDate {
			return 0, false
		}
		return last.Return, true
	}

	asof, err := time.Parse("2006-01-02", asOfDate)
	if err != nil {
		return 0, false
	}
	cutoff := asof.AddDate(0, 0, -lookbackDays).Format("2006-01-02")

	window := series.Since(cutoff)
	if len(window) == 0 {
		return 0, false
	}
	return formulas.CompoundReturn(window.Returns()), true
}

// isStale reports whether both sides moved less than 1bp over the
// window, the signature of stale upstream prices.
func isStale(portfolio, benchmark []domain.SectorReturn) bool {
	return math.Abs(weightedTotal(portfolio)) < staleReturnThreshold &&
		math.Abs(weightedTotal(benchmark)) < staleReturnThreshold
}

func weightedTotal(rows []domain.SectorReturn) float64 {
	var total float64
	for _, row := range rows {
		total += row.Weight * row.Return
	}
	return total
}
