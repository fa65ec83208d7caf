package risk

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/quantfolio/internal/domain"
	"github.com/aristath/quantfolio/pkg/formulas"
)

// defaultDurations approximates modified duration for bond sleeve
// tickers whose position rows carry none.
var defaultDurations = map[string]float64{
	"US10Y":  9.0,
	"CORP5":  4.5,
	"CAN10Y": 9.0,
}

// Calculator computes the full risk metric set for one as-of date.
// The lookback is all available history up to the as-of date; the
// realized observation count is recorded per metric.
type Calculator struct {
	riskFreeRate float64
	log          zerolog.Logger
}

// NewCalculator creates a calculator with the given annualized
// risk-free rate (fraction, e.g. 0.04).
func NewCalculator(riskFreeRate float64, log zerolog.Logger) *Calculator {
	return &Calculator{
		riskFreeRate: riskFreeRate,
		log:          log.With().Str("component", "risk_calculator").Logger(),
	}
}

// Calculate computes market, relative, concentration, and duration
// metrics. An empty portfolio return series refuses with an error so
// that no neutral zeros are ever persisted in place of real data.
func (c *Calculator) Calculate(asOfDate string, portfolio, benchmark domain.ReturnSeries, snapshot *domain.HoldingsSnapshot) ([]MetricRecord, error) {
	if len(portfolio) == 0 {
		return nil, fmt.Errorf("no portfolio return history as of %s", asOfDate)
	}

	records := make([]MetricRecord, 0, 12)
	add := func(name string, value float64, category string, lookback *int) {
		records = append(records, MetricRecord{
			AsOfDate:     asOfDate,
			MetricName:   name,
			Value:        value,
			Category:     category,
			LookbackDays: lookback,
		})
	}

	// Market risk over the portfolio series alone
	returns := portfolio.Returns()
	window := intPtr(len(returns))

	varThreshold := formulas.VaR95(returns)
	add(MetricVaR95, varThreshold, CategoryMarketRisk, window)
	add(MetricExpectedShortfall, formulas.ExpectedShortfall(returns, varThreshold), CategoryMarketRisk, window)
	add(MetricVolatilityAnn, formulas.AnnualizedVolatility(returns), CategoryMarketRisk, window)
	add(MetricSharpeRatio, formulas.SharpeRatio(returns, c.riskFreeRate), CategoryMarketRisk, window)
	add(MetricMaxDrawdown, formulas.MaxDrawdown(returns), CategoryMarketRisk, window)

	// Relative risk over dates present on both sides
	port, bench := portfolio.InnerJoin(benchmark)
	aligned := intPtr(len(port))
	if len(port) < 2 {
		c.log.Warn().
			Str("asof_date", asOfDate).
			Int("aligned_days", len(port)).
			Msg("Too few overlapping benchmark dates, relative metrics degrade to zero")
	}

	active := formulas.ActiveReturns(port, bench)
	trackingError := formulas.TrackingError(active)
	annualizedActive := formulas.AnnualizedReturn(active)

	add(MetricBeta, formulas.Beta(port, bench), CategoryRelativeRisk, aligned)
	add(MetricTrackingError, trackingError, CategoryRelativeRisk, aligned)
	add(MetricInformationRatio, formulas.InformationRatio(annualizedActive, trackingError), CategoryRelativeRisk, aligned)
	add(MetricActiveReturn, annualizedActive, CategoryRelativeRisk, aligned)

	// Concentration and duration from the holdings snapshot
	if snapshot != nil {
		add(MetricHHISecurity, formulas.HHI(snapshot.MarketValues()), CategoryConcentration, nil)
		add(MetricHHISector, sectorHHI(snapshot), CategoryConcentration, nil)
		marketValues, durations := durationSleeve(snapshot)
		add(MetricDV01, formulas.DV01(marketValues, durations), CategoryDuration, nil)
	}

	return records, nil
}

// sectorHHI aggregates market value by sector before concentrating.
func sectorHHI(snapshot *domain.HoldingsSnapshot) float64 {
	sectorValues := snapshot.SectorValues()
	values := make([]float64, 0, len(sectorValues))
	for _, v := range sectorValues {
		values = append(values, v)
	}
	return formulas.HHI(values)
}

// durationSleeve extracts positions with a modified duration, either
// from the position row or the default sleeve map. Positions with
// neither do not contribute to DV01.
func durationSleeve(snapshot *domain.HoldingsSnapshot) (marketValues, durations []float64) {
	for _, holding := range snapshot.Holdings {
		duration := holding.Duration
		if duration == nil {
			if d, ok := defaultDurations[holding.Ticker]; ok {
				duration = &d
			}
		}
		if duration == nil {
			continue
		}
		marketValues = append(marketValues, holding.MarketValue)
		durations = append(durations, *duration)
	}
	return marketValues, durations
}

func intPtr(v int) *int {
	return &v
}
