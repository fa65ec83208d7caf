package marketdata

import (
	"fmt"
	"sort"

	"github.com/markcheno/go-talib"
	"github.com/rs/zerolog"

	"github.com/aristath/quantfolio/internal/domain"
)

// Provider builds return series from raw price history.
type Provider struct {
	history *HistoryDB
	log     zerolog.Logger
}

// NewProvider creates a return series provider backed by a history database.
func NewProvider(history *HistoryDB, log zerolog.Logger) *Provider {
	return &Provider{
		history: history,
		log:     log.With().Str("component", "marketdata").Logger(),
	}
}

// DailyReturns computes day-over-day percentage returns for a ticker
// up to and including asOfDate.
func (p *Provider) DailyReturns(ticker, asOfDate string) (domain.ReturnSeries, error) {
	prices, err := p.history.DailyCloses(ticker, asOfDate)
	if err != nil {
		return nil, err
	}
	if len(prices) < 2 {
		return nil, fmt.Errorf("insufficient price history for %s: %d rows", ticker, len(prices))
	}

	closes := make([]float64, len(prices))
	for i, price := range prices {
		closes[i] = price.Close
	}

	// Rocp with period 1 yields close[i]/close[i-1] - 1. Index 0 is the
	// lookback slot and carries no return.
	rocp := talib.Rocp(closes, 1)

	series := make(domain.ReturnSeries, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		series = append(series, domain.ReturnPoint{Date: prices[i].Date, Return: rocp[i]})
	}

	return series, nil
}

// GroupReturns computes the market-value weighted return series for a
// group of holdings. Holdings without usable price history are skipped
// and the remaining weights renormalized. Only dates where every
// included holding has a return survive.
func (p *Provider) GroupReturns(holdings []domain.Holding, asOfDate string) (domain.ReturnSeries, error) {
	var (
		series  []domain.ReturnSeries
		weights []float64
		total   float64
	)

	for _, holding := range holdings {
		s, err := p.DailyReturns(holding.Ticker, asOfDate)
		if err != nil {
			p.log.Warn().
				Str("ticker", holding.Ticker).
				Err(err).
				Msg("Skipping holding without usable price history")
			continue
		}
		series = append(series, s)
		weights = append(weights, holding.MarketValue)
		total += holding.MarketValue
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("no holdings with usable price history as of %s", asOfDate)
	}
	if total <= 0 {
		return nil, fmt.Errorf("non-positive market value across %d holdings", len(series))
	}
	for i := range weights {
		weights[i] /= total
	}

	combined := weightedIntersection(series, weights)
	if len(combined) == 0 {
		return nil, fmt.Errorf("no overlapping return dates across %d holdings", len(series))
	}

	return combined, nil
}

// PortfolioReturns computes the full-portfolio return series for a snapshot.
func (p *Provider) PortfolioReturns(snap *domain.HoldingsSnapshot) (domain.ReturnSeries, error) {
	return p.GroupReturns(snap.Holdings, snap.AsOfDate)
}

// weightedIntersection combines several return series into one weighted
// series over the dates present in every input.
func weightedIntersection(series []domain.ReturnSeries, weights []float64) domain.ReturnSeries {
	type accum struct {
		sum   float64
		count int
	}

	byDate := make(map[string]*accum)
	for i, s := range series {
		for _, point := range s {
			a := byDate[point.Date]
			if a == nil {
				a = &accum{}
				byDate[point.Date] = a
			}
			a.sum += weights[i] * point.Return
			a.count++
		}
	}

	dates := make([]string, 0, len(byDate))
	for date, a := range byDate {
		if a.count == len(series) {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	combined := make(domain.ReturnSeries, 0, len(dates))
	for _, date := range dates {
		combined = append(combined, domain.ReturnPoint{Date: date, Return: byDate[date].sum})
	}

	return combined
}
