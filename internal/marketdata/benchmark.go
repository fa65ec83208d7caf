package marketdata

import (
	"fmt"

	"github.com/aristath/quantfolio/internal/domain"
)

// benchmarkComponent maps one portfolio sector to its benchmark ETF proxy.
type benchmarkComponent struct {
	Sector string
	Ticker string
}

// benchmarkComponents defines the equal-weight composite benchmark.
var benchmarkComponents = []benchmarkComponent{
	{Sector: "Tech", Ticker: "XLK"},
	{Sector: "Financials", Ticker: "XFN.TO"},
	{Sector: "US Broad", Ticker: "SPY"},
	{Sector: "Canada Broad", Ticker: "XIC.TO"},
	{Sector: "CAN Bonds", Ticker: "XBB.TO"},
	{Sector: "US Bonds", Ticker: "AGG"},
}

// BenchmarkSectors returns the sectors covered by the composite benchmark,
// in display order.
func BenchmarkSectors() []string {
	sectors := make([]string, len(benchmarkComponents))
	for i, c := range benchmarkComponents {
		sectors[i] = c.Sector
	}
	return sectors
}

// BenchmarkTicker resolves the ETF that proxies a sector.
func BenchmarkTicker(sector string) (string, bool) {
	for _, c := range benchmarkComponents {
		if c.Sector == sector {
			return c.Ticker, true
		}
	}
	return "", false
}

// CompositeBenchmarkReturns computes the equal-weight benchmark return
// series up to asOfDate. Every component must have usable history; a
// partial composite would misstate the benchmark.
func (p *Provider) CompositeBenchmarkReturns(asOfDate string) (domain.ReturnSeries, error) {
	series := make([]domain.ReturnSeries, 0, len(benchmarkComponents))
	weights := make([]float64, 0, len(benchmarkComponents))
	weight := 1.0 / float64(len(benchmarkComponents))

	for _, component := range benchmarkComponents {
		s, err := p.DailyReturns(component.Ticker, asOfDate)
		if err != nil {
			return nil, fmt.Errorf("benchmark component %s (%s): %w", component.Ticker, component.Sector, err)
		}
		series = append(series, s)
		weights = append(weights, weight)
	}

	combined := weightedIntersection(series, weights)
	if len(combined) == 0 {
		return nil, fmt.Errorf("no overlapping dates across benchmark components as of %s", asOfDate)
	}

	return combined, nil
}

// SectorBenchmarkReturns computes the benchmark return series for a
// single sector.
func (p *Provider) SectorBenchmarkReturns(sector, asOfDate string) (domain.ReturnSeries, error) {
	ticker, ok := BenchmarkTicker(sector)
	if !ok {
		return nil, fmt.Errorf("no benchmark component mapped for sector %q", sector)
	}
	return p.DailyReturns(ticker, asOfDate)
}
