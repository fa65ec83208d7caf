package attribution

import (
	"fmt"
	"sort"

	"github.com/aristath/quantfolio/internal/domain"
)

// Decompose performs single-period Brinson-Fachler attribution over
// per-sector portfolio and benchmark rows.
//
// Sectors are outer-joined: a sector present on only one side gets
// weight 0 and return 0 on the other, so an off-benchmark bet still
// shows up as allocation effect. The invariant preserved exactly is
//
//	Σ(allocation + selection + interaction) == ΣWp·Rp − ΣWb·Rb
//
// Rows come back sector-ascending; scope, date, and run metadata are
// the caller's to stamp.
func Decompose(portfolio, benchmark []domain.SectorReturn) []EffectRow {
	type side struct {
		weight float64
		ret    float64
	}

	portfolioBySector := make(map[string]side, len(portfolio))
	for _, row := range portfolio {
		portfolioBySector[row.Sector] = side{weight: row.Weight, ret: row.Return}
	}
	benchmarkBySector := make(map[string]side, len(benchmark))
	for _, row := range benchmark {
		benchmarkBySector[row.Sector] = side{weight: row.Weight, ret: row.Return}
	}

	sectorSet := make(map[string]bool, len(portfolioBySector)+len(benchmarkBySector))
	for sector := range portfolioBySector {
		sectorSet[sector] = true
	}
	for sector := range benchmarkBySector {
		sectorSet[sector] = true
	}
	sectors := make([]string, 0, len(sectorSet))
	for sector := range sectorSet {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)

	var totalBenchmarkReturn float64
	for _, b := range benchmarkBySector {
		totalBenchmarkReturn += b.weight * b.ret
	}

	rows := make([]EffectRow, 0, len(sectors))
	for _, sector := range sectors {
		p := portfolioBySector[sector]
		b := benchmarkBySector[sector]

		rows = append(rows, EffectRow{
			Sector:               sector,
			AllocationEffect:     (p.weight - b.weight) * (b.ret - totalBenchmarkReturn),
			SelectionEffect:      b.weight * (p.ret - b.ret),
			InteractionEffect:    (p.weight - b.weight) * (p.ret - b.ret),
			PortfolioWeight:      p.weight,
			BenchmarkWeight:      b.weight,
			PortfolioReturn:      p.ret,
			BenchmarkReturn:      b.ret,
			TotalBenchmarkReturn: totalBenchmarkReturn,
		})
	}

	return rows
}

// FilterScope selects one side's in-scope sector rows and renormalizes
// their weights to sum to 1. TOTAL passes rows through untouched.
// A scope that matches no weight is a configuration error, rejected
// before any effects are computed.
func FilterScope(rows []domain.SectorReturn, scope string) ([]domain.SectorReturn, error) {
	var sectors []string
	switch scope {
	case ScopeTotal:
		return rows, nil
	case ScopeEquity:
		sectors = equityScopeSectors
	case ScopeFixedIncome:
		sectors = fixedIncomeScopeSectors
	default:
		return nil, fmt.Errorf("unknown attribution scope %q (valid: TOTAL, EQUITY, FIXED_INCOME)", scope)
	}

	inScope := make(map[string]bool, len(sectors))
	for _, sector := range sectors {
		inScope[sector] = true
	}

	var (
		filtered    []domain.SectorReturn
		totalWeight float64
	)
	for _, row := range rows {
		if !inScope[row.Sector] {
			continue
		}
		filtered = append(filtered, row)
		totalWeight += row.Weight
	}

	if len(filtered) == 0 || totalWeight <= 0 {
		return nil, fmt.Errorf("attribution scope %s has no weighted sectors", scope)
	}

	for i := range filtered {
		filtered[i].Weight /= totalWeight
	}

	return filtered, nil
}
