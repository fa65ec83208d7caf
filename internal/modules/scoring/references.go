package scoring

import (
	"github.com/aristath/quantfolio/internal/modules/universe"
)

// Distribution holds per-metric peer value arrays.
type Distribution map[string][]float64

// References carries the sector-grouped and all-sector reference
// distributions the scorer ranks against. Built once per day from the
// stored universe and passed to the scoring functions as a plain value.
type References struct {
	BuiltDate string                  `msgpack:"built_date" json:"built_date"`
	Sectors   map[string]Distribution `msgpack:"sectors" json:"sectors"`
	All       Distribution            `msgpack:"all" json:"all"`
}

// BuildReferences groups universe fundamentals into reference
// distributions. Sectors with fewer than minSectorSize members are left
// out of the sector table; their members still feed the all-sector
// pool, and the scorer falls back to it for them.
func BuildReferences(securities []universe.Security, minSectorSize int, builtDate string) *References {
	refs := &References{
		BuiltDate: builtDate,
		Sectors:   make(map[string]Distribution),
		All:       make(Distribution),
	}

	bySector := make(map[string][]universe.Security)
	for _, sec := range securities {
		bySector[sec.Sector] = append(bySector[sec.Sector], sec)
		for _, metric := range Metrics {
			if v := MetricValue(sec.Fundamentals, metric); v != nil {
				refs.All[metric] = append(refs.All[metric], *v)
			}
		}
	}

	for sector, members := range bySector {
		if len(members) < minSectorSize {
			continue
		}
		dist := make(Distribution)
		for _, sec := range members {
			for _, metric := range Metrics {
				if v := MetricValue(sec.Fundamentals, metric); v != nil {
					dist[metric] = append(dist[metric], *v)
				}
			}
		}
		refs.Sectors[sector] = dist
	}

	return refs
}

// ForSector returns the sector's distribution, falling back to the
// all-sector pool when the sector was too small to stand alone.
func (r *References) ForSector(sector string) Distribution {
	if dist, ok := r.Sectors[sector]; ok {
		return dist
	}
	return r.All
}
