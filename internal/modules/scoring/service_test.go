package scoring

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aristath/quantfolio/internal/domain"
	"github.com/aristath/quantfolio/internal/events"
	"github.com/aristath/quantfolio/internal/modules/universe"
)

func newTestScreener(t *testing.T, seeds []universe.Security) (*ScreenerService, *events.Bus) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE securities (
			ticker TEXT PRIMARY KEY,
			name TEXT,
			sector TEXT NOT NULL,
			market_cap REAL,
			roe REAL,
			profit_margin REAL,
			roic REAL,
			revenue_growth REAL,
			earnings_growth REAL,
			pe REAL,
			pb REAL,
			free_cashflow REAL,
			debt_equity REAL,
			current_ratio REAL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	require.NoError(t, err)

	log := zerolog.New(nil).Level(zerolog.Disabled)
	repo := universe.NewSecurityRepository(db, log)
	for _, sec := range seeds {
		require.NoError(t, repo.Upsert(sec))
	}

	cache := NewReferenceCache(filepath.Join(t.TempDir(), "references.msgpack"), log)
	bus := events.NewBus(log)
	svc := NewScreenerService(repo, cache, 2, nil, bus, log)
	svc.now = func() time.Time {
		return time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)
	}
	return svc, bus
}

// growthSeed builds a security whose growth metrics are fully populated.
func growthSeed(ticker string, sector string, revGrowth, earnGrowth, margin, roe float64) universe.Security {
	return universe.Security{
		Ticker: ticker,
		Sector: sector,
		Fundamentals: domain.Fundamentals{
			RevenueGrowth:  domain.Float64Ptr(revGrowth),
			EarningsGrowth: domain.Float64Ptr(earnGrowth),
			ProfitMargin:   domain.Float64Ptr(margin),
			ROE:            domain.Float64Ptr(roe),
		},
	}
}

func techGrowthSeeds() []universe.Security {
	return []universe.Security{
		growthSeed("AAA", "Technology", 0.50, 0.40, 0.30, 0.90),
		growthSeed("BBB", "Technology", 0.40, 0.30, 0.25, 0.60),
		growthSeed("CCC", "Technology", 0.30, 0.20, 0.20, 0.40),
		growthSeed("DDD", "Technology", 0.20, 0.10, 0.15, 0.30),
		growthSeed("EEE", "Technology", 0.10, 0.05, 0.10, 0.20),
	}
}

func TestScreenerService_Rank(t *testing.T) {
	svc, bus := newTestScreener(t, techGrowthSeeds())
	_, eventCh := bus.Subscribe()

	resp, err := svc.Rank(RankRequest{Style: "growth"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, "growth", resp.Style)
	assert.Equal(t, 5, resp.Scored)

	// Only AAA (80th percentile revenue growth) and BBB (60th) clear
	// the growth gate of 50; CCC sits at 40 and is gated out.
	require.Len(t, resp.Ranked, 2)
	assert.Equal(t, "AAA", resp.Ranked[0].Ticker)
	assert.Equal(t, "BBB", resp.Ranked[1].Ticker)
	assert.Greater(t, resp.Ranked[0].Composite, resp.Ranked[1].Composite)

	select {
	case event := <-eventCh:
		assert.Equal(t, events.ScreeningCompleted, event.Type)
		data, ok := event.Data.(*events.ScreeningCompletedData)
		require.True(t, ok)
		assert.Equal(t, resp.RequestID, data.RequestID)
		assert.Equal(t, 5, data.Scored)
		assert.Equal(t, 2, data.Ranked)
	case <-time.After(time.Second):
		t.Fatal("expected a screening_completed event")
	}
}

func TestScreenerService_Rank_UnknownStyle(t *testing.T) {
	svc, _ := newTestScreener(t, techGrowthSeeds())

	_, err := svc.Rank(RankRequest{Style: "momentum"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown style")
}

func TestScreenerService_Rank_EmptyUniverse(t *testing.T) {
	svc, _ := newTestScreener(t, nil)

	_, err := svc.Rank(RankRequest{Style: "growth"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "universe is empty")
}

func TestScreenerService_Rank_ExcludeFlagged(t *testing.T) {
	seeds := techGrowthSeeds()
	flagged := growthSeed("BAD", "Technology", 0.60, 0.50, 0.40, 0.95)
	flagged.Fundamentals.PB = domain.Float64Ptr(500)
	flagged.Sector = "Industrials"
	seeds = append(seeds, flagged)

	svc, _ := newTestScreener(t, seeds)

	resp, err := svc.Rank(RankRequest{Style: "growth", ExcludeFlagged: true})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Scored, "flagged security is dropped before ranking")
	for _, row := range resp.Ranked {
		assert.NotEqual(t, "BAD", row.Ticker)
	}
}

func TestScreenerService_Rank_WritesReferenceSnapshot(t *testing.T) {
	svc, _ := newTestScreener(t, techGrowthSeeds())

	_, err := svc.Rank(RankRequest{Style: "growth"})
	require.NoError(t, err)

	_, statErr := os.Stat(svc.cache.path)
	assert.NoError(t, statErr, "reference snapshot should be written after the first run")

	// Second run loads today's snapshot instead of rebuilding
	_, err = svc.Rank(RankRequest{Style: "value"})
	require.NoError(t, err)
}

func TestScreenerService_SectorBalanced(t *testing.T) {
	seeds := techGrowthSeeds()
	seeds = append(seeds,
		growthSeed("HHH", "Healthcare", 0.50, 0.40, 0.30, 0.90),
		growthSeed("III", "Healthcare", 0.45, 0.35, 0.28, 0.80),
		growthSeed("JJJ", "Healthcare", 0.40, 0.30, 0.26, 0.70),
	)
	svc, _ := newTestScreener(t, seeds)

	resp, err := svc.SectorBalanced()
	require.NoError(t, err)

	assert.Equal(t, StyleBalanced, resp.Style)
	require.NotEmpty(t, resp.Ranked)
	for _, row := range resp.Ranked {
		assert.Contains(t, []string{"Technology", "Healthcare"}, row.Sector)
	}

	perSector := make(map[string]int)
	for _, row := range resp.Ranked {
		perSector[row.Sector]++
	}
	for sector, n := range perSector {
		assert.LessOrEqual(t, n, 2, "sector %s exceeds the two-per-sector cap", sector)
	}
}

func TestScreenerService_Styles(t *testing.T) {
	svc, _ := newTestScreener(t, techGrowthSeeds())

	styles := svc.Styles()
	require.Len(t, styles, 4)
	assert.Equal(t, "growth", styles[0].Name)
	assert.Equal(t, "balanced", styles[3].Name)
}
