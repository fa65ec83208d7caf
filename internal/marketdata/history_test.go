package marketdata

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedPrice is one row to insert into a test history database.
type seedPrice struct {
	ticker string
	date   string
	close  float64
	adj    *float64
}

// newTestHistoryDB writes seed rows into a temp database file and
// reopens it read-only, the same way production opens the real file.
func newTestHistoryDB(t *testing.T, seeds []seedPrice) *HistoryDB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "history.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)

	_, err = db.Exec(`
		CREATE TABLE daily_prices (
			ticker TEXT NOT NULL,
			date INTEGER NOT NULL,
			close REAL NOT NULL,
			adjusted_close REAL,
			PRIMARY KEY (ticker, date)
		)
	`)
	require.NoError(t, err)

	for _, s := range seeds {
		dateUnix, err := dateToUnix(s.date)
		require.NoError(t, err)

		var adj interface{}
		if s.adj != nil {
			adj = *s.adj
		}

		_, err = db.Exec(
			"INSERT INTO daily_prices (ticker, date, close, adjusted_close) VALUES (?, ?, ?, ?)",
			s.ticker, dateUnix, s.close, adj,
		)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	history, err := OpenHistoryDB(path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { history.Close() })

	return history
}

func TestDailyClosesOrdersAscendingAndFiltersByAsOf(t *testing.T) {
	history := newTestHistoryDB(t, []seedPrice{
		{ticker: "AAPL", date: "2025-01-06", close: 99},
		{ticker: "AAPL", date: "2025-01-02", close: 100},
		{ticker: "AAPL", date: "2025-01-03", close: 110},
		{ticker: "AAPL", date: "2025-01-07", close: 105},
		{ticker: "MSFT", date: "2025-01-02", close: 400},
	})

	prices, err := history.DailyCloses("AAPL", "2025-01-06")
	require.NoError(t, err)
	require.Len(t, prices, 3)

	assert.Equal(t, "2025-01-02", prices[0].Date)
	assert.Equal(t, "2025-01-03", prices[1].Date)
	assert.Equal(t, "2025-01-06", prices[2].Date)
	assert.Equal(t, 100.0, prices[0].Close)
	assert.Equal(t, 99.0, prices[2].Close)
}

func TestDailyClosesPrefersAdjustedClose(t *testing.T) {
	adj := 50.0
	history := newTestHistoryDB(t, []seedPrice{
		{ticker: "AAPL", date: "2025-01-02", close: 100, adj: &adj},
		{ticker: "AAPL", date: "2025-01-03", close: 110},
	})

	prices, err := history.DailyCloses("AAPL", "2025-01-03")
	require.NoError(t, err)
	require.Len(t, prices, 2)

	assert.Equal(t, 50.0, prices[0].Close)
	assert.Equal(t, 110.0, prices[1].Close)
}

func TestDailyClosesRejectsInvalidDate(t *testing.T) {
	history := newTestHistoryDB(t, nil)

	_, err := history.DailyCloses("AAPL", "01/02/2025")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

func TestTickersSortedDistinct(t *testing.T) {
	history := newTestHistoryDB(t, []seedPrice{
		{ticker: "MSFT", date: "2025-01-02", close: 400},
		{ticker: "AAPL", date: "2025-01-02", close: 100},
		{ticker: "AAPL", date: "2025-01-03", close: 110},
	})

	tickers, err := history.Tickers()
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, tickers)
}

func TestLatestDate(t *testing.T) {
	history := newTestHistoryDB(t, []seedPrice{
		{ticker: "AAPL", date: "2025-01-02", close: 100},
		{ticker: "MSFT", date: "2025-01-07", close: 400},
	})

	latest, err := history.LatestDate()
	require.NoError(t, err)
	assert.Equal(t, "2025-01-07", latest)
}

func TestLatestDateEmptyDatabase(t *testing.T) {
	history := newTestHistoryDB(t, nil)

	latest, err := history.LatestDate()
	require.NoError(t, err)
	assert.Empty(t, latest)
}
