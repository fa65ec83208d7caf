package marketdata

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/rs/zerolog"
)

// HistoryDB provides read access to the historical price database.
// The file is produced by an external ingestion pipeline; this process
// opens it read-only and never writes to it.
type HistoryDB struct {
	db  *sql.DB
	log zerolog.Logger
}

// OpenHistoryDB opens the price history database in read-only mode.
func OpenHistoryDB(path string, log zerolog.Logger) (*HistoryDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	return NewHistoryDB(db, log), nil
}

// NewHistoryDB wraps an already-open connection.
func NewHistoryDB(db *sql.DB, log zerolog.Logger) *HistoryDB {
	return &HistoryDB{
		db:  db,
		log: log.With().Str("component", "history_db").Logger(),
	}
}

// Close closes the underlying connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

// DailyPrice represents one daily closing price point
type DailyPrice struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// DailyCloses fetches closing prices for a ticker up to and including
// asOfDate, oldest first. Adjusted closes are preferred when present.
func (h *HistoryDB) DailyCloses(ticker, asOfDate string) ([]DailyPrice, error) {
	asOfUnix, err := dateToUnix(asOfDate)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT date, close, adjusted_close
		FROM daily_prices
		WHERE ticker = ? AND date <= ?
		ORDER BY date ASC
	`

	rows, err := h.db.Query(query, ticker, asOfUnix)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily prices: %w", err)
	}
	defer rows.Close()

	var prices []DailyPrice
	for rows.Next() {
		var p DailyPrice
		var dateUnix sql.NullInt64
		var adjClose sql.NullFloat64

		err := rows.Scan(&dateUnix, &p.Close, &adjClose)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily price: %w", err)
		}

		if dateUnix.Valid {
			// Convert Unix timestamp to YYYY-MM-DD format
			t := time.Unix(dateUnix.Int64, 0).UTC()
			p.Date = t.Format("2006-01-02")
		}
		if adjClose.Valid && adjClose.Float64 > 0 {
			p.Close = adjClose.Float64
		}

		prices = append(prices, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily prices: %w", err)
	}

	return prices, nil
}

// Tickers lists every ticker present in the history database.
func (h *HistoryDB) Tickers() ([]string, error) {
	rows, err := h.db.Query("SELECT DISTINCT ticker FROM daily_prices ORDER BY ticker")
	if err != nil {
		return nil, fmt.Errorf("failed to query tickers: %w", err)
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var ticker string
		if err := rows.Scan(&ticker); err != nil {
			return nil, fmt.Errorf("failed to scan ticker: %w", err)
		}
		tickers = append(tickers, ticker)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickers: %w", err)
	}

	return tickers, nil
}

// LatestDate returns the most recent price date across all tickers.
// Returns empty string when the database holds no rows.
func (h *HistoryDB) LatestDate() (string, error) {
	var dateUnix sql.NullInt64
	err := h.db.QueryRow("SELECT MAX(date) FROM daily_prices").Scan(&dateUnix)
	if err != nil {
		return "", fmt.Errorf("failed to query latest date: %w", err)
	}

	if !dateUnix.Valid {
		return "", nil
	}

	return time.Unix(dateUnix.Int64, 0).UTC().Format("2006-01-02"), nil
}

// dateToUnix converts a YYYY-MM-DD string to a midnight-UTC Unix timestamp,
// matching the storage format of the ingestion pipeline.
func dateToUnix(date string) (int64, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.Unix(), nil
}
