package universe

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/quantfolio/internal/domain"
)

// securitiesColumns is the list of columns for the securities table.
// Used to avoid SELECT * which can break when schema changes.
const securitiesColumns = `ticker, name, sector, market_cap, roe, profit_margin, roic,
revenue_growth, earnings_growth, pe, pb, free_cashflow, debt_equity, current_ratio, updated_at`

// SecurityRepository handles screener universe database operations.
type SecurityRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSecurityRepository creates a new security repository.
func NewSecurityRepository(db *sql.DB, log zerolog.Logger) *SecurityRepository {
	return &SecurityRepository{
		db:  db,
		log: log.With().Str("repo", "security").Logger(),
	}
}

// GetByTicker returns a security by ticker, or nil when absent.
func (r *SecurityRepository) GetByTicker(ticker string) (*Security, error) {
	query := "SELECT " + securitiesColumns + " FROM securities WHERE ticker = ?"

	rows, err := r.db.Query(query, strings.ToUpper(strings.TrimSpace(ticker)))
	if err != nil {
		return nil, fmt.Errorf("failed to query security by ticker: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil // Security not found
	}

	security, err := r.scanSecurity(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan security: %w", err)
	}

	return &security, nil
}

// GetAll returns the whole universe ordered by ticker.
func (r *SecurityRepository) GetAll() ([]Security, error) {
	query := "SELECT " + securitiesColumns + " FROM securities ORDER BY ticker"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query securities: %w", err)
	}
	defer rows.Close()

	var securities []Security
	for rows.Next() {
		security, err := r.scanSecurity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan security: %w", err)
		}
		securities = append(securities, security)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating securities: %w", err)
	}

	return securities, nil
}

// GetBySector returns all securities in one sector ordered by ticker.
func (r *SecurityRepository) GetBySector(sector string) ([]Security, error) {
	query := "SELECT " + securitiesColumns + " FROM securities WHERE sector = ? ORDER BY ticker"

	rows, err := r.db.Query(query, sector)
	if err != nil {
		return nil, fmt.Errorf("failed to query securities by sector: %w", err)
	}
	defer rows.Close()

	var securities []Security
	for rows.Next() {
		security, err := r.scanSecurity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan security: %w", err)
		}
		securities = append(securities, security)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating securities: %w", err)
	}

	return securities, nil
}

// GetSectors returns the distinct sectors present in the universe, sorted.
func (r *SecurityRepository) GetSectors() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT sector FROM securities ORDER BY sector")
	if err != nil {
		return nil, fmt.Errorf("failed to query sectors: %w", err)
	}
	defer rows.Close()

	var sectors []string
	for rows.Next() {
		var sector string
		if err := rows.Scan(&sector); err != nil {
			return nil, fmt.Errorf("failed to scan sector: %w", err)
		}
		sectors = append(sectors, sector)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sectors: %w", err)
	}

	return sectors, nil
}

// GetCount returns the total number of securities in the universe.
func (r *SecurityRepository) GetCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) as count FROM securities").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get security count: %w", err)
	}

	return count, nil
}

// Upsert inserts or updates a security keyed by ticker.
func (r *SecurityRepository) Upsert(security Security) error {
	security.Ticker = strings.ToUpper(strings.TrimSpace(security.Ticker))
	if security.Ticker == "" {
		return fmt.Errorf("ticker is required for security upsert")
	}
	if security.Sector == "" {
		return fmt.Errorf("sector is required for security upsert")
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT OR REPLACE INTO securities
		(ticker, name, sector, market_cap, roe, profit_margin, roic,
		 revenue_growth, earnings_growth, pe, pb, free_cashflow, debt_equity,
		 current_ratio, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
	`

	f := security.Fundamentals
	_, err = tx.Exec(query,
		security.Ticker,
		nullString(security.Name),
		security.Sector,
		nullFromPtr(f.MarketCap),
		nullFromPtr(f.ROE),
		nullFromPtr(f.ProfitMargin),
		nullFromPtr(f.ROIC),
		nullFromPtr(f.RevenueGrowth),
		nullFromPtr(f.EarningsGrowth),
		nullFromPtr(f.PE),
		nullFromPtr(f.PB),
		nullFromPtr(f.FreeCashflow),
		nullFromPtr(f.DebtEquity),
		nullFromPtr(f.CurrentRatio),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert security: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.log.Debug().Str("ticker", security.Ticker).Str("sector", security.Sector).Msg("Security upserted")
	return nil
}

// scanSecurity scans a database row into a Security struct.
func (r *SecurityRepository) scanSecurity(rows *sql.Rows) (Security, error) {
	var sec Security
	var name, updatedAt sql.NullString
	var marketCap, roe, profitMargin, roic sql.NullFloat64
	var revenueGrowth, earningsGrowth, pe, pb sql.NullFloat64
	var freeCashflow, debtEquity, currentRatio sql.NullFloat64

	err := rows.Scan(
		&sec.Ticker,
		&name,
		&sec.Sector,
		&marketCap,
		&roe,
		&profitMargin,
		&roic,
		&revenueGrowth,
		&earningsGrowth,
		&pe,
		&pb,
		&freeCashflow,
		&debtEquity,
		&currentRatio,
		&updatedAt,
	)
	if err != nil {
		return sec, err
	}

	if name.Valid {
		sec.Name = name.String
	}
	if updatedAt.Valid {
		sec.UpdatedAt = updatedAt.String
	}

	sec.Fundamentals = domain.Fundamentals{
		MarketCap:      ptrFromNull(marketCap),
		ROE:            ptrFromNull(roe),
		ProfitMargin:   ptrFromNull(profitMargin),
		ROIC:           ptrFromNull(roic),
		RevenueGrowth:  ptrFromNull(revenueGrowth),
		EarningsGrowth: ptrFromNull(earningsGrowth),
		PE:             ptrFromNull(pe),
		PB:             ptrFromNull(pb),
		FreeCashflow:   ptrFromNull(freeCashflow),
		DebtEquity:     ptrFromNull(debtEquity),
		CurrentRatio:   ptrFromNull(currentRatio),
	}

	sec.Ticker = strings.ToUpper(strings.TrimSpace(sec.Ticker))

	return sec, nil
}

// Helper functions for nullable types

func ptrFromNull(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func nullFromPtr(val *float64) sql.NullFloat64 {
	if val == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *val, Valid: true}
}

func nullString(val string) sql.NullString {
	if val == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: val, Valid: true}
}
