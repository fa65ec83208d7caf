package portfolio

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/quantfolio/internal/domain"
)

// PositionRepository handles position database operations.
type PositionRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewPositionRepository creates a new position repository.
func NewPositionRepository(db *sql.DB, log zerolog.Logger) *PositionRepository {
	return &PositionRepository{
		db:  db,
		log: log.With().Str("repo", "position").Logger(),
	}
}

// GetAll returns all positions ordered by ticker.
func (r *PositionRepository) GetAll() ([]Position, error) {
	query := `SELECT ticker, sector, market_value, duration, updated_at
		FROM positions ORDER BY ticker`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var positions []Position
	for rows.Next() {
		pos, err := r.scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, pos)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}

	return positions, nil
}

// GetByTicker returns a position by ticker, or nil when absent.
func (r *PositionRepository) GetByTicker(ticker string) (*Position, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	query := `SELECT ticker, sector, market_value, duration, updated_at
		FROM positions WHERE ticker = ?`

	rows, err := r.db.Query(query, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to query position by ticker: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil // Position not found
	}

	pos, err := r.scanPosition(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan position: %w", err)
	}

	return &pos, nil
}

// GetCount returns the total number of positions.
func (r *PositionRepository) GetCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) as count FROM positions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get position count: %w", err)
	}

	return count, nil
}

// GetTotalValue returns the total portfolio market value.
func (r *PositionRepository) GetTotalValue() (float64, error) {
	var total float64
	err := r.db.QueryRow("SELECT COALESCE(SUM(market_value), 0) as total FROM positions").Scan(&total)
	if err != nil {
		return 0.0, fmt.Errorf("failed to get total value: %w", err)
	}

	return total, nil
}

// Snapshot assembles the current holdings as of the given date.
func (r *PositionRepository) Snapshot(asOfDate string) (*domain.HoldingsSnapshot, error) {
	positions, err := r.GetAll()
	if err != nil {
		return nil, err
	}

	holdings := make([]domain.Holding, 0, len(positions))
	for _, pos := range positions {
		holdings = append(holdings, pos.Holding())
	}

	return &domain.HoldingsSnapshot{AsOfDate: asOfDate, Holdings: holdings}, nil
}

// Upsert inserts or updates a position keyed by ticker.
func (r *PositionRepository) Upsert(position Position) error {
	position.Ticker = strings.ToUpper(strings.TrimSpace(position.Ticker))
	if position.Ticker == "" {
		return fmt.Errorf("ticker is required for position upsert")
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT OR REPLACE INTO positions
		(ticker, sector, market_value, duration, updated_at)
		VALUES (?, ?, ?, ?, datetime('now'))
	`

	_, err = tx.Exec(query,
		position.Ticker,
		position.Sector,
		position.MarketValue,
		nullFloat64Ptr(position.Duration),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert position: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.log.Info().Str("ticker", position.Ticker).Str("sector", position.Sector).Msg("Position upserted")
	return nil
}

// Delete deletes a position by ticker.
func (r *PositionRepository) Delete(ticker string) error {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec("DELETE FROM positions WHERE ticker = ?", ticker)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	r.log.Info().Str("ticker", ticker).Int64("rows_affected", rowsAffected).Msg("Position deleted")
	return nil
}

// ReplaceAll swaps the entire positions table in one transaction.
// Used by the holdings sync so readers never observe a partial book.
func (r *PositionRepository) ReplaceAll(positions []Position) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM positions"); err != nil {
		return fmt.Errorf("failed to clear positions: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO positions (ticker, sector, market_value, duration, updated_at)
		VALUES (?, ?, ?, ?, datetime('now'))
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, position := range positions {
		ticker := strings.ToUpper(strings.TrimSpace(position.Ticker))
		if ticker == "" {
			return fmt.Errorf("ticker is required for position replace")
		}

		_, err = stmt.Exec(ticker, position.Sector, position.MarketValue, nullFloat64Ptr(position.Duration))
		if err != nil {
			return fmt.Errorf("failed to insert position %s: %w", ticker, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.log.Info().Int("count", len(positions)).Msg("Positions replaced")
	return nil
}

// scanPosition scans a database row into a Position struct.
func (r *PositionRepository) scanPosition(rows *sql.Rows) (Position, error) {
	var pos Position
	var duration sql.NullFloat64
	var updatedAt sql.NullString

	err := rows.Scan(
		&pos.Ticker,
		&pos.Sector,
		&pos.MarketValue,
		&duration,
		&updatedAt,
	)
	if err != nil {
		return pos, err
	}

	if duration.Valid {
		d := duration.Float64
		pos.Duration = &d
	}
	if updatedAt.Valid {
		pos.UpdatedAt = updatedAt.String
	}

	pos.Ticker = strings.ToUpper(strings.TrimSpace(pos.Ticker))

	return pos, nil
}

func nullFloat64Ptr(val *float64) sql.NullFloat64 {
	if val == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *val, Valid: true}
}
