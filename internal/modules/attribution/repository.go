package attribution

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/quantfolio/internal/database"
)

// Repository persists attribution effects in analytics.db. Each
// (asof_date, lookback_days) run holds one full effect set, replaced
// wholesale on recompute.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new attribution repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "attribution").Logger(),
	}
}

// ReplaceForRun swaps the effect set for one (asof_date, lookback_days)
// key in a single transaction.
func (r *Repository) ReplaceForRun(asOfDate string, lookbackDays int, rows []EffectRow) error {
	if asOfDate == "" {
		return fmt.Errorf("asof_date is required")
	}

	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(
			"DELETE FROM attribution_effects WHERE asof_date = ? AND lookback_days = ?",
			asOfDate, lookbackDays,
		); err != nil {
			return fmt.Errorf("failed to delete existing effects: %w", err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO attribution_effects (
				asof_date, attribution_type, sector,
				allocation_effect, selection_effect, interaction_effect,
				portfolio_weight, benchmark_weight,
				portfolio_return, benchmark_return, total_benchmark_return,
				lookback_days, run_id
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, row := range rows {
			if _, err := stmt.Exec(
				asOfDate,
				row.AttributionType,
				row.Sector,
				row.AllocationEffect,
				row.SelectionEffect,
				row.InteractionEffect,
				row.PortfolioWeight,
				row.BenchmarkWeight,
				row.PortfolioReturn,
				row.BenchmarkReturn,
				row.TotalBenchmarkReturn,
				lookbackDays,
				nullString(row.RunID),
			); err != nil {
				return fmt.Errorf("failed to insert effect %s/%s: %w", row.AttributionType, row.Sector, err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.log.Info().
		Str("asof_date", asOfDate).
		Int("lookback_days", lookbackDays).
		Int("rows", len(rows)).
		Msg("Attribution effects replaced")

	return nil
}

// GetByDate loads the stored effect set for one (asof_date,
// lookback_days) key, grouped by scope then sector.
func (r *Repository) GetByDate(asOfDate string, lookbackDays int) ([]EffectRow, error) {
	rows, err := r.db.Query(`
		SELECT asof_date, attribution_type, sector,
		       allocation_effect, selection_effect, interaction_effect,
		       portfolio_weight, benchmark_weight,
		       portfolio_return, benchmark_return, total_benchmark_return,
		       lookback_days, run_id
		FROM attribution_effects
		WHERE asof_date = ? AND lookback_days = ?
		ORDER BY attribution_type, sector
	`, asOfDate, lookbackDays)
	if err != nil {
		return nil, fmt.Errorf("failed to query attribution effects: %w", err)
	}
	defer rows.Close()

	var effects []EffectRow
	for rows.Next() {
		row, err := scanEffect(rows)
		if err != nil {
			return nil, err
		}
		effects = append(effects, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attribution effects: %w", err)
	}

	return effects, nil
}

// LatestDate returns the most recent as-of date stored for a lookback
// window, or "" when none exist.
func (r *Repository) LatestDate(lookbackDays int) (string, error) {
	var date sql.NullString
	err := r.db.QueryRow(
		"SELECT MAX(asof_date) FROM attribution_effects WHERE lookback_days = ?",
		lookbackDays,
	).Scan(&date)
	if err != nil {
		return "", fmt.Errorf("failed to query latest attribution date: %w", err)
	}
	if !date.Valid {
		return "", nil
	}
	return date.String, nil
}

func scanEffect(rows *sql.Rows) (EffectRow, error) {
	var row EffectRow
	var runID sql.NullString

	err := rows.Scan(
		&row.AsOfDate,
		&row.AttributionType,
		&row.Sector,
		&row.AllocationEffect,
		&row.SelectionEffect,
		&row.InteractionEffect,
		&row.PortfolioWeight,
		&row.BenchmarkWeight,
		&row.PortfolioReturn,
		&row.BenchmarkReturn,
		&row.TotalBenchmarkReturn,
		&row.LookbackDays,
		&runID,
	)
	if err != nil {
		return EffectRow{}, fmt.Errorf("failed to scan attribution effect: %w", err)
	}

	if runID.Valid {
		row.RunID = runID.String
	}

	return row, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
