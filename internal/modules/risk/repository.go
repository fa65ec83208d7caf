package risk

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/quantfolio/internal/database"
	"github.com/aristath/quantfolio/internal/utils"
)

// Repository persists risk metrics in analytics.db. Each as-of date
// holds exactly one metric set, replaced wholesale on recompute.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new risk metrics repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "risk_metrics").Logger(),
	}
}

// ReplaceForDate swaps the metric set for one as-of date in a single
// transaction, so readers never observe a partial run.
func (r *Repository) ReplaceForDate(asOfDate string, records []MetricRecord) error {
	if asOfDate == "" {
		return fmt.Errorf("asof_date is required")
	}

	measure := utils.MeasureDBQuery("risk_metrics_replace", r.log)

	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM risk_metrics WHERE asof_date = ?", asOfDate); err != nil {
			return fmt.Errorf("failed to delete existing metrics: %w", err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO risk_metrics (asof_date, metric_name, value, category, lookback_days, run_id)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, record := range records {
			if _, err := stmt.Exec(
				asOfDate,
				record.MetricName,
				record.Value,
				record.Category,
				nullInt64Ptr(record.LookbackDays),
				nullString(record.RunID),
			); err != nil {
				return fmt.Errorf("failed to insert metric %s: %w", record.MetricName, err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}
	measure(int64(len(records)))

	r.log.Info().
		Str("asof_date", asOfDate).
		Int("metrics", len(records)).
		Msg("Risk metrics replaced")

	return nil
}

// GetByDate loads the stored metric set for one as-of date in insert
// order.
func (r *Repository) GetByDate(asOfDate string) ([]MetricRecord, error) {
	rows, err := r.db.Query(`
		SELECT asof_date, metric_name, value, category, lookback_days, run_id
		FROM risk_metrics
		WHERE asof_date = ?
		ORDER BY id
	`, asOfDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query risk metrics: %w", err)
	}
	defer rows.Close()

	var records []MetricRecord
	for rows.Next() {
		record, err := scanMetric(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate risk metrics: %w", err)
	}

	return records, nil
}

// LatestDate returns the most recent as-of date with stored metrics,
// or "" when none exist.
func (r *Repository) LatestDate() (string, error) {
	var date sql.NullString
	err := r.db.QueryRow("SELECT MAX(asof_date) FROM risk_metrics").Scan(&date)
	if err != nil {
		return "", fmt.Errorf("failed to query latest metrics date: %w", err)
	}
	if !date.Valid {
		return "", nil
	}
	return date.String, nil
}

// Dates lists as-of dates with stored metrics, most recent first.
func (r *Repository) Dates(limit int) ([]string, error) {
	if limit <= 0 {
		limit = 30
	}

	rows, err := r.db.Query(`
		SELECT DISTINCT asof_date FROM risk_metrics
		ORDER BY asof_date DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query metric dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan metric date: %w", err)
		}
		dates = append(dates, date)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate metric dates: %w", err)
	}

	return dates, nil
}

func scanMetric(rows *sql.Rows) (MetricRecord, error) {
	var record MetricRecord
	var lookback sql.NullInt64
	var runID sql.NullString

	err := rows.Scan(
		&record.AsOfDate,
		&record.MetricName,
		&record.Value,
		&record.Category,
		&lookback,
		&runID,
	)
	if err != nil {
		return MetricRecord{}, fmt.Errorf("failed to scan risk metric: %w", err)
	}

	if lookback.Valid {
		v := int(lookback.Int64)
		record.LookbackDays = &v
	}
	if runID.Valid {
		record.RunID = runID.String
	}

	return record, nil
}

func nullInt64Ptr(v *int) interface{} {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
