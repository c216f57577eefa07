package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CampusPulse/Compass/internal/scoring"
)

// PostgresLedger persists history in Postgres. See scripts/schema.sql
// for the expected table.
type PostgresLedger struct {
	pool *pgxpool.Pool
}

func NewPostgresLedger(ctx context.Context, databaseURL string) (*PostgresLedger, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresLedger{pool: pool}, nil
}

func (l *PostgresLedger) Close() error {
	l.pool.Close()
	return nil
}

// probability and tier are denormalized copies of the result JSON so
// filters and stats stay in SQL; reads reconstruct from the JSON.
const historyColumns = `id, student_ref, metrics, result, created_at`

func (l *PostgresLedger) Append(ctx context.Context, entry *HistoryEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	metricsJSON, _ := json.Marshal(entry.Metrics)
	resultJSON, _ := json.Marshal(entry.Result)
	var probability float64
	var tier scoring.RiskTier
	if entry.Result != nil {
		probability = entry.Result.Probability
		tier = entry.Result.Tier
	}

	_, err := l.pool.Exec(ctx, `
		INSERT INTO compass_predictions (id, student_ref, metrics, result, probability, tier, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.StudentRef, metricsJSON, resultJSON, probability, string(tier), entry.CreatedAt,
	)
	return err
}

func (l *PostgresLedger) Get(ctx context.Context, id uuid.UUID) (*HistoryEntry, error) {
	e := &HistoryEntry{}
	var metricsJSON, resultJSON []byte
	var studentRef sql.NullString
	err := l.pool.QueryRow(ctx, `
		SELECT `+historyColumns+`
		FROM compass_predictions WHERE id = $1`, id,
	).Scan(&e.ID, &studentRef, &metricsJSON, &resultJSON, &e.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if studentRef.Valid {
		e.StudentRef = studentRef.String
	}
	if metricsJSON != nil {
		_ = json.Unmarshal(metricsJSON, &e.Metrics)
	}
	if resultJSON != nil {
		_ = json.Unmarshal(resultJSON, &e.Result)
	}
	return e, nil
}

func (l *PostgresLedger) Query(ctx context.Context, filter HistoryFilter) ([]*HistoryEntry, error) {
	query := `SELECT ` + historyColumns + ` FROM compass_predictions WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.StudentRef != "" {
		n++
		query += fmt.Sprintf(" AND student_ref = $%d", n)
		args = append(args, filter.StudentRef)
	}
	if filter.Tier != nil {
		n++
		query += fmt.Sprintf(" AND tier = $%d", n)
		args = append(args, string(*filter.Tier))
	}
	if filter.Since != nil {
		n++
		query += fmt.Sprintf(" AND created_at >= $%d", n)
		args = append(args, *filter.Since)
	}
	if filter.Until != nil {
		n++
		query += fmt.Sprintf(" AND created_at <= $%d", n)
		args = append(args, *filter.Until)
	}

	query += " ORDER BY created_at ASC, seq ASC"

	if filter.Limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := l.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (l *PostgresLedger) Stats(ctx context.Context) (*LedgerStats, error) {
	stats := &LedgerStats{TierCounts: make(map[scoring.RiskTier]int)}
	var low, moderate, high, critical int
	err := l.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(AVG(probability), 0),
			COALESCE(PERCENTILE_CONT(0.5) WITHIN GROUP (ORDER BY probability), 0),
			COALESCE(STDDEV_POP(probability), 0),
			COALESCE(MIN(probability), 0),
			COALESCE(MAX(probability), 0),
			COALESCE(SUM(CASE WHEN tier = 'low' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN tier = 'moderate' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN tier = 'high' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN tier = 'critical' THEN 1 ELSE 0 END), 0)
		FROM compass_predictions`,
	).Scan(&stats.Count, &stats.Mean, &stats.Median, &stats.StdDev, &stats.Min, &stats.Max,
		&low, &moderate, &high, &critical)
	if err != nil {
		return nil, err
	}
	if low > 0 {
		stats.TierCounts[scoring.TierLow] = low
	}
	if moderate > 0 {
		stats.TierCounts[scoring.TierModerate] = moderate
	}
	if high > 0 {
		stats.TierCounts[scoring.TierHigh] = high
	}
	if critical > 0 {
		stats.TierCounts[scoring.TierCritical] = critical
	}
	return stats, nil
}

func scanEntries(rows pgx.Rows) ([]*HistoryEntry, error) {
	var entries []*HistoryEntry
	for rows.Next() {
		e := &HistoryEntry{}
		var metricsJSON, resultJSON []byte
		var studentRef sql.NullString
		if err := rows.Scan(&e.ID, &studentRef, &metricsJSON, &resultJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		if studentRef.Valid {
			e.StudentRef = studentRef.String
		}
		if metricsJSON != nil {
			_ = json.Unmarshal(metricsJSON, &e.Metrics)
		}
		if resultJSON != nil {
			_ = json.Unmarshal(resultJSON, &e.Result)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
