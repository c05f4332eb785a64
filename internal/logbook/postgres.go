package logbook

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/fyrsmithlabs/luna/internal/mood"
)

// DefaultTable is the table PostgresStore uses when none is configured.
const DefaultTable = "luna_logs"

// PostgresStore keeps entries in a PostgreSQL table.
type PostgresStore struct {
	db    *sql.DB
	table string
}

// OpenPostgres connects to dsn, verifies the connection and creates the log table if it
// does not exist. An empty table name selects DefaultTable.
func OpenPostgres(ctx context.Context, dsn, table string) (*PostgresStore, error) {
	if table == "" {
		table = DefaultTable
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	s := &PostgresStore{db: db, table: pq.QuoteIdentifier(table)}
	if err := s.migrate(ctx, table); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context, rawTable string) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ` + s.table + ` (
			id                UUID PRIMARY KEY,
			user_id           TEXT NOT NULL,
			log_date          DATE NOT NULL,
			mood              TEXT NOT NULL,
			sleep_hours       DOUBLE PRECISION NOT NULL,
			stress_level      SMALLINT NOT NULL,
			cramp_intensity   SMALLINT NOT NULL,
			physical_activity TEXT NOT NULL,
			pcos              BOOLEAN NOT NULL DEFAULT FALSE,
			thyroid           BOOLEAN NOT NULL DEFAULT FALSE,
			notes             TEXT NOT NULL DEFAULT '',
			custom_tags       TEXT NOT NULL DEFAULT '',
			breakfast         TEXT NOT NULL DEFAULT '',
			lunch             TEXT NOT NULL DEFAULT '',
			dinner            TEXT NOT NULL DEFAULT '',
			created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS ` + pq.QuoteIdentifier(rawTable+"_user_date_idx") +
			` ON ` + s.table + ` (user_id, log_date)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Query implements Store.
func (s *PostgresStore) Query(ctx context.Context, userID string, r DateRange) ([]Entry, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	query := `SELECT id, user_id, log_date, mood, sleep_hours, stress_level, cramp_intensity,
			physical_activity, pcos, thyroid, notes, custom_tags, breakfast, lunch, dinner
		FROM ` + s.table + `
		WHERE user_id = $1
			AND ($2::date IS NULL OR log_date >= $2::date)
			AND ($3::date IS NULL OR log_date <= $3::date)
		ORDER BY log_date, created_at`

	rows, err := s.db.QueryContext(ctx, query, userID, nullDate(r.From), nullDate(r.To))
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var (
			e        Entry
			rawMood  string
			activity string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &rawMood, &e.SleepHours, &e.StressLevel,
			&e.CrampIntensity, &activity, &e.PCOS, &e.Thyroid, &e.Notes, &e.Tags,
			&e.Breakfast, &e.Lunch, &e.Dinner); err != nil {
			return nil, fmt.Errorf("scan log row: %w", err)
		}
		if e.Mood, err = mood.Parse(rawMood); err != nil {
			return nil, fmt.Errorf("log %s: %w", e.ID, err)
		}
		e.Activity = Activity(activity)
		e.Date = dateOnly(e.Date)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate logs: %w", err)
	}
	return out, nil
}

// Add implements Store.
func (s *PostgresStore) Add(ctx context.Context, e Entry) (Entry, error) {
	e, err := prepare(e)
	if err != nil {
		return Entry{}, err
	}

	// PostgreSQL text columns reject NUL bytes.
	e.Notes = removeNullBytes(e.Notes)
	e.Tags = removeNullBytes(e.Tags)

	_, err = s.db.ExecContext(ctx, `INSERT INTO `+s.table+` (
			id, user_id, log_date, mood, sleep_hours, stress_level, cramp_intensity,
			physical_activity, pcos, thyroid, notes, custom_tags, breakfast, lunch, dinner
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		e.ID, e.UserID, e.Date, string(e.Mood), e.SleepHours, e.StressLevel, e.CrampIntensity,
		string(e.Activity), e.PCOS, e.Thyroid, e.Notes, e.Tags,
		removeNullBytes(e.Breakfast), removeNullBytes(e.Lunch), removeNullBytes(e.Dinner),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return Entry{}, fmt.Errorf("%w: duplicate id %s", ErrInvalidEntry, e.ID)
		}
		return Entry{}, fmt.Errorf("insert log: %w", err)
	}
	return e, nil
}

// Close implements Store.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func nullDate(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: dateOnly(t), Valid: true}
}

func removeNullBytes(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}
