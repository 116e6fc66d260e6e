package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lostfound/internal/registry"
)

// PostgresStore persists reports in PostgreSQL. Id density relies on the
// registry service serializing Create calls; BIGSERIAL then hands out
// consecutive values because no insert ever rolls back after allocation.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the reports table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS reports (
			id                BIGSERIAL PRIMARY KEY,
			reporter_identity TEXT        NOT NULL,
			kind              TEXT        NOT NULL,
			category          TEXT        NOT NULL,
			description       TEXT        NOT NULL DEFAULT '',
			media_reference   TEXT        NOT NULL DEFAULT '',
			feature_digest    BYTEA       NOT NULL,
			confidence        INTEGER     NOT NULL,
			location          TEXT        NOT NULL DEFAULT '',
			created_at        TIMESTAMPTZ NOT NULL,
			status            TEXT        NOT NULL,
			matched_with      BIGINT      NOT NULL DEFAULT 0
		)
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate reports table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, report registry.Report) (int64, error) {
	const query = `
		INSERT INTO reports (
			reporter_identity, kind, category, description, media_reference,
			feature_digest, confidence, location, created_at, status, matched_with
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	var id int64
	err := s.db.QueryRowContext(ctx, query,
		report.ReporterIdentity,
		string(report.Kind),
		report.Category,
		report.Description,
		report.MediaReference,
		report.FeatureDigest[:],
		report.Confidence,
		report.Location,
		report.CreatedAt,
		string(report.Status),
		report.MatchedWith,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (registry.Report, error) {
	const query = `
		SELECT id, reporter_identity, kind, category, description, media_reference,
		       feature_digest, confidence, location, created_at, status, matched_with
		FROM reports
		WHERE id = $1
	`
	report, err := scanReport(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return registry.Report{}, ErrNotFound
		}
		return registry.Report{}, fmt.Errorf("query report: %w", err)
	}
	return report, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]registry.Report, error) {
	const query = `
		SELECT id, reporter_identity, kind, category, description, media_reference,
		       feature_digest, confidence, location, created_at, status, matched_with
		FROM reports
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []registry.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return count, nil
}

// SetMatched marks both sides of a pair Matched inside one transaction.
func (s *PostgresStore) SetMatched(ctx context.Context, lostID, foundID int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := updatePair(ctx, tx, lostID, string(registry.StatusMatched), foundID); err != nil {
			return err
		}
		return updatePair(ctx, tx, foundID, string(registry.StatusMatched), lostID)
	})
}

// SetReturned settles a pair inside one transaction: lost side Claimed, found
// side Closed. MatchedWith is left intact for auditability.
func (s *PostgresStore) SetReturned(ctx context.Context, lostID, foundID int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := updateStatus(ctx, tx, lostID, string(registry.StatusClaimed)); err != nil {
			return err
		}
		return updateStatus(ctx, tx, foundID, string(registry.StatusClosed))
	})
}

func (s *PostgresStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func updatePair(ctx context.Context, tx *sql.Tx, id int64, status string, matchedWith int64) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE reports SET status = $1, matched_with = $2 WHERE id = $3`,
		status, matchedWith, id,
	)
	if err != nil {
		return fmt.Errorf("update report %d: %w", id, err)
	}
	return requireOneRow(result, id)
}

func updateStatus(ctx context.Context, tx *sql.Tx, id int64, status string) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE reports SET status = $1 WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("update report %d: %w", id, err)
	}
	return requireOneRow(result, id)
}

func requireOneRow(result sql.Result, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for report %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (registry.Report, error) {
	var (
		report registry.Report
		kind   string
		status string
		digest []byte
	)
	err := row.Scan(
		&report.ID,
		&report.ReporterIdentity,
		&kind,
		&report.Category,
		&report.Description,
		&report.MediaReference,
		&digest,
		&report.Confidence,
		&report.Location,
		&report.CreatedAt,
		&status,
		&report.MatchedWith,
	)
	if err != nil {
		return registry.Report{}, err
	}
	report.Kind = registry.Kind(kind)
	report.Status = registry.Status(status)
	copy(report.FeatureDigest[:], digest)
	return report, nil
}
