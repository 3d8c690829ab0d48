package ddlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresRepository implements Repository against PostgreSQL, the
// way internal/vocabulary.PostgresRepository does for DSL vocabulary
// records.
type PostgresRepository struct {
	db *sqlx.DB
}

// newPostgresRepository opens a connection pool and constructs a PostgresRepository.
func newPostgresRepository(connectionString string) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ddlstore database: %w", err)
	}
	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepository wraps an already-open *sqlx.DB, for callers
// that manage their own connection pool (e.g. tests against sqlmock).
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// RecordSession inserts one parse-session diagnostic row.
func (r *PostgresRepository) RecordSession(ctx context.Context, s Session) error {
	const query = `
		INSERT INTO openddl.parse_sessions
			(session_id, file_name, success, node_count, error_count, first_error, parsed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.FileName, s.Success, s.NodeCount, s.ErrorCount, s.FirstError, s.ParsedAt)
	if err != nil {
		return fmt.Errorf("failed to record parse session: %w", err)
	}
	return nil
}

// GetSession retrieves a single parse-session diagnostic row by ID.
func (r *PostgresRepository) GetSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	const query = `
		SELECT session_id, file_name, success, node_count, error_count, first_error, parsed_at
		FROM openddl.parse_sessions
		WHERE session_id = $1`

	var s Session
	err := r.db.GetContext(ctx, &s, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get parse session %s: %w", id, err)
	}
	return &s, nil
}

// ListSessions retrieves all recorded parse sessions, most recent first.
func (r *PostgresRepository) ListSessions(ctx context.Context) ([]Session, error) {
	const query = `
		SELECT session_id, file_name, success, node_count, error_count, first_error, parsed_at
		FROM openddl.parse_sessions
		ORDER BY parsed_at DESC`

	var sessions []Session
	if err := r.db.SelectContext(ctx, &sessions, query); err != nil {
		return nil, fmt.Errorf("failed to list parse sessions: %w", err)
	}
	return sessions, nil
}
