// Package ddlstore persists parse-session diagnostics for audit: one
// record per Parser.Parse() call, capturing whether it succeeded and
// basic tree/error counters. This is an optional consumer-side
// component — the ddl core itself never touches a database (spec.md
// §1: "the core consumes a byte buffer and a log sink") — wired here
// the way dsl-ob-poc/internal/datastore selects between a PostgreSQL
// and a mock backend behind one interface.
package ddlstore

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is one recorded parse attempt.
type Session struct {
	ID         uuid.UUID `db:"session_id"`
	FileName   string    `db:"file_name"`
	Success    bool      `db:"success"`
	NodeCount  int       `db:"node_count"`
	ErrorCount int       `db:"error_count"`
	FirstError string    `db:"first_error"`
	ParsedAt   time.Time `db:"parsed_at"`
}

// Repository persists and retrieves Sessions.
type Repository interface {
	RecordSession(ctx context.Context, s Session) error
	GetSession(ctx context.Context, id uuid.UUID) (*Session, error)
	ListSessions(ctx context.Context) ([]Session, error)
	Close() error
}

// Type selects a Repository backend.
type Type string

const (
	// PostgreSQLRepository persists sessions to Postgres via sqlx/pq.
	PostgreSQLRepository Type = "postgresql"
	// MockRepository keeps sessions in memory; used by default and by tests.
	MockRepository Type = "mock"
)

// Config configures repository construction.
type Config struct {
	Type             Type
	ConnectionString string
}

// UnsupportedRepositoryTypeError is returned when an unknown Type is requested.
type UnsupportedRepositoryTypeError struct {
	Type Type
}

func (e *UnsupportedRepositoryTypeError) Error() string {
	return "unsupported ddlstore repository type: " + string(e.Type)
}

// New constructs a Repository per cfg.
func New(cfg Config) (Repository, error) {
	switch cfg.Type {
	case PostgreSQLRepository:
		return newPostgresRepository(cfg.ConnectionString)
	case MockRepository, "":
		return NewMockRepository(), nil
	default:
		return nil, &UnsupportedRepositoryTypeError{Type: cfg.Type}
	}
}
