package ddlstore

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func newMockSqlxDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestRecordSession(t *testing.T) {
	db, mock := newMockSqlxDB(t)
	repo := NewPostgresRepository(db)
	ctx := context.Background()

	s := Session{
		ID:         uuid.New(),
		FileName:   "scene.oddl",
		Success:    true,
		NodeCount:  12,
		ErrorCount: 0,
		ParsedAt:   time.Now(),
	}

	mock.ExpectExec(`INSERT INTO openddl.parse_sessions`).
		WithArgs(s.ID, s.FileName, s.Success, s.NodeCount, s.ErrorCount, s.FirstError, s.ParsedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.RecordSession(ctx, s); err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %s", err)
	}
}

func TestGetSession_NotFound(t *testing.T) {
	db, mock := newMockSqlxDB(t)
	repo := NewPostgresRepository(db)
	ctx := context.Background()
	id := uuid.New()

	mock.ExpectQuery(`SELECT session_id, file_name, success, node_count, error_count, first_error, parsed_at`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"session_id", "file_name", "success", "node_count", "error_count", "first_error", "parsed_at",
		}))

	s, err := repo.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if s != nil {
		t.Errorf("expected nil session, got %+v", s)
	}
}

func TestListSessions(t *testing.T) {
	db, mock := newMockSqlxDB(t)
	repo := NewPostgresRepository(db)
	ctx := context.Background()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"session_id", "file_name", "success", "node_count", "error_count", "first_error", "parsed_at",
	}).AddRow(uuid.New().String(), "a.oddl", true, 3, 0, "", now).
		AddRow(uuid.New().String(), "b.oddl", false, 1, 1, "IntegerRange at offset 9: ...", now)

	mock.ExpectQuery(`SELECT session_id, file_name, success, node_count, error_count, first_error, parsed_at`).
		WillReturnRows(rows)

	sessions, err := repo.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
}
