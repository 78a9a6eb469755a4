// internal/site/repository_test.go
//
// Unit-tests for site query helpers using sqlmock.
package site

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "mysql"), mock
}

var cols = []string{"id", "owner_id", "title", "slug", "domain", "template_id",
	"is_published", "published_at", "created_at", "updated_at"}

func TestByID(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery(`FROM\s+sites\s+WHERE\s+id = \?`).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("s1", "u1", "Cafe", "cafe", "cafe-u1.example.com", "business", true, now, now, now))

	rec, err := ByID(context.Background(), db, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Cafe", rec.Title)
	assert.True(t, rec.IsPublished)
	require.NotNil(t, rec.PublishedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestByIDMissing(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM\s+sites`).WithArgs("nope").WillReturnError(sql.ErrNoRows)
	_, err := ByID(context.Background(), db, "nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCountAndOwner(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sites WHERE owner_id = \?`).
		WithArgs("u1").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))
	mock.ExpectQuery(`SELECT owner_id FROM sites WHERE id = \?`).
		WithArgs("s1").WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow("u1"))

	n, err := CountByOwner(context.Background(), db, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	owner, err := OwnerOf(context.Background(), db, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u1", owner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetPublished(t *testing.T) {
	db, mock := newMock(t)
	at := time.Now().UTC()
	mock.ExpectExec(`UPDATE sites\s+SET\s+is_published = \?, published_at = \?`).
		WithArgs(true, at, at, "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE sites\s+SET\s+is_published = \?, updated_at = \?`).
		WithArgs(false, at, "s2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, SetPublished(context.Background(), db, "s1", true, at))
	assert.ErrorIs(t, SetPublished(context.Background(), db, "s2", false, at), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	rec := &Record{ID: "s1", OwnerID: "u1", Title: "T", Slug: "t", Domain: "t.example.com",
		TemplateID: "blank", CreatedAt: now, UpdatedAt: now}
	mock.ExpectExec(`INSERT INTO sites`).
		WithArgs("s1", "u1", "T", "t", "t.example.com", "blank", false, nil, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, Insert(context.Background(), db, rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockOwner(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM sites WHERE owner_id = \? FOR UPDATE`).
		WithArgs("u1").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("s1"))
	mock.ExpectRollback()

	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, LockOwner(context.Background(), tx, "u1"))
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockOwnerSkipsSQLite(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := sqlx.NewDb(raw, "sqlite").Beginx()
	require.NoError(t, err)
	require.NoError(t, LockOwner(context.Background(), tx, "u1"))
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
