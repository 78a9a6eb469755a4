package page

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

func newMock(t *testing.T, driver string) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, driver), mock
}

func TestBySiteSlugNormalizes(t *testing.T) {
	db, mock := newMock(t, "mysql")
	now := time.Now().UTC()
	mock.ExpectQuery(`FROM\s+pages\s+WHERE\s+site_id = \? AND slug = \?`).
		WithArgs("s1", "/about").
		WillReturnRows(sqlmock.NewRows([]string{"id", "site_id", "slug", "title", "body", "created_at", "updated_at"}).
			AddRow("p1", "s1", "/about", "About", EmptyBody, now, now))

	rec, err := BySiteSlug(context.Background(), db, "s1", "about/")
	require.NoError(t, err)
	assert.Equal(t, "p1", rec.ID)
	assert.Equal(t, EmptyBody, rec.Body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPlaceholders(t *testing.T) {
	db, mock := newMock(t, "postgres")
	mock.ExpectExec(`UPDATE pages\s+SET\s+body = \$1, updated_at = \$2\s+WHERE\s+id = \$3`).
		WithArgs(`{"components":[]}`, sqlmock.AnyArg(), "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, SaveBody(context.Background(), db, "p1", EmptyBody, time.Now()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveBodyMissingRow(t *testing.T) {
	db, mock := newMock(t, "mysql")
	mock.ExpectExec(`UPDATE pages`).WillReturnResult(sqlmock.NewResult(0, 0))
	err := SaveBody(context.Background(), db, "ghost", EmptyBody, time.Now())
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestInsertDefaultsBody(t *testing.T) {
	db, mock := newMock(t, "mysql")
	now := time.Now().UTC()
	mock.ExpectExec(`INSERT INTO pages`).
		WithArgs("p1", "s1", "/", "Home", EmptyBody, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := &Record{ID: "p1", SiteID: "s1", Slug: "", Title: "Home", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, Insert(context.Background(), db, rec))
	assert.Equal(t, EmptyBody, rec.Body)
	assert.NoError(t, mock.ExpectationsWereMet())
}
