package clients

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/agencydesk/internal/common"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cols = []string{"id", "name", "email", "phone", "company", "address", "status", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func ptr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+clients`).
		WithArgs("c-1", "Acme", "hi@acme.io", ptr("555"), nil, nil, "active").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	got, err := repo.Create(context.Background(), &models.Client{
		ID: "c-1", Name: "Acme", Email: "hi@acme.io", Phone: ptr("555"), Status: "active",
	})
	require.NoError(t, err)
	assert.Equal(t, now, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT .* FROM clients ORDER BY created_at`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("c-1", "Acme", "hi@acme.io", nil, "Acme Inc", nil, "active", time.Now()).
			AddRow("c-2", "Globex", "x@globex.io", "555", nil, nil, "inactive", time.Now()))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Nil(t, got[0].Phone)
	require.NotNil(t, got[0].Company)
	assert.Equal(t, "Acme Inc", *got[0].Company)
	assert.Equal(t, "inactive", got[1].Status)
}

func TestGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT .* FROM clients WHERE id = \$1`).WithArgs("c-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("c-1", "Acme", "hi@acme.io", nil, nil, nil, "active", time.Now()))
	mock.ExpectQuery(`SELECT .* FROM clients WHERE id = \$1`).WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	c, err := repo.Get(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", c.Name)

	_, err = repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^UPDATE\s+clients\s+SET`).
		WithArgs("c-1", "Acme 2", "hi@acme.io", nil, nil, nil, "inactive").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("c-1", "Acme 2", "hi@acme.io", nil, nil, nil, "inactive", time.Now()))
	mock.ExpectQuery(`(?s)^UPDATE\s+clients\s+SET`).
		WillReturnError(sql.ErrNoRows)

	c, err := repo.Update(context.Background(), &models.Client{ID: "c-1", Name: "Acme 2", Email: "hi@acme.io", Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, "Acme 2", c.Name)

	_, err = repo.Update(context.Background(), &models.Client{ID: "missing"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`DELETE FROM clients WHERE id = \$1`).WithArgs("c-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM clients WHERE id = \$1`).WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM clients WHERE id = \$1`).WithArgs("boom").
		WillReturnError(errors.New("db down"))

	require.NoError(t, repo.Delete(context.Background(), "c-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), common.ErrorNotFound)
	assert.ErrorContains(t, repo.Delete(context.Background(), "boom"), "db error: db down")
}

func TestCount(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM clients`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
