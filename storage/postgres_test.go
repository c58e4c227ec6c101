package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgres(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	log, _ := test.NewNullLogger()
	return NewPostgresStore(db, log), mock
}

func TestPostgresMigrate(t *testing.T) {
	s, mock := newMockPostgres(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_store").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGet(t *testing.T) {
	s, mock := newMockPostgres(t)
	mock.ExpectQuery("SELECT value FROM kv_store WHERE key=\\$1").
		WithArgs(ThemeKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("dark"))
	mock.ExpectQuery("SELECT value FROM kv_store WHERE key=\\$1").
		WithArgs(UserKey).
		WillReturnError(sql.ErrNoRows)

	v, ok, err := s.Get(context.Background(), ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	_, ok, err = s.Get(context.Background(), UserKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSetAndRemove(t *testing.T) {
	s, mock := newMockPostgres(t)
	mock.ExpectExec("INSERT INTO kv_store").WithArgs(CartKey, "{}").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM kv_store WHERE key=\\$1").WithArgs(CartKey).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Set(context.Background(), CartKey, "{}"))
	require.NoError(t, s.Remove(context.Background(), CartKey))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresApplyCommits(t *testing.T) {
	s, mock := newMockPostgres(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO kv_store").WithArgs(OrdersKey, "[]").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM kv_store WHERE key=\\$1").WithArgs(CartKey).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.Apply(context.Background(), []Mutation{SetMutation(OrdersKey, "[]"), RemoveCartMutation()})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresApplyRollsBackOnFailure(t *testing.T) {
	s, mock := newMockPostgres(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO kv_store").WithArgs(OrdersKey, "[]").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM kv_store WHERE key=\\$1").WithArgs(CartKey).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := s.Apply(context.Background(), []Mutation{SetMutation(OrdersKey, "[]"), RemoveCartMutation()})
	assert.ErrorContains(t, err, "disk full")
	require.NoError(t, mock.ExpectationsWereMet())
}
