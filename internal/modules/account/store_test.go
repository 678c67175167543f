package account

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return NewStore(sqlx.NewDb(raw, "sqlmock")), mock
}

func TestStore_Insert(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(`INSERT INTO users \(username, password\) VALUES \(\$1, \$2\)\s+ON CONFLICT \(username\) DO NOTHING`).
		WithArgs("alice", "pw1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("alice", "pw2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Insert(context.Background(), Account{Username: "alice", Password: "pw1"}))
	err := s.Insert(context.Background(), Account{Username: "alice", Password: "pw2"})
	assert.ErrorIs(t, err, errAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Find(t *testing.T) {
	s, mock := newMockStore(t)
	q := regexp.QuoteMeta(`SELECT username, password FROM users WHERE username = $1 AND password = $2`)
	mock.ExpectQuery(q).WithArgs("alice", "pw1").
		WillReturnRows(sqlmock.NewRows([]string{"username", "password"}).AddRow("alice", "pw1"))
	mock.ExpectQuery(q).WithArgs("alice", "bad").WillReturnError(sql.ErrNoRows)

	a, err := s.Find(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, &Account{Username: "alice", Password: "pw1"}, a)

	_, err = s.Find(context.Background(), "alice", "bad")
	assert.ErrorIs(t, err, errNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Exists(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := s.Exists(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
