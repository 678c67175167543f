package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxi/internal/infra"
	"taxi/internal/modules/account"
	"taxi/internal/modules/dispatch"
	"taxi/internal/modules/pricing"
	"taxi/internal/types"
)

var bookingColumns = []string{"id", "username", "name", "phone", "email", "pickup", "drop", "fare", "timestamp", "driver"}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "sqlmock"), mock
}

func TestStore_Insert(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewStore(db)
	created := time.Date(2026, 3, 14, 9, 30, 15, 0, time.Local)

	mock.ExpectQuery(`INSERT INTO bookings \(username, name, phone, email, pickup, "drop", fare, "timestamp", driver\)`).
		WithArgs("alice", "Alice", "", "", "Delhi", "Goa", 140.0, "2026-03-14 09:30:15", "Ravi").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	id, err := s.Insert(context.Background(), &Booking{
		Username: "alice", Name: "Alice", Pickup: "Delhi", Drop: "Goa",
		Fare: types.MoneyFromFloat(140, types.CurrencyINR), CreatedAt: created, Driver: "Ravi",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewStore(db)

	mock.ExpectQuery(`FROM bookings WHERE username = \$1 ORDER BY id`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(1, "alice", "Alice", "", "", "Delhi", "Goa", 140.0, "2026-03-14 09:30:15", "Ravi").
			AddRow(3, "alice", "", "", "", "Pune", "Pune", 50.0, "2026-03-15 18:00:00", dispatch.NoDriverAvailable))

	got, err := s.ListByUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(14000), got[0].Fare.Amount)
	assert.Equal(t, time.Date(2026, 3, 14, 9, 30, 15, 0, time.Local), got[0].CreatedAt)
	assert.Equal(t, dispatch.NoDriverAvailable, got[1].Driver)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewStore(db)

	mock.ExpectQuery(`FROM bookings WHERE id = \$1`).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(7, "bob", "", "", "", "A", "B", 70.0, "bad-time", "Amit"))
	mock.ExpectQuery(`FROM bookings WHERE id = \$1`).WithArgs(int64(8)).
		WillReturnError(sql.ErrNoRows)

	b, err := s.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "bob", b.Username)
	assert.True(t, b.CreatedAt.IsZero())

	_, err = s.Get(context.Background(), 8)
	assert.ErrorIs(t, err, errNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The driver claim and the booking insert share one transaction.
func newSQLBackedService(db *sqlx.DB, viewer RouteViewer) *Service {
	return NewService(Deps{
		Store:      NewStore(db),
		Estimator:  pricing.NewService(),
		Dispatcher: dispatch.NewService(dispatch.NewStore(db)),
		Tx:         infra.NewTransactor(db),
		Viewer:     viewer,
	})
}

func TestBookRide_CommitsClaimAndInsertTogether(t *testing.T) {
	db, mock := newMockDB(t)
	viewer := &recordingViewer{}
	svc := newSQLBackedService(db, viewer)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM drivers`).WithArgs("Available").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "vehicle", "status"}).AddRow(1, "Ravi", "Swift", "Available"))
	mock.ExpectExec(`UPDATE drivers SET status`).WithArgs("Busy", int64(1), "Available").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	r, err := svc.BookRide(context.Background(), account.Session{Username: "alice"}, Request{Pickup: "Delhi", Drop: "Goa"})
	require.NoError(t, err)
	assert.Equal(t, "Ravi", r.Driver)
	assert.Len(t, viewer.opened, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRide_InsertFailureRollsBackClaim(t *testing.T) {
	db, mock := newMockDB(t)
	viewer := &recordingViewer{}
	svc := newSQLBackedService(db, viewer)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM drivers`).WithArgs("Available").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "vehicle", "status"}).AddRow(1, "Ravi", "Swift", "Available"))
	mock.ExpectExec(`UPDATE drivers SET status`).WithArgs("Busy", int64(1), "Available").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO bookings`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := svc.BookRide(context.Background(), account.Session{Username: "alice"}, Request{Pickup: "Delhi", Drop: "Goa"})
	require.Error(t, err)
	assert.Empty(t, viewer.opened)
	assert.NoError(t, mock.ExpectationsWereMet())
}
