// README: Booking store backed by the bookings table (insert and read only).
package booking

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"taxi/internal/infra"
	"taxi/internal/types"
)

var errNotFound = errors.New("booking not found")

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

type bookingRow struct {
	ID        int64   `db:"id"`
	Username  string  `db:"username"`
	Name      string  `db:"name"`
	Phone     string  `db:"phone"`
	Email     string  `db:"email"`
	Pickup    string  `db:"pickup"`
	Drop      string  `db:"drop"`
	Fare      float64 `db:"fare"`
	Timestamp string  `db:"timestamp"`
	Driver    string  `db:"driver"`
}

const selectBookings = `
	SELECT id,
	       COALESCE(username, '') AS username,
	       COALESCE(name, '') AS name,
	       COALESCE(phone, '') AS phone,
	       COALESCE(email, '') AS email,
	       COALESCE(pickup, '') AS pickup,
	       COALESCE("drop", '') AS "drop",
	       COALESCE(fare, 0)::float8 AS fare,
	       COALESCE("timestamp", '') AS "timestamp",
	       COALESCE(driver, '') AS driver
	FROM bookings`

func (s *Store) Insert(ctx context.Context, b *Booking) (int64, error) {
	var id int64
	err := infra.Conn(ctx, s.db).QueryRowxContext(ctx, `
		INSERT INTO bookings (username, name, phone, email, pickup, "drop", fare, "timestamp", driver)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		b.Username, b.Name, b.Phone, b.Email, b.Pickup, b.Drop,
		b.Fare.Float(), b.CreatedAt.Format(TimestampLayout), b.Driver,
	).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "insert booking")
	}
	return id, nil
}

// ListByUser returns a user's bookings in the order they were made.
func (s *Store) ListByUser(ctx context.Context, username string) ([]Booking, error) {
	var rows []bookingRow
	err := sqlx.SelectContext(ctx, infra.Conn(ctx, s.db), &rows,
		selectBookings+` WHERE username = $1 ORDER BY id`, username)
	if err != nil {
		return nil, errors.Wrap(err, "list bookings by user")
	}
	return toBookings(rows), nil
}

// ListAll returns every booking in the order they were made.
func (s *Store) ListAll(ctx context.Context) ([]Booking, error) {
	var rows []bookingRow
	err := sqlx.SelectContext(ctx, infra.Conn(ctx, s.db), &rows, selectBookings+` ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "list bookings")
	}
	return toBookings(rows), nil
}

func (s *Store) Get(ctx context.Context, id int64) (*Booking, error) {
	var row bookingRow
	err := sqlx.GetContext(ctx, infra.Conn(ctx, s.db), &row, selectBookings+` WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get booking")
	}
	b := row.toBooking()
	return &b, nil
}

func toBookings(rows []bookingRow) []Booking {
	out := make([]Booking, len(rows))
	for i, r := range rows {
		out[i] = r.toBooking()
	}
	return out
}

func (r bookingRow) toBooking() Booking {
	// Rows written by other tools may carry an unparseable timestamp; keep the zero time.
	created, _ := time.ParseInLocation(TimestampLayout, r.Timestamp, time.Local)
	return Booking{
		ID:        r.ID,
		Username:  r.Username,
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		Pickup:    r.Pickup,
		Drop:      r.Drop,
		Fare:      types.MoneyFromFloat(r.Fare, types.CurrencyINR),
		CreatedAt: created,
		Driver:    r.Driver,
	}
}
