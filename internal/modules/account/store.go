// README: Account store backed by the users table.
package account

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"taxi/internal/infra"
)

var (
	errAlreadyExists = errors.New("account already exists")
	errNotFound      = errors.New("account not found")
)

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Insert never overwrites: an existing username yields errAlreadyExists.
func (s *Store) Insert(ctx context.Context, a Account) error {
	res, err := infra.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO users (username, password) VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING`,
		a.Username, a.Password,
	)
	if err != nil {
		return errors.Wrap(err, "insert account")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "insert account rows affected")
	}
	if n == 0 {
		return errAlreadyExists
	}
	return nil
}

// Find matches username and password exactly.
func (s *Store) Find(ctx context.Context, username, password string) (*Account, error) {
	var a Account
	err := sqlx.GetContext(ctx, infra.Conn(ctx, s.db), &a,
		`SELECT username, password FROM users WHERE username = $1 AND password = $2`,
		username, password,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find account")
	}
	return &a, nil
}

func (s *Store) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, infra.Conn(ctx, s.db), &exists,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
	if err != nil {
		return false, errors.Wrap(err, "account exists")
	}
	return exists, nil
}
