// README: Driver store backed by the drivers table.
package dispatch

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"taxi/internal/infra"
)

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// ListByStatus returns drivers in the given status, lowest id first.
func (s *Store) ListByStatus(ctx context.Context, status Status) ([]Driver, error) {
	var drivers []Driver
	err := sqlx.SelectContext(ctx, infra.Conn(ctx, s.db), &drivers, `
		SELECT id, COALESCE(name, '') AS name, COALESCE(vehicle, '') AS vehicle, status
		FROM drivers
		WHERE status = $1
		ORDER BY id`, string(status),
	)
	if err != nil {
		return nil, errors.Wrap(err, "list drivers")
	}
	return drivers, nil
}

// UpdateStatus writes status unconditionally.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status Status) error {
	_, err := infra.Conn(ctx, s.db).ExecContext(ctx,
		`UPDATE drivers SET status = $1 WHERE id = $2`, string(status), id)
	return errors.Wrap(err, "update driver status")
}

// Claim moves a driver from one status to another only if it is still in from.
// It reports false when another caller changed the driver first.
func (s *Store) Claim(ctx context.Context, id int64, from, to Status) (bool, error) {
	res, err := infra.Conn(ctx, s.db).ExecContext(ctx,
		`UPDATE drivers SET status = $1 WHERE id = $2 AND status = $3`,
		string(to), id, string(from))
	if err != nil {
		return false, errors.Wrap(err, "claim driver")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "claim driver rows affected")
	}
	return n == 1, nil
}

// Insert adds an available driver. Only the seed tool calls it.
func (s *Store) Insert(ctx context.Context, name, vehicle string) (int64, error) {
	var id int64
	err := infra.Conn(ctx, s.db).QueryRowxContext(ctx,
		`INSERT INTO drivers (name, vehicle, status) VALUES ($1, $2, $3) RETURNING id`,
		name, vehicle, string(StatusAvailable),
	).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "insert driver")
	}
	return id, nil
}
