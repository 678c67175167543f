// README: Dispatch service hands the first available driver to a new booking.
package dispatch

import (
	"context"
	"fmt"

	"taxi/internal/modules/account"
	"taxi/internal/types"
)

var (
	ErrUnknownStatus = types.NewUserError(types.ErrValidation, "Unknown driver status")
	ErrAdminOnly     = types.NewUserError(types.ErrForbidden, "Admin access required")
)

type DriverStore interface {
	ListByStatus(ctx context.Context, status Status) ([]Driver, error)
	Claim(ctx context.Context, id int64, from, to Status) (bool, error)
}

type Service struct {
	store DriverStore
}

func NewService(store DriverStore) *Service {
	return &Service{store: store}
}

// AssignDriver marks the lowest-id available driver busy and returns its name.
// When no driver is available it returns NoDriverAvailable and changes nothing.
// A candidate taken by a concurrent request is skipped in favour of the next one.
// Callers running it inside a transaction record the outcome after commit.
func (s *Service) AssignDriver(ctx context.Context) (string, error) {
	drivers, err := s.store.ListByStatus(ctx, StatusAvailable)
	if err != nil {
		return "", err
	}
	for _, d := range drivers {
		ok, err := s.store.Claim(ctx, d.ID, StatusAvailable, StatusBusy)
		if err != nil {
			return "", fmt.Errorf("assign driver %d: %w", d.ID, err)
		}
		if ok {
			return d.Name, nil
		}
	}
	return NoDriverAvailable, nil
}

// Drivers lists drivers in the given status for the admin view.
func (s *Service) Drivers(ctx context.Context, sess account.Session, status Status) ([]Driver, error) {
	if !sess.Admin {
		return nil, ErrAdminOnly
	}
	if status != StatusAvailable && status != StatusBusy {
		return nil, ErrUnknownStatus
	}
	return s.store.ListByStatus(ctx, status)
}
