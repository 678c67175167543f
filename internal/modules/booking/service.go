// README: Booking service prices a ride, dispatches a driver, records the booking and serves history.
package booking

import (
	"context"
	"errors"
	"time"

	"taxi/internal/modules/account"
	"taxi/internal/modules/dispatch"
	"taxi/internal/modules/pricing"
	"taxi/internal/types"
)

var (
	ErrMissingRoute = types.NewUserError(types.ErrValidation, "Please enter pickup and drop")
	ErrNotLoggedIn  = types.NewUserError(types.ErrAuth, "Please login first")
	ErrAdminOnly    = types.NewUserError(types.ErrForbidden, "Admin access required")
	ErrAdminBooking = types.NewUserError(types.ErrForbidden, "Admin sessions cannot book rides")
	ErrNotFound     = types.NewUserError(types.ErrNotFound, "Booking not found")
)

type BookingStore interface {
	Insert(ctx context.Context, b *Booking) (int64, error)
	ListByUser(ctx context.Context, username string) ([]Booking, error)
	ListAll(ctx context.Context) ([]Booking, error)
	Get(ctx context.Context, id int64) (*Booking, error)
}

type Estimator interface {
	Estimate(pickup, drop string) pricing.Estimate
}

type Dispatcher interface {
	AssignDriver(ctx context.Context) (string, error)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type RouteViewer interface {
	DirectionsURL(pickup, drop string) string
	Open(url string)
}

// Recorder receives committed booking and dispatch outcomes; nil disables recording.
type Recorder interface {
	RecordBooking(driverAssigned bool, fare types.Money)
	RecordDispatch(assigned bool)
}

type Deps struct {
	Store      BookingStore
	Estimator  Estimator
	Dispatcher Dispatcher
	Tx         Transactor
	Viewer     RouteViewer
	Metrics    Recorder
}

type Service struct {
	store      BookingStore
	estimator  Estimator
	dispatcher Dispatcher
	tx         Transactor
	viewer     RouteViewer
	metrics    Recorder
	now        func() time.Time
}

func NewService(deps Deps) *Service {
	return &Service{
		store:      deps.Store,
		estimator:  deps.Estimator,
		dispatcher: deps.Dispatcher,
		tx:         deps.Tx,
		viewer:     deps.Viewer,
		metrics:    deps.Metrics,
		now:        time.Now,
	}
}

// Quote prices a route without booking it.
func (s *Service) Quote(pickup, drop string) (pricing.Estimate, error) {
	if pickup == "" || drop == "" {
		return pricing.Estimate{}, ErrMissingRoute
	}
	return s.estimator.Estimate(pickup, drop), nil
}

// BookRide books a ride for the session's user. Rider name, phone and email
// are stored as given. The driver claim and the booking row commit together;
// the map viewer fires only after the commit.
func (s *Service) BookRide(ctx context.Context, sess account.Session, req Request) (Receipt, error) {
	if sess.Username == "" {
		return Receipt{}, ErrNotLoggedIn
	}
	if sess.Admin {
		return Receipt{}, ErrAdminBooking
	}
	est, err := s.Quote(req.Pickup, req.Drop)
	if err != nil {
		return Receipt{}, err
	}

	b := &Booking{
		Username: sess.Username,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Pickup:   req.Pickup,
		Drop:     req.Drop,
		Fare:     est.Fare,
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		driver, err := s.dispatcher.AssignDriver(ctx)
		if err != nil {
			return err
		}
		b.Driver = driver
		b.CreatedAt = s.now().Truncate(time.Second)
		id, err := s.store.Insert(ctx, b)
		if err != nil {
			return err
		}
		b.ID = id
		return nil
	})
	if err != nil {
		return Receipt{}, err
	}

	if s.metrics != nil {
		assigned := b.Driver != dispatch.NoDriverAvailable
		s.metrics.RecordDispatch(assigned)
		s.metrics.RecordBooking(assigned, b.Fare)
	}
	url := s.viewer.DirectionsURL(b.Pickup, b.Drop)
	s.viewer.Open(url)

	return Receipt{
		BookingID:  b.ID,
		Fare:       b.Fare,
		Driver:     b.Driver,
		DistanceKm: est.DistanceKm,
		CreatedAt:  b.CreatedAt,
		MapURL:     url,
	}, nil
}

// History lists the session user's bookings, oldest first.
func (s *Service) History(ctx context.Context, sess account.Session) ([]Booking, error) {
	if sess.Username == "" {
		return nil, ErrNotLoggedIn
	}
	return s.store.ListByUser(ctx, sess.Username)
}

// AllBookings is the admin view across every user.
func (s *Service) AllBookings(ctx context.Context, sess account.Session) ([]Booking, error) {
	if !sess.Admin {
		return nil, ErrAdminOnly
	}
	return s.store.ListAll(ctx)
}

// Get returns a booking visible to the session: its owner or an admin.
// Other users' bookings are reported as not found.
func (s *Service) Get(ctx context.Context, sess account.Session, id int64) (*Booking, error) {
	if sess.Username == "" {
		return nil, ErrNotLoggedIn
	}
	b, err := s.store.Get(ctx, id)
	if errors.Is(err, errNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !sess.Admin && b.Username != sess.Username {
		return nil, ErrNotFound
	}
	return b, nil
}

// ReceiptPDF renders a visible booking as a PDF receipt.
func (s *Service) ReceiptPDF(ctx context.Context, sess account.Session, id int64) ([]byte, error) {
	b, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	return RenderReceiptPDF(*b, s.viewer.DirectionsURL(b.Pickup, b.Drop))
}
