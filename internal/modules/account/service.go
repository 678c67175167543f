// README: Account service registers users and checks user and admin credentials.
package account

import (
	"context"
	"errors"

	"taxi/internal/config"
	"taxi/internal/types"
)

var (
	ErrMissingCredentials = types.NewUserError(types.ErrValidation, "Please enter both username and password")
	ErrDuplicate          = types.NewUserError(types.ErrDuplicate, "Username already exists")
	ErrInvalidCredentials = types.NewUserError(types.ErrAuth, "Invalid Credentials")
	ErrInvalidAdmin       = types.NewUserError(types.ErrAuth, "Invalid admin credentials")
)

type AccountStore interface {
	Insert(ctx context.Context, a Account) error
	Find(ctx context.Context, username, password string) (*Account, error)
	Exists(ctx context.Context, username string) (bool, error)
}

// Recorder receives authentication outcomes; nil disables recording.
type Recorder interface {
	RecordLogin(kind string, ok bool)
	RecordSignup(ok bool)
}

type Service struct {
	store   AccountStore
	admin   config.AdminConfig
	metrics Recorder
}

func NewService(store AccountStore, admin config.AdminConfig, metrics Recorder) *Service {
	return &Service{store: store, admin: admin, metrics: metrics}
}

// Create registers a new account. Passwords are stored verbatim.
func (s *Service) Create(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		s.recordSignup(false)
		return ErrMissingCredentials
	}
	exists, err := s.store.Exists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		s.recordSignup(false)
		return ErrDuplicate
	}
	// Exists and Insert are separate statements; a concurrent signup for the
	// same name is caught by the conflict clause in Insert.
	if err := s.store.Insert(ctx, Account{Username: username, Password: password}); err != nil {
		if errors.Is(err, errAlreadyExists) {
			s.recordSignup(false)
			return ErrDuplicate
		}
		return err
	}
	s.recordSignup(true)
	return nil
}

// Authenticate does not say whether the username or the password was wrong.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Session, error) {
	a, err := s.store.Find(ctx, username, password)
	if errors.Is(err, errNotFound) {
		s.recordLogin("user", false)
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	s.recordLogin("user", true)
	return Session{Username: a.Username}, nil
}

// AuthenticateAdmin compares against the configured admin pair; the admin is
// not an account and is never stored.
func (s *Service) AuthenticateAdmin(username, password string) (Session, error) {
	if username != s.admin.Username || password != s.admin.Password {
		s.recordLogin("admin", false)
		return Session{}, ErrInvalidAdmin
	}
	s.recordLogin("admin", true)
	return Session{Username: username, Admin: true}, nil
}

func (s *Service) recordLogin(kind string, ok bool) {
	if s.metrics != nil {
		s.metrics.RecordLogin(kind, ok)
	}
}

func (s *Service) recordSignup(ok bool) {
	if s.metrics != nil {
		s.metrics.RecordSignup(ok)
	}
}
