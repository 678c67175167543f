// README: Base handler utilities (JSON helpers, error mapping, service contracts).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"taxi/internal/modules/account"
	"taxi/internal/modules/booking"
	"taxi/internal/modules/dispatch"
	"taxi/internal/modules/pricing"
	"taxi/internal/types"
)

type AccountService interface {
	Create(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) (account.Session, error)
	AuthenticateAdmin(username, password string) (account.Session, error)
}

type SessionStore interface {
	Create(ctx context.Context, sess account.Session) (string, error)
	Delete(ctx context.Context, token string) error
}

type BookingService interface {
	Quote(pickup, drop string) (pricing.Estimate, error)
	BookRide(ctx context.Context, sess account.Session, req booking.Request) (booking.Receipt, error)
	History(ctx context.Context, sess account.Session) ([]booking.Booking, error)
	AllBookings(ctx context.Context, sess account.Session) ([]booking.Booking, error)
	ReceiptPDF(ctx context.Context, sess account.Session, id int64) ([]byte, error)
}

type DriverService interface {
	Drivers(ctx context.Context, sess account.Session, status dispatch.Status) ([]dispatch.Driver, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeServiceError maps an error kind to a status code and shows its message.
// Errors without a kind are logged and hidden behind a generic message.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrValidation):
		writeError(c, http.StatusBadRequest, types.Message(err, "bad request"))
	case errors.Is(err, types.ErrDuplicate):
		writeError(c, http.StatusConflict, types.Message(err, "already exists"))
	case errors.Is(err, types.ErrAuth):
		writeError(c, http.StatusUnauthorized, types.Message(err, "unauthorized"))
	case errors.Is(err, types.ErrForbidden):
		writeError(c, http.StatusForbidden, types.Message(err, "forbidden"))
	case errors.Is(err, types.ErrNotFound):
		writeError(c, http.StatusNotFound, types.Message(err, "not found"))
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
