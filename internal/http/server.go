// README: API gateway; wires middleware and module services into a gin engine.
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"taxi/internal/http/handlers"
	"taxi/internal/http/middleware"
)

type ServerDeps struct {
	Accounts handlers.AccountService
	Sessions SessionStore
	Bookings handlers.BookingService
	Drivers  handlers.DriverService
	Metrics  middleware.StatusRecorder
	// MetricsHandler serves GET /metrics when set.
	MetricsHandler  http.Handler
	LoginRatePerMin int
	CORSOrigins     []string
	// TrustedProxies lists proxy IPs/CIDRs whose X-Forwarded-For is believed.
	// Empty means the client IP is always the connection's remote address.
	TrustedProxies []string
}

// SessionStore covers both token issue and token lookup.
type SessionStore interface {
	handlers.SessionStore
	middleware.SessionResolver
}

type Server struct {
	deps         ServerDeps
	loginLimiter *middleware.IPLimiter
}

func NewServer(deps ServerDeps) *Server {
	return &Server{deps: deps, loginLimiter: middleware.NewIPLimiter(deps.LoginRatePerMin)}
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	s.loginLimiter.Stop()
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	if err := r.SetTrustedProxies(s.deps.TrustedProxies); err != nil {
		log.Error().Err(err).Strs("trusted_proxies", s.deps.TrustedProxies).Msg("invalid trusted proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.Recovery(), middleware.Logging(s.deps.Metrics))
	if len(s.deps.CORSOrigins) > 0 {
		r.Use(corsMiddleware(s.deps.CORSOrigins))
	}
	registerRoutes(r, s.deps, s.loginLimiter)
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = origins
	return cors.New(cfg)
}
