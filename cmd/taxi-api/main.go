// README: Entry point; loads config, wires services, starts the HTTP server and shuts it down on signal.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"taxi/internal/config"
	httptransport "taxi/internal/http"
	"taxi/internal/infra"
	"taxi/internal/logger"
	"taxi/internal/maps"
	"taxi/internal/metrics"
	"taxi/internal/modules/account"
	"taxi/internal/modules/booking"
	"taxi/internal/modules/dispatch"
	"taxi/internal/modules/pricing"
	"taxi/internal/modules/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Init(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DB.AutoMigrate {
		if err := infra.RunMigrations(cfg.DB.DSN); err != nil {
			log.Fatal().Err(err).Msg("run migrations")
		}
	}

	db, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer db.Close()

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer redisClient.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	opener := maps.LogOpener
	if cfg.Map.OpenBrowser {
		opener = maps.BrowserOpener
	}
	viewer := maps.NewViewer(cfg.Map.BaseURL, opener)

	accountSvc := account.NewService(account.NewStore(db), cfg.Admin, collector)
	dispatchSvc := dispatch.NewService(dispatch.NewStore(db))
	bookingSvc := booking.NewService(booking.Deps{
		Store:      booking.NewStore(db),
		Estimator:  pricing.NewService(),
		Dispatcher: dispatchSvc,
		Tx:         infra.NewTransactor(db),
		Viewer:     viewer,
		Metrics:    collector,
	})
	sessionStore := session.NewStore(redisClient, cfg.Session.TTL)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Accounts:        accountSvc,
		Sessions:        sessionStore,
		Bookings:        bookingSvc,
		Drivers:         dispatchSvc,
		Metrics:         collector,
		MetricsHandler:  metrics.Handler(reg),
		LoginRatePerMin: cfg.HTTP.LoginRatePerMin,
		CORSOrigins:     cfg.HTTP.CORSOrigins,
		TrustedProxies:  cfg.HTTP.TrustedProxies,
	})
	defer handler.Close()

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
	}()

	log.Info().Str("addr", cfg.HTTP.Addr).Msg("taxi api listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server")
	}
	log.Info().Msg("taxi api stopped")
}
