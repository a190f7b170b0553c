package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"dairy-admin/internal/adapters/auth/identity"
	"dairy-admin/internal/adapters/storage/postgres"
	"dairy-admin/internal/config"
	"dairy-admin/internal/platform/logger"
	"dairy-admin/internal/ports/auth"
	"dairy-admin/internal/router"
	"dairy-admin/internal/scheduler"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	var verifier auth.AuthVerifier
	if cfg.Auth.BaseURL != "" {
		client, err := identity.NewClient(identity.Config{
			BaseURL: cfg.Auth.BaseURL,
			APIKey:  cfg.Auth.APIKey,
		})
		if err != nil {
			zl.Fatal("identity client", zap.Error(err))
		}
		verifier = identity.NewVerifier(client)
	} else {
		zl.Warn("AUTH_BASE_URL no seteado: modo dev, auth por header X-Debug-User-ID")
	}

	opts := router.Options{
		AuthVerifier:       verifier,
		Logger:             zl,
		ReminderWindowDays: cfg.Reminders.WindowDays,
	}
	if cfg.DB.DSN != "" {
		db, err := postgres.Open(cfg.DB.DSN)
		if err != nil {
			zl.Fatal("postgres", zap.Error(err))
		}
		defer func() { _ = db.Close() }()
		opts.DB = db
	} else {
		zl.Warn("DB_DSN no seteado: repos en memoria")
	}

	res := router.New(opts)

	sched := scheduler.New(cfg.Reminders.CronSchedule, res.Reminders, zl.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      res.Handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	zl.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
}
