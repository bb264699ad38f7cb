package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/beauty-scheduler/internal/audit"
	"github.com/BruksfildServices01/beauty-scheduler/internal/auth"
	"github.com/BruksfildServices01/beauty-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/beauty-scheduler/internal/db"
	domainReminder "github.com/BruksfildServices01/beauty-scheduler/internal/domain/reminder"
	infraRepo "github.com/BruksfildServices01/beauty-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/beauty-scheduler/internal/lock"
	"github.com/BruksfildServices01/beauty-scheduler/internal/logging"
	"github.com/BruksfildServices01/beauty-scheduler/internal/mailer"
	"github.com/BruksfildServices01/beauty-scheduler/internal/realtime"
	"github.com/BruksfildServices01/beauty-scheduler/internal/routes"
	"github.com/BruksfildServices01/beauty-scheduler/internal/scheduler"
	"github.com/BruksfildServices01/beauty-scheduler/internal/timezone"
	ucReminder "github.com/BruksfildServices01/beauty-scheduler/internal/usecase/reminder"
)

func main() {
	cfg := config.Load()
	logger := logging.New("beauty-scheduler", cfg.AppEnv)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logger.Error("database unavailable", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTExpiresIn)
	auditDispatcher := audit.NewDispatcher(audit.New(db), logger)
	hub := realtime.NewHub(logger)

	// ======================================================
	// ⏰ REMINDERS
	// ======================================================
	var mail domainReminder.Mailer = mailer.NewLogMailer(logger)
	if cfg.SMTPEnabled() {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName)
	} else {
		logger.Warn("SMTP_HOST not set, reminder emails stay pending until it is configured")
	}

	reminderRepo := infraRepo.NewReminderGormRepository(db)
	dispatchUC := ucReminder.NewDispatchReminders(
		reminderRepo,
		reminderRepo,
		mail,
		hub,
		auditDispatcher,
		logger,
		ucReminder.DispatchConfig{
			Concurrency: cfg.ReminderConcurrency,
			SendTimeout: cfg.EmailTimeout,
			Location:    timezone.Location(cfg.Timezone),
			FrontendURL: cfg.FrontendURL,
		},
	)

	var locker scheduler.Locker
	if cfg.RedisURL != "" {
		rdb, err := lock.NewClient(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid REDIS_URL", "err", err)
			os.Exit(1)
		}
		defer rdb.Close()
		// Extended while a scan runs; a crashed holder blocks at most one interval.
		locker = lock.NewRedisLocker(rdb, "beauty-scheduler:reminders:scan", cfg.ReminderInterval)
	}

	sched := scheduler.New(dispatchUC.Scan, cfg.ReminderInterval, locker, logger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sched.Start(ctx)
	}()

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Config: cfg,
		Tokens: tokens,
		Audit:  auditDispatcher,
		Hub:    hub,
		Logger: logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "err", err)
	}

	wg.Wait()
	auditDispatcher.Close()

	if err := dbpkg.Close(db); err != nil {
		logger.Error("database close", "err", err)
	}
	logger.Info("stopped")
}
