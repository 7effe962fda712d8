package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/lmb/maintenance-tracker/internal/config"
	"github.com/lmb/maintenance-tracker/internal/database"
	"github.com/lmb/maintenance-tracker/internal/handler"
	"github.com/lmb/maintenance-tracker/internal/logging"
	"github.com/lmb/maintenance-tracker/internal/middleware"
	"github.com/lmb/maintenance-tracker/internal/queue"
	"github.com/lmb/maintenance-tracker/internal/reminder"
	"github.com/lmb/maintenance-tracker/internal/repository"
	"github.com/lmb/maintenance-tracker/internal/router"
	"github.com/lmb/maintenance-tracker/internal/service"
)

func main() {
	_ = godotenv.Load() // a missing .env is fine; the environment wins either way

	cfg := config.Load()
	log := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stdout})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = database.Migrate(migrateCtx, db)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("schema migration failed")
	}

	// ---- optional integrations ----
	var limit echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		defer rdb.Close()
		limit = middleware.NewCredentialLimiter(config.LoadRateLimitConfig(), rdb, log)
		log.Info("credential rate limiting enabled")
	} else {
		log.Info("redis not configured; credential rate limiting disabled")
	}

	amqpURL := config.AMQPURL()
	events := service.NewPublisher(amqpURL)
	if amqpURL != "" {
		go func() {
			if err := queue.StartActivityConsumer(ctx, amqpURL, cfg.ActivityDir, log); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("activity consumer stopped")
			}
		}()
	}

	rc := config.LoadReminderConfig()
	sched, err := reminder.NewScheduler(config.LoadMailConfig(), rc, repository.NewReminderRepo(db), log)
	if err != nil {
		log.WithError(err).Fatal("reminder scheduler")
	}
	if sched != nil {
		sched.Start()
		log.WithField("schedule", rc.Schedule).Info("reminder job scheduled")
	} else {
		log.Info("SMTP not configured; reminder emails disabled")
	}

	// ---- HTTP ----
	clock := handler.NewClock(rc.Location)
	h := router.Handlers{
		Auth: handler.NewAuthHandler(cfg, repository.NewUserRepo(db), log),
		Building: handler.NewBuildingHandler(repository.NewApartmentRepo(db), repository.NewAreaRepo(db),
			repository.NewCategoryRepo(db), log),
		Contractors: handler.NewContractorHandler(repository.NewContractorRepo(db)),
		Assets:      handler.NewAssetHandler(repository.NewAssetRepo(db)),
		Expenses:    handler.NewExpenseHandler(repository.NewExpenseRepo(db), clock),
		Tasks:       handler.NewTaskHandler(repository.NewTaskRepo(db), events, clock, log),
		Preventive:  handler.NewPreventiveHandler(repository.NewPreventiveRepo(db)),
		Overview:    handler.NewOverviewHandler(repository.NewOverviewRepo(db), clock),
	}
	e := router.New(h, router.Options{
		JWTSecret:       cfg.JWTSecret,
		BootstrapKey:    cfg.BootstrapKey,
		ClientURLs:      cfg.ClientURLs,
		CredentialLimit: limit,
		Log:             log,
	})
	if cfg.BootstrapKey == "" {
		log.Warn("BOOTSTRAP_KEY not set; bootstrap and reset routes are disabled")
	}

	addr := ":" + cfg.Port
	go func() {
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http shutdown")
	}
	if sched != nil {
		sched.Stop(shutdownCtx)
	}
}
