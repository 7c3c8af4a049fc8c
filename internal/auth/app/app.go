package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/idgate/internal/auth/http"
	"github.com/aussiebroadwan/idgate/internal/auth/notify"
	"github.com/aussiebroadwan/idgate/internal/auth/service"
	"github.com/aussiebroadwan/idgate/internal/auth/store"
	"github.com/aussiebroadwan/idgate/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/idgate/pkg/cryptox"
	"github.com/aussiebroadwan/idgate/pkg/jwtx"
	"github.com/aussiebroadwan/idgate/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application holds the wired identity service.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	keyManager *jwtx.KeyManager

	authService         *service.AuthService
	rolesService        *service.RolesService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New builds an Application from cfg: database, keys, services and router.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "idgate",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keyManager, err := InitAuthKeys(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize JWT keys: %w", err)
	}
	app.keyManager = keyManager

	notifier, err := app.newNotifier()
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices(notifier)
	app.initHTTP()

	return app, nil
}

// Run serves until SIGINT/SIGTERM or a listener failure.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("idgate starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.db.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains the HTTP server within the grace period, then stops
// housekeeping and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down idgate...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("idgate stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
		app.cfg.DatabaseFile,
	)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied", "file", app.cfg.DatabaseFile)
	return nil
}

// newNotifier sends through SMTP when MAIL_HOST is set and only logs otherwise.
func (app *Application) newNotifier() (service.Notifier, error) {
	if app.cfg.Mail.Host == "" {
		app.logger.Warn("MAIL_HOST not set: verification links and two-factor codes will not be delivered")
		return notify.LogSender{Logger: app.logger}, nil
	}

	sender, err := notify.NewSMTPSender(notify.SMTPConfig{
		Host:     app.cfg.Mail.Host,
		Port:     app.cfg.Mail.Port,
		Username: app.cfg.Mail.User,
		Password: app.cfg.Mail.Password,
		From:     app.cfg.Mail.From,
		FromName: app.cfg.Mail.FromName,
		TLS:      app.cfg.Mail.TLS,
	}, app.cfg.FrontendURL)
	if err != nil {
		return nil, fmt.Errorf("failed to configure mail: %w", err)
	}

	app.logger.Info("smtp notifier configured", "host", app.cfg.Mail.Host, "port", app.cfg.Mail.Port)
	return sender, nil
}

func (app *Application) initServices(notifier service.Notifier) {
	tokens := service.NewTokenIssuer(app.keyManager, app.cfg.Issuer, app.cfg.TokenTTL, time.Now)

	app.authService = &service.AuthService{
		Store:               app.db,
		Credentials:         &service.CredentialVerifier{},
		Challenges:          service.NewChallengeStore(app.db, service.CryptoSecrets{}, time.Now),
		Tokens:              tokens,
		Notifier:            notifier,
		BootstrapAdminEmail: app.cfg.BootstrapAdminEmail,
	}
	app.rolesService = &service.RolesService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.authService.Tokens,
		app.db,
		BuildVersion,
		app.logger,
	)
	router.AuthService = app.authService
	router.RolesService = app.rolesService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
