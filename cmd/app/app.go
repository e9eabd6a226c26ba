package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/config"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/db"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/gateway"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/logger"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/repository/dao"
)

const shutdownTimeout = 10 * time.Second

func setup(configPath string) (*config.AppConfig, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return nil, fmt.Errorf("failed to initialize logger -> %w", err)
	}

	return conf, nil
}

func openDB(conf *config.AppConfig) (*gorm.DB, error) {
	var (
		postgresDB *gorm.DB
		err        error
	)

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database -> %w", err)
	}

	return postgresDB, nil
}

// Start runs the Ledger API until SIGINT or SIGTERM.
func Start(configPath string) error {
	conf, err := setup(configPath)
	if err != nil {
		return err
	}

	postgresDB, err := openDB(conf)
	if err != nil {
		return err
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to initialize tables -> %w", err)
	}

	s := api.NewServer(conf, postgresDB, nil)

	return run(":"+conf.API.Port, s.Router)
}

// StartGateway runs the Composite Gateway until SIGINT or SIGTERM.
func StartGateway(configPath string) error {
	conf, err := setup(configPath)
	if err != nil {
		return err
	}

	client := gateway.NewLedgerClient(conf.Gateway.LedgerURL, conf.Gateway.Timeout, conf.Gateway.MaxRetries)
	s := gateway.NewServer(conf, client)

	return run(":"+conf.Gateway.Port, s.Router)
}

// Migrate creates or updates the tables and seeds the points pool.
func Migrate(configPath string) error {
	conf, err := setup(configPath)
	if err != nil {
		return err
	}

	postgresDB, err := openDB(conf)
	if err != nil {
		return err
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to initialize tables -> %w", err)
	}

	zap.L().Info("tables are up to date")

	return nil
}

func run(addr string, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down the server -> %w", err)
	}

	return nil
}
