// Package server wires the catalog server: configuration, logging, the
// PostgreSQL store and its migrations, the image store, reference-data
// client, services, and the HTTP and gRPC listeners.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/worldcovers/internal/logging"
	"github.com/dmitrijs2005/worldcovers/internal/refdata"
	"github.com/dmitrijs2005/worldcovers/internal/server/config"
	gs "github.com/dmitrijs2005/worldcovers/internal/server/grpc"
	"github.com/dmitrijs2005/worldcovers/internal/server/httpapi"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/worldcovers/internal/server/services"
	"github.com/dmitrijs2005/worldcovers/internal/server/storage"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *httpapi.Server
	health *gs.HealthServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	images, err := storage.NewS3Store(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("image store init error: %w", err)
	}

	ref := refdata.NewClient(c.ReferenceURLs(), c.RequestTimeout, logger)

	us := services.NewUserService(db, rm, c, logger)
	cs := services.NewCatalogService(db, rm, ref, logger)
	ss := services.NewSubmissionService(db, rm, images, c.MaxImageSize, logger)
	ls := services.NewLoginRequestService(db, rm, logger)

	api := httpapi.NewServer(us, cs, ss, ls, logger, httpapi.Options{
		AllowedOrigins:         c.AllowedOrigins,
		MaxImageSize:           c.MaxImageSize,
		LoginRequestsPerMinute: c.LoginRequestsPerMinute,
		Ping:                   db.PingContext,
	})

	return &App{
		config: c,
		logger: logger,
		db:     db,
		http:   api,
		health: gs.NewHealthServer(c.GRPCAddr, logger, db.PingContext, gs.DefaultCheckInterval),
	}, nil
}

func (app *App) startHTTPServer(ctx context.Context) error {
	srv := &http.Server{
		Addr:              app.config.HTTPAddr,
		Handler:           app.http,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			app.logger.Error(ctx, "http shutdown", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run serves HTTP and gRPC until SIGINT/SIGTERM or until either server
// fails, then shuts both down.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")
	defer app.close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.startHTTPServer(gctx) })
	g.Go(func() error { return app.health.Run(gctx) })

	if err := g.Wait(); err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
		return err
	}
	return nil
}

func (app *App) close() {
	app.http.Close()
	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close", "error", err)
	}
}
