// Package server initializes and runs the board application server: it
// opens the database, applies migrations, wires the services to the HTTP
// API and the websocket relay, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dkarpovs/epitrello/internal/logging"
	"github.com/dkarpovs/epitrello/internal/relay"
	"github.com/dkarpovs/epitrello/internal/server/config"
	"github.com/dkarpovs/epitrello/internal/server/httpapi"
	"github.com/dkarpovs/epitrello/internal/server/repositories/repomanager"
	"github.com/dkarpovs/epitrello/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	hub := relay.NewHub(logger)

	srv := httpapi.NewServer(cfg.EndpointAddrHTTP, logger, httpapi.Services{
		Users:    services.NewUserService(db, rm),
		Boards:   services.NewBoardService(db, rm),
		Lists:    services.NewListService(db, rm),
		Cards:    services.NewCardService(db, rm),
		Comments: services.NewCommentService(db, rm),
		Uploads:  services.NewAttachmentService(db, rm, cfg),
	}, hub)

	return &App{config: cfg, logger: logger, db: db, http: srv}, nil
}

func (app *App) initSignalHandler(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancel()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddrHTTP)

	app.initSignalHandler(cancel)

	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}
}
