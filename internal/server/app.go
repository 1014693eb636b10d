// Package server initializes and runs the DreamNotes API server.
// It opens the database, applies schema migrations, wires the services to
// the HTTP transport, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/dreamnotes/internal/logging"
	"github.com/dmitrijs2005/dreamnotes/internal/server/config"
	handler "github.com/dmitrijs2005/dreamnotes/internal/server/handler/http"
	"github.com/dmitrijs2005/dreamnotes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/dreamnotes/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repos       repomanager.RepositoryManager
	userService *services.UserService
	noteService *services.NoteService
}

func NewApp(cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("repository init error: %w", err)
	}

	us := services.NewUserService(db, rm, cfg)
	ns := services.NewNoteService(db, rm, cfg)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		repos:       rm,
		userService: us,
		noteService: ns,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	router := handler.NewRouter(handler.RouterOptions{
		UserHandler:           &handler.UserHandler{UserService: app.userService},
		NoteHandler:           &handler.NoteHandler{NoteService: app.noteService},
		Logger:                app.logger,
		JWTSecret:             []byte(app.config.SecretKey),
		Users:                 app.userService,
		RequestLimitPerMinute: app.config.RequestLimitPerMinute,
	})

	srv := &http.Server{Addr: app.config.EndpointAddr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "server shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "starting http server", "addr", app.config.EndpointAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	return nil
}
