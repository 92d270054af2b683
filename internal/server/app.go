// Package server wires the storefront backend together: configuration,
// Postgres with migrations, the services, the REST API and the gRPC health
// endpoint. Both listeners stop when the context is cancelled or a
// termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/truekicks/internal/logging"
	"github.com/dmitrijs2005/truekicks/internal/server/config"
	"github.com/dmitrijs2005/truekicks/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/truekicks/internal/server/rest"
	"github.com/dmitrijs2005/truekicks/internal/server/services"
	"github.com/dmitrijs2005/truekicks/internal/server/storage"

	gs "github.com/dmitrijs2005/truekicks/internal/server/grpc"
)

const healthCheckInterval = 5 * time.Second

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	catalogService *services.CatalogService
	userService    *services.UserService
	orderService   *services.OrderService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	var images storage.ImageURLResolver = storage.Passthrough{}
	if c.S3Bucket != "" {
		p, err := storage.NewS3Presigner(ctx, c)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		images = p
	}

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		catalogService: services.NewCatalogService(db, rm, images, logger),
		userService:    services.NewUserService(db, rm, c),
		orderService:   services.NewOrderService(db, rm),
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
	s := rest.NewServer(app.config.EndpointAddrHTTP, app.config.AllowedOrigins(), app.logger,
		app.catalogService, app.userService, app.orderService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.db.PingContext, healthCheckInterval)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
