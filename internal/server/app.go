// Package server initializes and runs the folio API server.
// It opens PostgreSQL and applies migrations, connects the optional Redis
// cache, handles graceful shutdown, and starts the HTTP API.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/dmitrijs2005/folio/internal/server/cache"
	"github.com/dmitrijs2005/folio/internal/server/config"
	"github.com/dmitrijs2005/folio/internal/server/httpapi"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/folio/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const pingTimeout = 5 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	redis       *redis.Client
	userService *services.UserService
	handler     http.Handler
}

// NewApp connects the backing stores and wires the services. The returned
// App owns the connections; Run closes them.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel, logging.FormatJSON)

	db, err := OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	rc, ch := connectCache(ctx, c.RedisAddr, logger)

	app := newApp(c, logger, db, rm, ch)
	app.redis = rc
	return app, nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager, ch cache.Cache) *App {
	us := services.NewUserService(db, rm, c)
	svc := httpapi.Services{
		Auth:      us,
		Portfolio: services.NewPortfolioService(db, rm, ch),
		Blogs:     services.NewBlogService(db, rm, ch),
		Comments:  services.NewCommentService(db, rm, ch),
		Likes:     services.NewLikeService(db, rm, ch),
	}

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		userService: us,
		handler:     httpapi.NewRouter(svc, logger),
	}
}

// OpenDB opens a pgx-backed *sql.DB and checks that it answers.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return db, nil
}

// connectCache returns the Redis cache for addr, or Noop when addr is empty
// or Redis is unreachable. The API works without a cache, only slower.
func connectCache(ctx context.Context, addr string, logger logging.Logger) (*redis.Client, cache.Cache) {
	if addr == "" {
		logger.Info(ctx, "Cache disabled")
		return nil, cache.Noop{}
	}

	client, err := cache.Connect(ctx, addr)
	if err != nil {
		logger.Warn(ctx, "Cache unavailable, continuing without it", "error", err)
		return nil, cache.Noop{}
	}
	return client, cache.NewRedisCache(client, logger)
}

// Handler returns the API router.
func (app *App) Handler() http.Handler { return app.handler }

// Users returns the account service.
func (app *App) Users() *services.UserService { return app.userService }

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the API until a termination signal arrives or ctx is done.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpapi.NewServer(app.config.Addr, app.handler, app.logger).Run(gctx)
	})

	err := g.Wait()
	app.Close()
	app.logger.Info(context.Background(), "App stopped")
	return err
}

// Close releases the database and cache connections.
func (app *App) Close() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(context.Background(), "redis close failed", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Warn(context.Background(), "db close failed", "error", err)
		}
	}
}
