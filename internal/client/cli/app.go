package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/config"
	"github.com/dmitrijs2005/folio/internal/client/nav"
	"github.com/dmitrijs2005/folio/internal/client/services"
	"github.com/dmitrijs2005/folio/internal/client/session"
	"github.com/dmitrijs2005/folio/internal/client/storage"
	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/dmitrijs2005/folio/internal/models"
)

var errLoginRequired = errors.New("login required")

// App is the terminal client. Every screen lives on one services.Page; moving
// to another screen closes it so late responses are dropped.
type App struct {
	db     *sql.DB
	api    *client.Client
	store  *session.Store
	router *nav.Router
	auth   services.AuthService
	logger logging.Logger

	reader *bufio.Reader
	out    io.Writer
	loc    *time.Location
	now    func() time.Time

	loggingIn   bool
	page        *services.Page
	feed        *services.BlogFeed
	post        *services.BlogView
	postPath    string
	projects    *services.Collection[models.Project]
	experiences *services.Collection[models.Experience]
	blogs       *services.BlogManager
}

// NewApp opens the session database and builds the API client from cfg.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, cfg.LogLevel, logging.FormatText)

	db, err := storage.OpenDatabase(ctx, cfg.SessionDB)
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}

	store, err := session.NewStore(ctx, session.NewSQLiteBackend(db))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	router := nav.NewRouter("/")
	api := client.New(store, router,
		client.WithBaseURL(cfg.BaseURL),
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(logger),
	)

	a := newApp(api, store, router, logger, os.Stdin, os.Stdout)
	a.db = db
	return a, nil
}

func newApp(api *client.Client, store *session.Store, router *nav.Router, logger logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		api:    api,
		store:  store,
		router: router,
		auth:   services.NewAuthService(api.Auth, store),
		logger: logger,
		reader: bufio.NewReader(in),
		out:    out,
		loc:    time.Local,
		now:    time.Now,
	}
	router.OnNavigate(func(path string) {
		if path == common.LoginPath && !a.loggingIn {
			a.println("Login required. Type 'login' to sign in.")
		}
	})
	return a
}

// Run starts the REPL and blocks until the user leaves.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.println("Welcome to folio (type 'help' for commands)")
	a.println("API:", a.api.BaseURL())
	runREPL(ctx, a, a.prompt, bufio.NewScanner(a.reader))
}

// Close ends the current page and closes the session database.
func (a *App) Close() {
	if a.page != nil {
		a.page.Close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error(context.Background(), "failed to close session database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

func (a *App) prompt() string {
	who := ""
	if a.isLoggedIn() {
		who = " (admin)"
	}
	return fmt.Sprintf("folio %s%s>", a.router.Location(), who)
}

// enter moves to path, closing the previous page. Admin paths without a
// session end on the login page and return errLoginRequired.
func (a *App) enter(ctx context.Context, path string) (context.Context, error) {
	if a.page != nil && a.router.Location() != path {
		a.page.Close()
		a.page = nil
	}

	got := a.router.Enter(path, a.isLoggedIn)
	if got != path {
		return nil, errLoginRequired
	}

	if a.page == nil {
		a.page = services.OpenPage(ctx)
	}
	return a.page.Context(), nil
}

// stay returns the current page context if the user is still on path.
func (a *App) stay(path string) (context.Context, bool) {
	if a.page == nil || a.router.Location() != path {
		return nil, false
	}
	return a.page.Context(), true
}

// Back returns to the previous page. An admin page left behind by a logout
// resolves to the login page.
func (a *App) Back(ctx context.Context) error {
	if a.page != nil {
		a.page.Close()
		a.page = nil
	}
	path := a.router.Back(a.isLoggedIn)
	a.page = services.OpenPage(ctx)
	a.println("Now at", path)
	if path == common.LoginPath && !a.isLoggedIn() {
		return errLoginRequired
	}
	return nil
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
