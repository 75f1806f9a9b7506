// Package cli is the interactive consumer of the catalog's data layer:
// a REPL that drives the auth and favorites services, the listing query
// pipeline, and the admin CRUD passthrough. It owns rendering only; all
// state and invariants live in the services it calls.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	"github.com/azhark/cottagecatalog/internal/client/api"
	"github.com/azhark/cottagecatalog/internal/client/config"
	"github.com/azhark/cottagecatalog/internal/client/i18n"
	"github.com/azhark/cottagecatalog/internal/client/localdb"
	"github.com/azhark/cottagecatalog/internal/client/query"
	"github.com/azhark/cottagecatalog/internal/client/repositories/favcache"
	"github.com/azhark/cottagecatalog/internal/client/services"
	"github.com/azhark/cottagecatalog/internal/client/session"
	"github.com/azhark/cottagecatalog/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config    *config.Config
	api       api.Client
	auth      services.AuthService
	favorites services.FavoritesService
	t         i18n.TranslateFunc
	log       logging.Logger
	reader    *bufio.Reader
	db        *sql.DB

	// Listing view state, mirroring what the catalog page keeps between
	// interactions.
	page   int
	filter query.Filter
	sortBy query.SortKey
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := localdb.Open(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing local database", "error", err)
		return nil, err
	}

	store := session.NewStore(db, log)

	// The API client reads the bearer token through the auth service, which
	// does not exist yet at this point; the indirection breaks the cycle.
	var auth services.AuthService
	apiClient := api.NewRESTClient(c.APIBaseURL, c.RequestTimeout, func() string {
		if auth == nil {
			return ""
		}
		return auth.Token()
	}, log)

	auth = services.NewAuthService(ctx, apiClient, store, log)
	favs := services.NewFavoritesService(apiClient, favcache.NewSQLiteRepository(db), log)

	return &App{
		config:    c,
		api:       apiClient,
		auth:      auth,
		favorites: favs,
		t:         i18n.Default(),
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
		db:        db,
		page:      1,
		sortBy:    query.SortNewest,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	return a.auth.IsAdmin()
}

func (a *App) status() string {
	u := a.auth.CurrentUser()
	if u == nil {
		return ""
	}
	s := u.FullName()
	if a.isAdmin() {
		s += " [admin]"
	}
	return "(" + s + ")"
}
