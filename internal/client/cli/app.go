package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/truekicks/internal/client/cart"
	"github.com/dmitrijs2005/truekicks/internal/client/client"
	"github.com/dmitrijs2005/truekicks/internal/client/config"
	"github.com/dmitrijs2005/truekicks/internal/client/connectivity"
	"github.com/dmitrijs2005/truekicks/internal/client/events"
	"github.com/dmitrijs2005/truekicks/internal/client/identity"
	"github.com/dmitrijs2005/truekicks/internal/client/models"
	"github.com/dmitrijs2005/truekicks/internal/client/repositories/kv"
	"github.com/dmitrijs2005/truekicks/internal/client/services"
	"github.com/dmitrijs2005/truekicks/internal/client/wishlist"
	"github.com/dmitrijs2005/truekicks/internal/filex"
	"github.com/dmitrijs2005/truekicks/internal/logging"
	"github.com/dmitrijs2005/truekicks/internal/money"

	_ "modernc.org/sqlite"
)

const dataDir = "data"

type authService interface {
	Register(ctx context.Context, fullName, email string, password []byte) (*models.Identity, error)
	Login(ctx context.Context, email string, password []byte) (*models.Identity, error)
	Logout(ctx context.Context) error
	ContinueAsGuest(ctx context.Context) error
	Current(ctx context.Context) (*models.Identity, error)
	Rename(ctx context.Context, fullName string) (*models.Identity, error)
}

type catalogService interface {
	Products(ctx context.Context) ([]models.Product, error)
	Sneakers(ctx context.Context) ([]models.Product, error)
	Apparel(ctx context.Context) ([]models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Detail(ctx context.Context, table string, id models.ID) (*models.Product, error)
}

type checkoutService interface {
	PlaceOrder(ctx context.Context, d services.ShippingDetails) (*models.Order, error)
	Orders(ctx context.Context) ([]models.Order, error)
}

type cartState interface {
	Add(ctx context.Context, item models.CartItem) error
	Remove(ctx context.Context, id models.ID, size string) error
	UpdateQuantity(ctx context.Context, id models.ID, size string, quantity models.Quantity) error
	Clear(ctx context.Context) error
	Items() []models.CartItem
	TotalPrice() money.Money
	TotalItems() int64
}

type wishlistState interface {
	Add(ctx context.Context, item models.WishlistItem) error
	Remove(ctx context.Context, id models.ID) error
	Contains(id models.ID) bool
	Items() []models.WishlistItem
}

type connectivityState interface {
	Start(ctx context.Context, online bool)
	State() connectivity.State
}

type connectivityWatcher interface {
	Probe(ctx context.Context) bool
	Run(ctx context.Context)
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	auth     authService
	catalog  catalogService
	checkout checkoutService
	cart     cartState
	wishlist wishlistState
	conn     connectivityState
	watcher  connectivityWatcher
	closers  []io.Closer
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens the local store and wires the client core. The cart and
// wishlist subscribe to identity changes before the watcher applies the
// initial online/offline state.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	path, err := filex.DataFilePath(dataDir, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error resolving database path: %w", err)
	}

	db, err := client.InitDatabase(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	pinger, err := client.NewHealthPinger(c.HealthAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	durable := kv.NewSQLiteRepository(db)
	session := kv.NewMemoryStore()
	bus := events.NewBus()
	resolver := identity.NewResolver(durable, logger)
	api := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)

	crt := cart.NewContainer(durable, resolver, bus, logger)
	crt.Listen(bus)
	wl := wishlist.NewContainer(durable, resolver, bus, logger)
	wl.Listen(bus)

	if err := crt.Initialize(ctx); err != nil {
		logger.Warn(ctx, "cart reset", "error", err)
	}
	if err := wl.Initialize(ctx); err != nil {
		logger.Warn(ctx, "wishlist reset", "error", err)
	}

	override := connectivity.NewOverride(durable, session, bus, logger)

	return &App{
		config:   c,
		logger:   logger,
		auth:     services.NewAuthService(api, durable, resolver, bus, logger),
		catalog:  services.NewCatalogService(api, durable, c.CacheMaxAge, logger),
		checkout: services.NewCheckoutService(api, resolver, crt, logger),
		cart:     crt,
		wishlist: wl,
		conn:     override,
		watcher:  connectivity.NewWatcher(pinger, override, c.OnlineCheckInterval, logger),
		closers:  []io.Closer{pinger, closerFunc(db.Close)},
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Run probes the server once, starts the connectivity watcher and blocks in
// the REPL until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.close()

	printlnFn("Welcome to TrueKicks CLI (type 'help' for commands)")

	a.conn.Start(ctx, a.watcher.Probe(ctx))
	go a.watcher.Run(ctx)

	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, bufio.NewScanner(a.reader))
}

func (a *App) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn(context.Background(), "close failed", "error", err)
		}
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	id, err := a.auth.Current(ctx)
	return err == nil && id != nil && !id.IsGuest() && !id.ID.Empty()
}

func (a *App) getStatus(ctx context.Context) string {
	s := "guest"
	if id, err := a.auth.Current(ctx); err == nil && id != nil && id.FullName != "" {
		s = id.FullName
	}
	if a.conn != nil {
		if st := a.conn.State(); st != connectivity.StateUnknown {
			s = s + " " + string(st)
		}
	}
	return fmt.Sprintf("(%s)", s)
}
