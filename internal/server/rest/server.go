package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/truekicks/internal/logging"
	"github.com/dmitrijs2005/truekicks/internal/server/repositories/products"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address string
	engine  *gin.Engine
	logger  logging.Logger
}

// NewServer builds the gin engine with CORS for origins and all storefront
// routes registered.
func NewServer(address string, origins []string, l logging.Logger, catalog CatalogService, users UserService, orders OrderService) *Server {
	logger := l.With("module", "rest_server")

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	r.Use(cors.New(corsConfig(origins)))

	h := &handlers{catalog: catalog, users: users, orders: orders}

	r.GET("/", h.root)

	api := r.Group("/api")
	{
		for _, table := range products.Tables {
			api.GET("/"+table, h.listTable(table))
		}
		api.GET("/categories", h.categories)
		api.GET("/detail/:table/:id", h.detail)

		api.POST("/register", h.register)
		api.POST("/login", h.login)

		api.POST("/orders", authenticate(users, false), h.placeOrder)
		api.GET("/orders/user/:id", authenticate(users, true), h.userOrders)
	}

	return &Server{address: address, engine: r, logger: logger}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
