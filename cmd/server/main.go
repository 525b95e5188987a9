// Package main starts the reference storefront API server, wiring
// configuration, logging, storage, services and HTTP routes.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/hansshop/storefront/internal/config"
	"github.com/hansshop/storefront/internal/db"
	"github.com/hansshop/storefront/internal/logger"
	"github.com/hansshop/storefront/internal/repository"
	"github.com/hansshop/storefront/internal/server/handler/http"
	"github.com/hansshop/storefront/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	options := config.Parse()

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Storage: Postgres when a DSN is configured, in-memory otherwise.
	var (
		authRepo    service.AuthRepository
		productRepo service.ProductRepository
		cartRepo    service.CartRepository
		orderRepo   service.OrderRepository
	)
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}

		// Abandoned anonymous carts accumulate forever otherwise.
		db.StartStaleCartCleaner(context.Background(), postgresDB,
			time.Hour,      // interval
			7*24*time.Hour, // retention: 7 days
			zapLogger,
		)

		authRepo = repository.NewPostgresAuthRepository(postgresDB)
		productRepo = repository.NewPostgresProductRepository(postgresDB)
		cartRepo = repository.NewPostgresCartRepository(postgresDB)
		orderRepo = repository.NewPostgresOrderRepository(postgresDB)
	} else {
		zapLogger.Info("no database DSN configured, using in-memory stores")
		authRepo = repository.NewMemoryAuthRepository()
		productRepo = repository.NewMemoryProductRepository()
		cartRepo = repository.NewMemoryCartRepository()
		orderRepo = repository.NewMemoryOrderRepository()
	}

	authService := service.NewAuthService(authRepo)
	catalogService := service.NewCatalogService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	ordersService := service.NewOrdersService(orderRepo, cartRepo)

	router := http.NewRouter(
		&http.AuthHandler{AuthService: authService},
		&http.ProductsHandler{CatalogService: catalogService},
		&http.CartHandler{CartService: cartService},
		&http.OrdersHandler{OrdersService: ordersService},
		authService,
		zapLogger,
	)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
