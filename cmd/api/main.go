package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"luzeouro/internal/config"
	"luzeouro/internal/db"
	"luzeouro/internal/events"
	"luzeouro/internal/httpserver"
	"luzeouro/internal/postal"
	cartrepo "luzeouro/internal/repository/cart"
	categoryrepo "luzeouro/internal/repository/category"
	favoriterepo "luzeouro/internal/repository/favorite"
	orderrepo "luzeouro/internal/repository/order"
	productrepo "luzeouro/internal/repository/product"
	profilerepo "luzeouro/internal/repository/profile"
	tokenrepo "luzeouro/internal/repository/token"
	userrepo "luzeouro/internal/repository/user"
	cartsvc "luzeouro/internal/service/cart"
	categorysvc "luzeouro/internal/service/category"
	"luzeouro/internal/service/checkout"
	favoritesvc "luzeouro/internal/service/favorite"
	ordersvc "luzeouro/internal/service/order"
	productsvc "luzeouro/internal/service/product"
	profilesvc "luzeouro/internal/service/profile"
	"luzeouro/internal/service/session"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(".env")
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	lookup, closeCache := postalLookup(ctx, cfg, logger)
	defer closeCache()

	publisher, closePublisher := orderPublisher(cfg, logger)
	defer closePublisher()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	categoryService := categorysvc.New(categoryrepo.NewPostgres(dbpool))
	profileRepo := profilerepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	rules := checkout.DefaultRules()
	rules.PaymentMethods = cfg.PaymentMethods
	rules.RequireNumber = cfg.RequireNumber
	rules.MinAddressLength = cfg.MinAddressLength

	cartService := cartsvc.New(cartsvc.Deps{
		Carts:     cartrepo.NewPostgres(dbpool, logger),
		Orders:    orderRepo,
		Lookup:    lookup,
		Validator: checkout.NewValidator(rules),
		Publisher: publisher,
		Policy:    cfg.Shipping,
		Logger:    logger,
	})

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Session:    session.New(userrepo.NewPostgres(dbpool, logger), profileRepo, tokenrepo.NewPostgres(dbpool), logger),
		Categories: categoryService,
		Products:   productsvc.New(productRepo, categoryService),
		Profiles:   profilesvc.New(profileRepo),
		Carts:      cartService,
		Orders:     ordersvc.New(orderRepo),
		Favorites:  favoritesvc.New(favoriterepo.NewPostgres(dbpool)),
	}, httpserver.Options{
		PhotoBaseURL: cfg.PhotoBaseURL,
		CORSOrigins:  cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}

// postalLookup uses Redis for the lookup cache when REDIS_ADDR is set and
// an in-process LRU otherwise.
func postalLookup(ctx context.Context, cfg config.Config, logger *zap.Logger) (postal.Lookuper, func()) {
	client := postal.NewClient(cfg.PostalLookupURL, cfg.PostalTimeout)
	if cfg.RedisAddr == "" {
		return postal.NewCachedLookup(client, postal.NewMemoryCache(4096, cfg.PostalCacheTTL), logger), func() {}
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, using in-process cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = rdb.Close()
		return postal.NewCachedLookup(client, postal.NewMemoryCache(4096, cfg.PostalCacheTTL), logger), func() {}
	}
	return postal.NewCachedLookup(client, postal.NewRedisCache(rdb, cfg.PostalCacheTTL), logger), func() { _ = rdb.Close() }
}

// orderPublisher connects to RabbitMQ when RABBITMQ_URL is set. Without a
// broker, order events are dropped.
func orderPublisher(cfg config.Config, logger *zap.Logger) (events.OrderPublisher, func()) {
	if cfg.RabbitURL == "" {
		return events.Nop{}, func() {}
	}
	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		logger.Warn("rabbitmq unavailable, order events disabled", zap.Error(err))
		return events.Nop{}, func() {}
	}
	pub, err := events.NewPublisher(conn)
	if err != nil {
		logger.Warn("declare order queue", zap.Error(err))
		_ = conn.Close()
		return events.Nop{}, func() {}
	}
	return pub, func() {
		_ = pub.Close()
		_ = conn.Close()
	}
}
