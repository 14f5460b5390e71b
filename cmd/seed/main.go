package main

import (
	"context"

	"go.uber.org/zap"

	"luzeouro/internal/config"
	"luzeouro/internal/db"
	productrepo "luzeouro/internal/repository/product"
	"luzeouro/internal/seed"
	productsvc "luzeouro/internal/service/product"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.Named("seed")

	cfg, err := config.Load(".env")
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	products := productsvc.New(productrepo.NewPostgres(pool, logger), nil)
	if err := seed.Apply(ctx, products, logger); err != nil {
		logger.Fatal("seed apply", zap.Error(err))
	}
}
