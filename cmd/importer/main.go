package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"luzeouro/internal/config"
	"luzeouro/internal/db"
	"luzeouro/internal/importer"
	categoryrepo "luzeouro/internal/repository/category"
	productrepo "luzeouro/internal/repository/product"
	categorysvc "luzeouro/internal/service/category"
	productsvc "luzeouro/internal/service/product"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a product or category CSV file")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.Named("importer")

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

	kind, err := detect(filePath)
	if err != nil {
		logger.Fatal("detect csv kind", zap.String("file", filePath), zap.Error(err))
	}

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal("open file", zap.Error(err))
	}
	defer f.Close()

	categories := categorysvc.New(categoryrepo.NewPostgres(pool))
	products := productsvc.New(productrepo.NewPostgres(pool, logger), categories)
	imp := importer.NewCSVImporter(f, products, categories)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal("import failed", zap.Int("imported", count), zap.Error(err))
	}

	fmt.Printf("Imported %d %s in %s\n", count, kind, time.Since(start).Truncate(time.Millisecond))
}

func detect(path string) (importer.Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return importer.DetectKind(f)
}
