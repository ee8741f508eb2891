// Command seed writes the demo parts, mechanics and inventory to the configured
// Postgres catalog and DynamoDB inventory table.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"automobile_shop/internal/adapter/persistence/repository"
	"automobile_shop/internal/config"
	"automobile_shop/internal/infrastructure/database"
	"automobile_shop/internal/infrastructure/logger"
	"automobile_shop/internal/infrastructure/seed"

	"go.uber.org/zap"
)

func main() {
	seedValue := flag.Uint64("seed", seed.DemoSeed, "random seed; the API's in-memory catalog uses the default")
	parts := flag.Int("parts", seed.DemoParts, "number of parts")
	mechanics := flag.Int("mechanics", seed.DemoMechanics, "number of mechanics")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var catalog seed.CatalogWriter
	if cfg.PostgresDSN != "" {
		pool, err := database.ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			zlog.Fatal("[seed] postgres connect failed", zap.Error(err))
		}
		defer pool.Close()

		pg := repository.NewCatalogPgRepository(pool)
		if err := pg.Migrate(ctx); err != nil {
			zlog.Fatal("[seed] catalog migrate failed", zap.Error(err))
		}
		catalog = pg
	}

	var inventory seed.InventoryWriter
	if cfg.StorageBackend == config.StorageDynamoDB {
		ddb, err := database.ConnectDynamoDB(ctx, database.DynamoDBConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretKey,
			Endpoint:        cfg.DynamoDBEndpoint,
		})
		if err != nil {
			zlog.Fatal("[seed] dynamodb connect failed", zap.Error(err))
		}
		inventory = repository.NewInventoryDynamoLedger(ddb, cfg.InventoryTable)
	}

	if catalog == nil && inventory == nil {
		zlog.Fatal("[seed] nothing to seed: set POSTGRES_DSN and/or STORAGE_BACKEND=dynamodb")
	}

	d := seed.Generate(*seedValue, *parts, *mechanics)
	if err := seed.Load(ctx, catalog, inventory, d); err != nil {
		zlog.Fatal("[seed] load failed", zap.Error(err))
	}
	zlog.Info("[seed] done",
		zap.Int("parts", len(d.Parts)),
		zap.Int("mechanics", len(d.Mechanics)),
		zap.Bool("catalog", catalog != nil),
		zap.Bool("inventory", inventory != nil),
	)
}
