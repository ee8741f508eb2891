package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "automobile_shop/docs"
	"automobile_shop/internal/adapter/http/routes"
	"automobile_shop/internal/config"
	"automobile_shop/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// @title           Automobile Shop API
// @version         1.0
// @description     Appointment lifecycle, invoices and payments for the garage.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := routes.Run(ctx, cfg, zlog); err != nil {
		zlog.Fatal("[http] server stopped", zap.Error(err))
	}
}
