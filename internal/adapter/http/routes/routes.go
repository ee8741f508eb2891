package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "automobile_shop/docs" // swag generated
	"automobile_shop/internal/adapter/http/handlers"
	"automobile_shop/internal/config"
	"automobile_shop/internal/infrastructure/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers are the HTTP entry points mounted under /v1.
type Handlers struct {
	Appointments *handlers.AppointmentHandler
	Invoices     *handlers.InvoiceHandler
	Payments     *handlers.InvoicePaymentHandler
}

// Run will start the server
func Run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	h, cleanup, err := buildHandlers(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           NewRouter(h, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("[http] listening", zap.String("port", cfg.HTTPPort), zap.String("env", cfg.Env))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to startup the application: %w", err)
	case <-ctx.Done():
	}

	log.Info("[http] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter builds the gin engine with docs, metrics and the /v1 routes.
func NewRouter(h Handlers, log *zap.Logger) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, log)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addAppointmentRoutes(v1, h.Appointments)
	addInvoiceRoutes(v1, h.Invoices)
	addPaymentRoutes(v1, h.Payments)
	return router
}

func setMiddlewares(router *gin.Engine, log *zap.Logger) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("[http] recovered from panic",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
