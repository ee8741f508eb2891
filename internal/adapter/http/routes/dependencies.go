package routes

import (
	"context"
	"fmt"

	"automobile_shop/internal/adapter/http/handlers"
	"automobile_shop/internal/adapter/persistence/memory"
	"automobile_shop/internal/adapter/persistence/repository"
	"automobile_shop/internal/config"
	"automobile_shop/internal/infrastructure/database"
	"automobile_shop/internal/infrastructure/lock"
	"automobile_shop/internal/infrastructure/metrics"
	"automobile_shop/internal/infrastructure/payments"
	"automobile_shop/internal/infrastructure/pdf"
	"automobile_shop/internal/infrastructure/seed"
	"automobile_shop/internal/usecase"
	"automobile_shop/internal/usecase/interfaces"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type storage struct {
	appointments interfaces.IAppointmentRepository
	invoices     interfaces.IInvoiceRepository
	ledger       interfaces.IInventoryLedger
	payments     interfaces.IInvoicePaymentRepository
	catalog      interfaces.ICatalog
}

func buildHandlers(ctx context.Context, cfg config.Config, log *zap.Logger) (Handlers, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	st, err := buildStorage(ctx, cfg, log, &closers)
	if err != nil {
		cleanup()
		return Handlers{}, func() {}, err
	}

	locker, err := buildLocker(cfg, log, &closers)
	if err != nil {
		cleanup()
		return Handlers{}, func() {}, err
	}

	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer, cfg.Env)

	var gateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.PaymentGatewayMock, log)
	if err != nil {
		log.Warn("[payment] Mercado Pago gateway not configured", zap.Error(err))
	} else {
		gateway = mpGateway
	}

	return newHandlers(st, locker, gateway, recorder, cfg, log), cleanup, nil
}

func newHandlers(st storage, locker interfaces.ILocker, gateway interfaces.IPaymentGateway, recorder interfaces.IRecorder, cfg config.Config, log *zap.Logger) Handlers {
	appointmentUseCase := usecase.NewAppointmentUseCase(st.appointments, st.invoices, recorder, log)
	invoiceUseCase := usecase.NewInvoiceUseCase(usecase.InvoiceDependencies{
		Invoices:     st.invoices,
		Appointments: st.appointments,
		Ledger:       st.ledger,
		Catalog:      st.catalog,
		Locker:       locker,
		Renderer:     pdf.NewInvoiceRenderer(cfg.ShopName),
		Recorder:     recorder,
		Log:          log,
		Attempts:     cfg.PartUpdateAttempts,
	})
	paymentUseCase := usecase.NewInvoicePaymentUseCase(st.payments, invoiceUseCase, st.appointments, gateway, usecase.PaymentOptions{
		MockMode:        cfg.PaymentGatewayMock,
		AccessToken:     cfg.MercadoPagoAccessToken,
		TestPayerEmail:  cfg.MercadoPagoTestPayerEmail,
		TestPayerUserID: cfg.MercadoPagoTestPayerUserID,
	}, recorder, log)

	return Handlers{
		Appointments: handlers.NewAppointmentHandler(appointmentUseCase, invoiceUseCase, log),
		Invoices:     handlers.NewInvoiceHandler(invoiceUseCase, log),
		Payments:     handlers.NewInvoicePaymentHandler(paymentUseCase, cfg.PaymentGatewayMock, log),
	}
}

func buildStorage(ctx context.Context, cfg config.Config, log *zap.Logger, closers *[]func()) (storage, error) {
	var st storage

	// With DYNAMODB storage and no POSTGRES_DSN only the catalog half of the store
	// is read; cmd/seed writes the matching inventory.
	store := memory.NewStore()
	if cfg.SeedDemoData {
		seed.LoadMemory(store, seed.Demo())
	}
	switch cfg.StorageBackend {
	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, database.DynamoDBConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretKey,
			Endpoint:        cfg.DynamoDBEndpoint,
		})
		if err != nil {
			return storage{}, err
		}
		st.appointments = repository.NewAppointmentDynamoRepository(ddb, cfg.AppointmentsTable)
		st.invoices = repository.NewInvoiceDynamoRepository(ddb, cfg.InvoicesTable, cfg.InventoryTable)
		st.ledger = repository.NewInventoryDynamoLedger(ddb, cfg.InventoryTable)
		st.payments = repository.NewInvoicePaymentDynamoRepository(ddb, cfg.PaymentsTable)
		log.Info("[storage] dynamodb backend", zap.String("region", cfg.AWSRegion), zap.String("endpoint", cfg.DynamoDBEndpoint))
	default:
		st.appointments = memory.NewAppointmentRepository(store)
		st.invoices = memory.NewInvoiceRepository(store)
		st.ledger = memory.NewInventoryLedger(store)
		st.payments = memory.NewInvoicePaymentRepository(store)
		log.Info("[storage] memory backend", zap.Bool("demo_data", cfg.SeedDemoData))
	}

	if cfg.PostgresDSN == "" {
		st.catalog = memory.NewCatalog(store)
		return st, nil
	}

	pool, err := database.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		return storage{}, err
	}
	*closers = append(*closers, pool.Close)

	catalog := repository.NewCatalogPgRepository(pool)
	if err := catalog.Migrate(ctx); err != nil {
		return storage{}, fmt.Errorf("migrate catalog: %w", err)
	}
	st.catalog = catalog
	log.Info("[storage] postgres catalog")
	return st, nil
}

func buildLocker(cfg config.Config, log *zap.Logger, closers *[]func()) (interfaces.ILocker, error) {
	if cfg.LockBackend != config.LockRedis {
		return lock.NewLocalLocker(), nil
	}

	client, err := lock.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}
	*closers = append(*closers, func() { _ = client.Close() })
	log.Info("[lock] redis backend", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.LockTTL))
	return lock.NewRedisLocker(client, cfg.LockTTL), nil
}
