package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	billingapp "github.com/stationery/backoffice/internal/application/billing"
	financingapp "github.com/stationery/backoffice/internal/application/financing"
	tradeapp "github.com/stationery/backoffice/internal/application/trade"
	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/infrastructure/auth"
	"github.com/stationery/backoffice/internal/infrastructure/cache"
	"github.com/stationery/backoffice/internal/infrastructure/config"
	"github.com/stationery/backoffice/internal/infrastructure/event"
	"github.com/stationery/backoffice/internal/infrastructure/logger"
	"github.com/stationery/backoffice/internal/infrastructure/migration"
	"github.com/stationery/backoffice/internal/infrastructure/persistence"
	"github.com/stationery/backoffice/internal/infrastructure/scheduler"
	"github.com/stationery/backoffice/internal/infrastructure/telemetry"
	"github.com/stationery/backoffice/internal/interfaces/http/handler"
	"github.com/stationery/backoffice/internal/interfaces/http/middleware"
	"github.com/stationery/backoffice/internal/interfaces/http/router"
	"github.com/stationery/backoffice/migrations"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 30 * time.Second

//	@title			Stationery Back Office API
//	@version		1.0
//	@description	Investment allocation, investor profit and payouts for the stationery back office

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Operator token. Format: "Bearer {token}"

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providers, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
		LogsEnabled:       cfg.Telemetry.LogsEnabled,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	log = providers.BridgeLogger(log, logger.ParseLevel(cfg.Log.Level))
	zap.ReplaceGlobals(log)

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	profiler.LinkSpans(providers)

	log.Info("Starting back office",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	if cfg.Database.AutoMigrate {
		if err := runMigrations(&cfg.Database, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	meter := providers.Meter(cfg.Telemetry.ServiceName)
	if err := telemetry.InstrumentGorm(db.DB, meter, telemetry.DBConfig{
		TraceEnabled:       cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:         cfg.Telemetry.DBLogFullSQL,
		SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
		DBName:             cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}

	// Repositories
	investorRepo := persistence.NewGormInvestorRepository(db.DB)
	investmentRepo := persistence.NewGormInvestmentRepository(db.DB)
	investorPaymentRepo := persistence.NewGormInvestorPaymentRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	purchaseOrderPaymentRepo := persistence.NewGormPurchaseOrderPaymentRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	inventoryItemRepo := persistence.NewGormInventoryItemRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	billPaymentRepo := persistence.NewGormPaymentRepository(db.DB)
	ledger := persistence.NewGormLedgerReader(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Domain services
	attribution, err := financing.ParseCollectionAttribution(cfg.Financing.CollectionAttribution)
	if err != nil {
		log.Fatal("Invalid financing configuration", zap.Error(err))
	}
	houseID := cfg.Financing.HouseInvestor()
	allocator := financing.NewAllocator(houseID, cfg.Financing.EpsilonDecimal())
	calculator := financing.NewProfitCalculator(attribution)

	// Application services
	investorService := financingapp.NewInvestorService(investorRepo, investmentRepo, log)
	allocationService := financingapp.NewAllocationService(allocator, investorRepo, investmentRepo, purchaseOrderRepo, log)
	profitService := financingapp.NewProfitService(calculator, investorRepo, investmentRepo, investorPaymentRepo, ledger)
	statisticsService := financingapp.NewStatisticsService(calculator, investorRepo, investmentRepo, investorPaymentRepo, ledger)
	orderProfitService := financingapp.NewOrderProfitService(salesOrderRepo, investorRepo, investmentRepo, ledger)
	payoutService := financingapp.NewPayoutService(txScope.Financing(), profitService, investorRepo, investorPaymentRepo, log)
	purchaseOrderService := tradeapp.NewPurchaseOrderService(
		txScope.Trade(),
		purchaseOrderRepo,
		purchaseOrderPaymentRepo,
		inventoryItemRepo,
		allocationService,
		log,
	)
	salesOrderService := tradeapp.NewSalesOrderService(txScope.Trade(), salesOrderRepo, inventoryItemRepo, log)
	billService := billingapp.NewBillService(txScope.Billing(), billRepo, billPaymentRepo, log)

	bootCtx, cancelBoot := context.WithTimeout(ctx, 10*time.Second)
	if err := investorService.EnsureHouseInvestor(bootCtx, houseID); err != nil {
		cancelBoot()
		log.Fatal("Failed to provision house investor", zap.Error(err), zap.String("house_investor_id", houseID.String()))
	}
	idempotencyStore := cache.NewIdempotencyStore(bootCtx, cfg.Redis, log)
	cancelBoot()
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()
	payoutService.SetIdempotencyStore(idempotencyStore, cfg.Financing.PayoutIdempotencyTTL)

	// Business metrics and the event bus that feeds them
	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:           meter,
		Logger:          log,
		PayableProvider: financingapp.NewPayableSnapshots(statisticsService),
	})
	if err != nil {
		log.Fatal("Failed to initialize business metrics", zap.Error(err))
	}

	eventBus := event.NewInMemoryEventBus(log)
	metricsHandler := event.NewDedupHandler(
		financingapp.NewMetricsEventHandler(businessMetrics, log),
		idempotencyStore,
		event.DefaultDedupTTL,
		log,
	)
	eventBus.Subscribe(metricsHandler, metricsHandler.EventTypes()...)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	payoutService.SetEventPublisher(eventBus)
	purchaseOrderService.SetEventPublisher(eventBus)

	// Background jobs
	var jobs *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobs = scheduler.New(scheduler.Config{JobTimeout: cfg.Scheduler.JobTimeout}, log.Named("scheduler"))
		if err := scheduler.RegisterPayableRefresh(jobs, cfg.Scheduler.PayableRefreshSchedule, businessMetrics); err != nil {
			log.Fatal("Failed to register scheduled jobs", zap.Error(err))
		}
		jobs.Start()
	}

	// HTTP
	var globalLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitRPS > 0 {
		globalLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)
		defer globalLimiter.Close()
	}
	var payoutMiddleware []gin.HandlerFunc
	if cfg.HTTP.PayoutRateLimitRPS > 0 {
		payoutLimiter := middleware.NewRateLimiter(cfg.HTTP.PayoutRateLimitRPS, max(1, int(cfg.HTTP.PayoutRateLimitRPS)))
		defer payoutLimiter.Close()
		payoutMiddleware = append(payoutMiddleware, middleware.RateLimit(payoutLimiter))
	}

	var authenticator gin.HandlerFunc
	if cfg.Auth.Enabled {
		tokens, err := auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
		if err != nil {
			log.Fatal("Failed to configure authentication", zap.Error(err))
		}
		authenticator = middleware.Authenticate(middleware.AuthConfig{
			Validator: tokens,
			SkipPaths: middleware.DefaultSkipPaths,
			Logger:    log,
		})
		payoutMiddleware = append(payoutMiddleware, middleware.RequireScope(auth.ScopePayouts))
	} else {
		log.Warn("Operator authentication disabled")
	}

	httpMeter := meter
	if !providers.Enabled() {
		httpMeter = nil
	}
	engine, err := router.NewEngine(router.EngineConfig{
		Mode:           ginMode(cfg.App.Env),
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: providers.Enabled(),
		Meter:          httpMeter,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		Profiling:      profiler.Enabled(),
		CORS:           middleware.CORSFromSettings(cfg.HTTP.CORSAllowOrigins, cfg.HTTP.CORSAllowMethods, cfg.HTTP.CORSAllowHeaders),
		TrustedProxies: cfg.HTTP.TrustedProxies,
		RateLimiter:    globalLimiter,
		Authenticator:  authenticator,
	}, log)
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	router.Mount(router.NewRouter(engine), router.Handlers{
		Investors:      handler.NewInvestorHandler(investorService, profitService, statisticsService),
		Payouts:        handler.NewPayoutHandler(payoutService),
		PurchaseOrders: handler.NewPurchaseOrderHandler(purchaseOrderService, allocationService),
		SalesOrders:    handler.NewSalesOrderHandler(salesOrderService, orderProfitService, billService),
		Bills:          handler.NewBillHandler(billService),
		System:         handler.NewSystemHandler(cfg.App.Name, version, db),
	}, payoutMiddleware...).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case err := <-serverErr:
		log.Error("Server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if jobs != nil {
		if err := jobs.Stop(shutdownCtx); err != nil {
			log.Error("Scheduler did not stop cleanly", zap.Error(err))
		}
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Event bus did not stop cleanly", zap.Error(err))
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Error("Telemetry shutdown failed", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Profiler shutdown failed", zap.Error(err))
	}
	log.Info("Server exited")
}

// runMigrations applies the embedded migrations on a dedicated connection;
// the migrator closes its connection when done.
func runMigrations(cfg *config.DatabaseConfig, log *zap.Logger) error {
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return err
	}
	m, err := migration.NewFromFS(sqlDB, migrations.FS, ".", log)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer m.Close()
	return m.Up()
}

func ginMode(env string) string {
	switch env {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
