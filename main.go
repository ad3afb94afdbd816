package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appCustomer "github.com/Zhima-Mochi/minishop-checkout/internal/application/customer"
	appOrder "github.com/Zhima-Mochi/minishop-checkout/internal/application/order"
	appProduct "github.com/Zhima-Mochi/minishop-checkout/internal/application/product"
	"github.com/Zhima-Mochi/minishop-checkout/internal/config"
	"github.com/Zhima-Mochi/minishop-checkout/internal/infrastructure/id"
	infraobs "github.com/Zhima-Mochi/minishop-checkout/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/minishop-checkout/internal/infrastructure/observability/oteltrace"
	"github.com/Zhima-Mochi/minishop-checkout/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/minishop-checkout/internal/infrastructure/observability/telemetry"
	"github.com/Zhima-Mochi/minishop-checkout/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/minishop-checkout/internal/infrastructure/outbox"
	"github.com/Zhima-Mochi/minishop-checkout/internal/pkg/logging"
	httppresentation "github.com/Zhima-Mochi/minishop-checkout/internal/presentation/http"
	workerpresentation "github.com/Zhima-Mochi/minishop-checkout/internal/presentation/worker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	baseLogger := logging.MustNewLogger(cfg.ServiceName, cfg.Env, logging.Options{Level: cfg.LogLevel})
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	systemLogger := logging.WithTrace(baseLogger, logging.SystemTraceID, logging.SystemSpanID)

	if err := run(cfg, baseLogger, systemLogger); err != nil {
		systemLogger.Error("service_exit", zap.Error(err))
		_ = baseLogger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, baseLogger, systemLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Env,
		Exporter:    cfg.Tracing.Exporter,
		Endpoint:    cfg.Tracing.Endpoint,
	})
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	counters, histograms := prometrics.New(reg, "", "").Standard()

	appLogger := zaplogger.New(baseLogger)
	tel := infraobs.New(oteltrace.New(cfg.ServiceName), appLogger, counters, histograms)

	store, err := openStore(ctx, cfg, baseLogger)
	if err != nil {
		return err
	}
	systemLogger.Info("storage_ready", zap.String("driver", cfg.DB.Driver))

	// In-memory event bus (acts as outbox/event publisher)
	bus := outbox.NewBus(appLogger)
	bus.Start(ctx)

	appOrder.NewWorker(workerpresentation.NewSubscriber(bus, appLogger, tel), tel).Start()

	idGenerator := id.NewUUIDGenerator()
	customerService := appCustomer.NewService(store.customers, idGenerator, appLogger)
	productService := appProduct.NewService(store.products, idGenerator, appLogger)
	orderService := appOrder.NewService(store.orders, store.products, idGenerator, bus, appLogger)
	createOrder := appOrder.NewCreateOrderUseCase(store.orders, store.customers, store.products, idGenerator, bus, tel)

	if cfg.SeedDemo {
		if err := seedDemo(ctx, customerService); err != nil {
			return err
		}
		systemLogger.Info("demo_data_seeded")
	}

	handler := httppresentation.NewHandler(httppresentation.Deps{
		CreateOrder:   createOrder,
		Orders:        orderService,
		Customers:     customerService,
		Products:      productService,
		Metrics:       promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		Logger:        appLogger,
		Observability: tel,
	})

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.Router(),
	}

	runErr := serve(ctx, server, cfg.Shutdown, systemLogger)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown)
	defer cancel()

	if err := bus.Stop(shutdownCtx); err != nil {
		systemLogger.Warn("event_bus_stop_incomplete", zap.Error(err))
	}
	if err := store.close(); err != nil {
		systemLogger.Warn("storage_close_error", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		systemLogger.Warn("tracing_shutdown_error", zap.Error(err))
	}
	return runErr
}

// serve runs server until ctx is done or it fails to listen, then shuts it down.
// A listen failure is returned so the process exits non-zero.
func serve(ctx context.Context, server *http.Server, timeout time.Duration, logger *zap.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http_server_start",
			zap.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serveErr:
		if runErr != nil {
			logger.Error("http_server_error", zap.Error(runErr))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error",
			zap.Error(err),
		)
	} else {
		logger.Info("http_server_stopped")
	}
	return runErr
}
