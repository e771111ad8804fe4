package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/joseph-ayodele/freight-orders/internal/common"
	"github.com/joseph-ayodele/freight-orders/internal/core"
	"github.com/joseph-ayodele/freight-orders/internal/core/async"
	"github.com/joseph-ayodele/freight-orders/internal/export"
	"github.com/joseph-ayodele/freight-orders/internal/ingest"
	repo "github.com/joseph-ayodele/freight-orders/internal/repository"
	svc "github.com/joseph-ayodele/freight-orders/internal/server"
)

func main() {
	// Setup structured logger that outputs messages with variables but no time/level
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove time and level attributes, keep message and other variables
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	addr := cfg.Server.GRPCAddr
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbResult, err := repo.InitDatabase(ctx, cfg, false, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err, "driver", cfg.Database.Driver)
		os.Exit(1)
	}
	defer dbResult.Cleanup()

	// Ping DB to ensure connectivity
	if err := repo.HealthCheck(ctx, dbResult.DB, 5*time.Second, logger); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	engine, err := core.NewEngine(cfg.Extraction, logger)
	if err != nil {
		logger.Error("failed to configure extraction", "error", err)
		os.Exit(2)
	}
	ordersRepo := repo.NewOrderRepository(dbResult.DB, logger)
	processor := core.NewProcessor(logger, core.NewTextExtractor(cfg.Text, logger), engine, ordersRepo)

	queue := async.NewProcessorQueue(processor, logger,
		async.WithWorkers(cfg.Server.Workers),
		async.WithQueueSize(cfg.Server.QueueSize),
		async.WithProcessTimeout(cfg.Server.ProcessTimeout),
	)

	// Optional drop folder: every new PDF/TXT is queued for extraction
	if dir := os.Getenv("WATCH_DIR"); dir != "" {
		events, _, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:       []string{dir},
			InitialScan: true,
			Debounce:    500 * time.Millisecond,
		}, logger)
		if err != nil {
			logger.Error("failed to watch directory", "dir", dir, "error", err)
			os.Exit(1)
		}
		go func() {
			for path := range events {
				if err := queue.Enqueue(ctx, async.Job{Path: path}); err != nil {
					logger.Warn("dropping watched file", "path", path, "error", err)
				}
			}
		}()
		logger.Info("watching drop folder", "dir", dir)
	}

	// gRPC server
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("failed to listen on address", "addr", addr, "error", err)
		os.Exit(1)
	}
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(svc.RequestLogger(logger)))

	orderService := svc.NewOrderService(processor, ordersRepo, export.NewService(ordersRepo, logger), logger)
	svc.RegisterOrderExtractionServer(grpcServer, orderService)

	// Register gRPC health service
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	// Set the service as serving (empty string means overall server health)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(svc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	logger.Info("freight-orders listening", "addr", addr)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			slog.Error("gRPC serve error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	healthServer.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	queue.Shutdown(shutdownCtx)
	grpcServer.GracefulStop()
}
