package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	grpcadapter "github.com/andrescamacho/craftchain-go/internal/adapters/grpc"
	"github.com/andrescamacho/craftchain-go/internal/adapters/httpapi"
	"github.com/andrescamacho/craftchain-go/internal/adapters/metrics"
	"github.com/andrescamacho/craftchain-go/internal/application/common"
	"github.com/andrescamacho/craftchain-go/internal/application/mediator"
	"github.com/andrescamacho/craftchain-go/internal/application/middleware"
	"github.com/andrescamacho/craftchain-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/craftchain-go/internal/infrastructure/config"
	"github.com/andrescamacho/craftchain-go/internal/infrastructure/logging"
	"github.com/andrescamacho/craftchain-go/internal/infrastructure/pidfile"
)

func main() {
	os.Exit(daemonMain(os.Args[1:]))
}

// daemonMain returns the process exit code once every deferred cleanup has run.
func daemonMain(args []string) int {
	flags := flag.NewFlagSet("craftchain-daemon", flag.ContinueOnError)
	configPath := flags.String("config", "", "Path to config file")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	fmt.Println("craftchain daemon")
	fmt.Println("=================")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		log.Printf("Failed to initialize logger: %v", err)
		return 1
	}
	defer logger.Close()

	if cfg.Server.PIDFile != "" {
		pf := pidfile.New(cfg.Server.PIDFile)
		if err := pf.Acquire(); err != nil {
			log.Printf("Failed to acquire PID file lock: %v", err)
			return 1
		}
		defer func() {
			if err := pf.Release(); err != nil {
				log.Printf("Warning: failed to release PID file: %v", err)
			}
		}()
		fmt.Printf("PID file lock acquired: %s\n", pf.Path())
	}

	if err := run(cfg, logger); err != nil {
		logger.Log(common.LevelError, "Daemon stopped with error", map[string]interface{}{
			"action": "daemon_failed",
			"error":  err.Error(),
		})
		return 1
	}
	return 0
}

func run(cfg *config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Metrics (optional)
	var (
		registry    *prometheus.Registry
		middlewares []mediator.Middleware
		catalogPoll *metrics.CatalogMetricsCollector
	)
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		registry = metrics.GetRegistry()

		planner := metrics.NewPlannerMetricsCollector()
		if err := planner.Register(); err != nil {
			return fmt.Errorf("failed to register planner metrics: %w", err)
		}
		metrics.SetGlobalPlannerCollector(planner)

		commands := metrics.NewCommandMetricsCollector()
		if err := commands.Register(); err != nil {
			return fmt.Errorf("failed to register request metrics: %w", err)
		}
		middlewares = append(middlewares, metrics.PrometheusMiddleware(commands))
		fmt.Println("Metrics enabled")
	}

	// 2. Rate limiting runs inside metrics so rejected requests are counted
	middlewares = append(middlewares, middleware.RateLimitMiddleware(cfg.Server.RateLimit, cfg.Server.Burst))

	// 3. Application wiring
	rt, err := bootstrap.New(cfg, logger, bootstrap.Options{Middlewares: middlewares})
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.Warm(ctx); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	fmt.Printf("Catalog loaded from %s source\n", cfg.Catalog.Source)

	if cfg.Metrics.Enabled {
		catalogPoll = metrics.NewCatalogMetricsCollector(rt.Provider, cfg.Metrics.PollInterval)
		if err := catalogPoll.Register(); err != nil {
			return fmt.Errorf("failed to register catalog metrics: %w", err)
		}
		catalogPoll.Start(ctx)
		defer catalogPoll.Stop()
	}

	// 4. Listeners
	httpListener, err := net.Listen("tcp", cfg.Server.HTTPAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.HTTPAddress, err)
	}
	grpcListener, err := net.Listen("tcp", cfg.Server.GRPCAddress)
	if err != nil {
		httpListener.Close()
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.GRPCAddress, err)
	}

	httpServer := httpapi.NewServer(cfg.Server.HTTPAddress, rt.Service, logger, registry)
	grpcServer := grpcadapter.NewPlannerServer(rt.Service, logger)

	errCh := make(chan error, 2)
	go func() { errCh <- httpServer.Serve(httpListener) }()
	go func() { errCh <- grpcServer.Serve(grpcListener) }()

	fmt.Printf("REST API on http://%s\n", httpListener.Addr())
	fmt.Printf("gRPC on %s\n", grpcListener.Addr())

	// 5. Wait for a signal or a server failure
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Log(common.LevelInfo, "Shutdown signal received", map[string]interface{}{
			"action": "daemon_shutdown",
		})
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Log(common.LevelWarn, "HTTP shutdown incomplete", map[string]interface{}{
			"action": "http_shutdown",
			"error":  err.Error(),
		})
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		logger.Log(common.LevelWarn, "gRPC shutdown timed out", map[string]interface{}{
			"action": "grpc_shutdown",
		})
		grpcServer.Stop()
	}

	fmt.Println("Daemon stopped")
	return serveErr
}
