package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/lurespread/internal/adapters/http/api"
	"github.com/okian/lurespread/internal/adapters/http/swagger"
	service "github.com/okian/lurespread/internal/app"
	"github.com/okian/lurespread/internal/config"
	"github.com/okian/lurespread/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.InitWithOptions(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := newService(cfg, log)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	go startServiceMetricsUpdater(ctx, svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}
	log.Info(shutdownCtx, "server stopped")
}

// newService maps the configuration onto service options.
func newService(cfg *config.Config, log logger.Logger) *service.Service {
	return service.New(
		service.WithLogger(log.Named("service")),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithQueueSize(cfg.QueueSize),
		service.WithCacheSize(cfg.CacheSize),
		service.WithCatalogPath(cfg.CatalogPath),
		service.WithReloadSchedule(cfg.CatalogReloadCron),
		service.WithRequestTimeout(time.Duration(cfg.RequestTimeoutMS)*time.Millisecond),
		service.WithMaxLines(cfg.MaxLines),
		service.WithThreshold(cfg.ScoreThreshold),
	)
}

// newMux registers the documentation and business routes.
func newMux(ctx context.Context, svc *service.Service) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)
	return mux
}

// startServiceMetricsUpdater refreshes the queue, worker and cache gauges
// between requests.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = svc.GetStats()
		}
	}
}
