package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/caddie/internal/config"
	"github.com/mmynk/caddie/internal/location"
	"github.com/mmynk/caddie/internal/metrics"
	"github.com/mmynk/caddie/internal/middleware"
	"github.com/mmynk/caddie/internal/persistence"
	"github.com/mmynk/caddie/internal/repository"
	"github.com/mmynk/caddie/internal/service"
	"github.com/mmynk/caddie/internal/storage"
	"github.com/mmynk/caddie/internal/storage/redis"
	"github.com/mmynk/caddie/internal/storage/sqlite"
	"github.com/mmynk/caddie/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	repo := repository.Open(ctx, persistence.NewAdapter(store, m), repository.WithMetrics(m))
	svc := service.NewCaddieService(repo, location.NewTracker(), service.WithMaxSessions(cfg.MaxSessions))

	mux := http.NewServeMux()
	path, handler := service.NewHandler(svc, connect.WithInterceptors(middleware.LoggingInterceptor(m)))
	mux.Handle(path, handler)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// h2c serves HTTP/2 without TLS for Connect clients.
	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: h2c.NewHandler(middleware.Logging(middleware.CORS(mux)), &http2.Server{}),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	slog.Info("Connect server starting", "address", cfg.Addr, "store", cfg.Store, "clubs", len(repo.Clubs()))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	if cfg.Store == config.StoreRedis {
		store, err := redis.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisPrefix)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "redis", cfg.RedisAddr, "prefix", cfg.RedisPrefix)
		return store, nil
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	slog.Info("Storage initialized", "database", cfg.DBPath)
	return store, nil
}
