package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/teresa-solution/site-builder-service/internal/api"
	"github.com/teresa-solution/site-builder-service/internal/catalog"
	"github.com/teresa-solution/site-builder-service/internal/config"
	"github.com/teresa-solution/site-builder-service/internal/lock"
	"github.com/teresa-solution/site-builder-service/internal/monitoring"
	"github.com/teresa-solution/site-builder-service/internal/render"
	"github.com/teresa-solution/site-builder-service/internal/service"
	"github.com/teresa-solution/site-builder-service/internal/store"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	tenantStore, err := store.Open(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Backend).Msg("Failed to open tenant store")
	}
	defer tenantStore.Close()

	if ms, ok := tenantStore.(*store.MongoStore); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := ms.EnsureIndexes(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to create tenant indexes")
		}
		cancel()
	}

	var locker lock.Locker = lock.NewLocalLocker()
	if cfg.Redis.Addr != "" {
		redisLocker := lock.NewRedisLocker(lock.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB), cfg.LockTTL)
		defer redisLocker.Close()
		locker = redisLocker
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Using Redis tenant locks")
	}

	tenantService := service.NewTenantService(tenantStore, catalog.Default(), locker)
	siteService := service.NewSiteService(tenantStore, render.NewRenderer(render.Default()))

	// Initialize metrics
	monitoring.InitMetrics()

	log.Info().Str("backend", cfg.Backend).Msg("Starting Site Builder Service")

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to listen")
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	go func() {
		log.Info().Msgf("gRPC health server listening at %v", lis.Addr())
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal().Err(err).Msg("Failed to start gRPC server")
		}
	}()

	probeCtx, stopProbe := context.WithCancel(context.Background())
	defer stopProbe()
	go watchStore(probeCtx, tenantStore, healthServer)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(tenantService, siteService, tenantStore),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Msgf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	healthServer.Shutdown()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	grpcServer.GracefulStop()
	log.Info().Msg("Server exiting")
}

func setupLogging(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

// watchStore keeps the gRPC health status in line with store reachability.
func watchStore(ctx context.Context, s store.TenantStore, hs *health.Server) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := s.Ping(pingCtx)
		cancel()

		status := healthpb.HealthCheckResponse_SERVING
		if err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
			log.Warn().Err(err).Msg("Tenant store unreachable")
		}
		hs.SetServingStatus("", status)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
