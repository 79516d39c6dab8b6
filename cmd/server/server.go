package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/age-toolbox/internal/config"
	"github.com/KirkDiggler/age-toolbox/internal/errors"
	v1 "github.com/KirkDiggler/age-toolbox/internal/handlers/api/v1"
	dicesvc "github.com/KirkDiggler/age-toolbox/internal/orchestrators/dice"
	stuntsvc "github.com/KirkDiggler/age-toolbox/internal/orchestrators/stunt"
	"github.com/KirkDiggler/age-toolbox/internal/pkg/clock"
	"github.com/KirkDiggler/age-toolbox/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/age-toolbox/internal/redis"
	rollhistory "github.com/KirkDiggler/age-toolbox/internal/repositories/roll_history"
	stuntrepo "github.com/KirkDiggler/age-toolbox/internal/repositories/stunt"
	"github.com/KirkDiggler/age-toolbox/internal/seed"
)

const (
	shutdownTimeout    = 30 * time.Second
	pingTimeout        = 2 * time.Second
	healthPollInterval = 15 * time.Second
)

var (
	httpAddr   string
	grpcPort   int
	storage    string
	redisAddr  string
	sqlitePath string
	seedFile   string
	staticDir  string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API server",
	Long: `Start the AGE Toolbox HTTP API. Configuration comes from AGE_* environment
variables; flags override them.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().StringVar(&httpAddr, "addr", "", "HTTP listen address (AGE_HTTP_ADDR)")
	serverCmd.Flags().IntVar(&grpcPort, "grpc-port", 0, "gRPC health port, 0 disables (AGE_GRPC_PORT)")
	serverCmd.Flags().StringVar(&storage, "storage", "", "stunt storage: redis or sqlite (AGE_STORAGE)")
	serverCmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address (AGE_REDIS_ADDR)")
	serverCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite database path (AGE_SQLITE_PATH)")
	serverCmd.Flags().StringVar(&seedFile, "seed", "", "TOML stunt catalog loaded into an empty store (AGE_SEED_FILE)")
	serverCmd.Flags().StringVar(&staticDir, "static", "", "frontend build directory (AGE_STATIC_DIR)")
}

// loadConfig reads the environment and applies any flags that were set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.HTTPAddr = httpAddr
	}
	if flags.Changed("grpc-port") {
		cfg.GRPCPort = grpcPort
	}
	if flags.Changed("storage") {
		cfg.Storage = storage
	}
	if flags.Changed("redis") {
		cfg.RedisAddr = redisAddr
	}
	if flags.Changed("sqlite") {
		cfg.SQLitePath = sqlitePath
	}
	if flags.Changed("seed") {
		cfg.SeedFile = seedFile
	}
	if flags.Changed("static") {
		cfg.StaticDir = staticDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// backend is the storage wiring chosen by configuration
type backend struct {
	stunts  stuntrepo.Repository
	history rollhistory.Repository
	check   v1.HealthCheck
	close   func()
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		return openSQLite(ctx, cfg)
	default:
		return openRedis(ctx, cfg)
	}
}

func openRedis(ctx context.Context, cfg *config.Config) (*backend, error) {
	client, err := redisclient.NewClient(cfg.RedisAddr, &redisclient.Options{
		PoolSize: cfg.RedisPoolSize,
	})
	if err != nil {
		return nil, err
	}

	closeClient := func() {
		if err := client.Close(); err != nil {
			slog.Warn("Failed to close redis client", "error", err)
		}
	}

	if err := redisclient.Ping(ctx, client, pingTimeout); err != nil {
		closeClient()
		return nil, err
	}

	stunts, err := stuntrepo.NewRedis(&stuntrepo.RedisConfig{Client: client})
	if err != nil {
		closeClient()
		return nil, err
	}
	history, err := rollhistory.NewRedis(&rollhistory.RedisConfig{Client: client, TTL: cfg.HistoryTTL})
	if err != nil {
		closeClient()
		return nil, err
	}

	slog.Info("Using redis storage", "addr", cfg.RedisAddr)
	return &backend{
		stunts:  stunts,
		history: history,
		check: func(ctx context.Context) error {
			return redisclient.Ping(ctx, client, pingTimeout)
		},
		close: closeClient,
	}, nil
}

func openSQLite(ctx context.Context, cfg *config.Config) (*backend, error) {
	db, err := stuntrepo.OpenSQLite(cfg.SQLitePath)
	if err != nil {
		return nil, err
	}

	closeDB := func() {
		if err := db.Close(); err != nil {
			slog.Warn("Failed to close sqlite database", "error", err)
		}
	}

	stunts, err := stuntrepo.NewSQLite(ctx, &stuntrepo.SQLiteConfig{DB: db})
	if err != nil {
		closeDB()
		return nil, err
	}

	slog.Info("Using sqlite storage", "path", cfg.SQLitePath)
	return &backend{
		stunts:  stunts,
		history: rollhistory.NewMemory(&rollhistory.MemoryConfig{TTL: cfg.HistoryTTL}),
		check:   pingDB(db),
		close:   closeDB,
	}, nil
}

func pingDB(db *sql.DB) v1.HealthCheck {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return errors.WrapWithCode(err, errors.CodeUnavailable, "sqlite unreachable")
		}
		return nil
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.close()

	diceService, err := dicesvc.NewOrchestrator(&dicesvc.Config{
		Roller:      dice.DefaultRoller,
		HistoryRepo: store.history,
		IDGenerator: idgen.NewUUID("roll"),
		Clock:       clock.New(),
	})
	if err != nil {
		return fmt.Errorf("failed to create dice service: %w", err)
	}

	stuntService, err := stuntsvc.NewOrchestrator(&stuntsvc.Config{StuntRepo: store.stunts})
	if err != nil {
		return fmt.Errorf("failed to create stunt service: %w", err)
	}

	if cfg.SeedFile != "" {
		if err := seedCatalog(ctx, stuntService, cfg.SeedFile); err != nil {
			return err
		}
	}

	diceHandler, err := v1.NewDiceHandler(&v1.DiceHandlerConfig{DiceService: diceService})
	if err != nil {
		return fmt.Errorf("failed to create dice handler: %w", err)
	}
	stuntHandler, err := v1.NewStuntHandler(&v1.StuntHandlerConfig{StuntService: stuntService})
	if err != nil {
		return fmt.Errorf("failed to create stunt handler: %w", err)
	}

	router, err := v1.NewRouter(&v1.RouterConfig{
		DiceHandler:  diceHandler,
		StuntHandler: stuntHandler,
		HealthCheck:  store.check,
		CORSOrigins:  cfg.CORSOrigins,
		StaticDir:    cfg.StaticDir,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create router: %w", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 2)
	go func() {
		slog.Info("HTTP server starting", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server failed: %w", err)
		}
	}()

	var grpcServer *grpc.Server
	var healthServer *health.Server
	if cfg.GRPCEnabled() {
		grpcServer, healthServer, err = startGRPC(ctx, cfg.GRPCPort, store.check, errChan)
		if err != nil {
			return err
		}
	}

	select {
	case <-ctx.Done():
		slog.Info("Received shutdown signal, gracefully stopping")
	case err := <-errChan:
		slog.Error("Server failed", "error", err)
		shutdown(httpServer, grpcServer, healthServer)
		return err
	}

	shutdown(httpServer, grpcServer, healthServer)
	return nil
}

func seedCatalog(ctx context.Context, svc stuntsvc.Service, path string) error {
	file, err := seed.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load seed file: %w", err)
	}

	result, err := seed.Run(ctx, svc, file)
	if err != nil {
		return fmt.Errorf("failed to seed stunts: %w", err)
	}
	if !result.Skipped {
		slog.Info("Seeded stunt catalog", "path", path, "created", result.Created)
	}
	return nil
}

func startGRPC(ctx context.Context, port int, check v1.HealthCheck, errChan chan<- error) (*grpc.Server, *health.Server, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to listen: %w", err)
	}

	recoveryOpt := grpc_recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
		slog.ErrorContext(ctx, "Panic recovered in gRPC handler", "panic", p)
		return errors.ToGRPCError(errors.Internalf("panic: %v", p))
	})

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(recoveryOpt),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(recoveryOpt),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	reflection.Register(srv)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	go watchHealth(ctx, healthServer, check, healthPollInterval)

	go func() {
		slog.Info("gRPC health server starting", "port", port)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("grpc server failed: %w", err)
		}
	}()

	return srv, healthServer, nil
}

// watchHealth mirrors the storage health check into the gRPC health service
// until ctx is done
func watchHealth(ctx context.Context, hs *health.Server, check v1.HealthCheck, interval time.Duration) {
	if check == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			status := grpc_health_v1.HealthCheckResponse_SERVING
			if err := check(ctx); err != nil {
				slog.Warn("Storage health check failed", "error", err)
				status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
			}
			hs.SetServingStatus("", status)
		}
	}
}

func shutdown(httpServer *http.Server, grpcServer *grpc.Server, healthServer *health.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if healthServer != nil {
		healthServer.Shutdown()
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown incomplete", "error", err)
	}

	if grpcServer == nil {
		slog.Info("Server stopped gracefully")
		return
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
		grpcServer.Stop()
	case <-stopped:
		slog.Info("Server stopped gracefully")
	}
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Default().Log(ctx, slog.Level(level), msg, fields...)
}
