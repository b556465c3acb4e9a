package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"kuckmal/internal/common/pagination"
	seccfg "kuckmal/internal/config"
	"kuckmal/internal/repository"
	"kuckmal/internal/filmliste"
	"kuckmal/internal/infra/adapter/persistence/postgres"
	"kuckmal/internal/infra/adapter/persistence/sqlite"
	"kuckmal/internal/infra/cache"
	"kuckmal/internal/infra/db"
	"kuckmal/internal/observability/logging"
	"kuckmal/internal/observability/slo"
	"kuckmal/internal/observability/tracing"
	"kuckmal/pkg/config"

	browseUC "kuckmal/internal/usecase/browse"
	searchUC "kuckmal/internal/usecase/search"
	syncUC "kuckmal/internal/usecase/sync"

	hhttp "kuckmal/internal/handler/http"
	hauth "kuckmal/internal/handler/http/auth"
	"kuckmal/internal/handler/http/catalog"
	"kuckmal/internal/handler/http/entry"
	hfilmliste "kuckmal/internal/handler/http/filmliste"
	"kuckmal/internal/handler/http/middleware"
	"kuckmal/internal/handler/http/requestid"
	authservice "kuckmal/internal/service/auth"

	_ "kuckmal/docs" // swagger docs
)

// @title           Kuckmal API
// @version         1.0
// @description     REST API for the German public broadcaster media catalog. Serves browse, search, and detail lookups over the imported Filmliste and exposes the synchronization pipeline to administrators.

// @contact.name   API Support
// @contact.url    https://github.com/kuckmal/kuckmal

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT bearer authentication. Provide the token as "Bearer {token}" in the Authorization header.

func main() {
	logger := initLogger()

	securityCfg := loadSecurityConfig(logger)
	provider := hauth.NewBasicAuthProvider(
		securityCfg.GetMinPasswordLength(),
		securityCfg.GetWeakPasswords(),
	)
	validateAdminCredentials(logger, provider)
	jwtSecret := validateJWTSecret(logger, securityCfg)

	database, engine := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	components := setupServer(logger, database, engine, provider, jwtSecret, securityCfg, version)

	runServer(logger, components, version)
}

// initLogger installs the process-wide structured logger. JSON to stdout;
// LOG_LEVEL=debug adds source locations.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// loadSecurityConfig reads the optional YAML security file named by
// SECURITY_CONFIG. Without one, the defaults apply: basic auth provider,
// 12-character password floor, one-hour JWT expiry.
func loadSecurityConfig(logger *slog.Logger) *seccfg.SecurityConfig {
	path := os.Getenv("SECURITY_CONFIG")
	if path == "" {
		return seccfg.DefaultSecurityConfig()
	}
	cfg, err := seccfg.LoadSecurityConfig(path)
	if err != nil {
		logger.Error("failed to load security configuration",
			slog.String("path", path),
			slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("security configuration loaded", slog.String("path", path))
	return cfg
}

// validateAdminCredentials refuses to start with missing or weak admin
// credentials. Catching this at boot beats finding out at the first
// token request.
func validateAdminCredentials(logger *slog.Logger, provider *hauth.BasicAuthProvider) {
	if err := provider.ValidateStartupCredentials(); err != nil {
		logger.Error("admin credentials validation failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// validateJWTSecret enforces the signing secret requirements and returns
// the secret for the token issuer and verifier.
func validateJWTSecret(logger *slog.Logger, cfg *seccfg.SecurityConfig) []byte {
	secretEnv := cfg.GetJWTSecretEnv()
	secret := os.Getenv(secretEnv)
	if secret == "" {
		logger.Error("JWT signing secret must be set", slog.String("env", secretEnv))
		os.Exit(1)
	}
	// 32 characters gives 256 bits, the floor for HS256.
	if len(secret) < 32 {
		logger.Error("JWT signing secret must be at least 32 characters", slog.String("env", secretEnv))
		os.Exit(1)
	}
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT signing secret must not be a common weak value",
				slog.String("weak_value", weak))
			os.Exit(1)
		}
	}
	return []byte(secret)
}

// initDatabase opens the catalog database and runs migrations.
func initDatabase(logger *slog.Logger) (*sql.DB, db.Engine) {
	database, engine := db.Open()
	if err := db.MigrateUp(database, engine); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database, engine
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// serverComponents holds what runServer needs for operation and cleanup.
type serverComponents struct {
	handler http.Handler
	redis   *cache.Redis
}

// setupServer wires repositories, caches, and services, and returns the
// fully assembled HTTP handler.
func setupServer(
	logger *slog.Logger,
	database *sql.DB,
	engine db.Engine,
	provider *hauth.BasicAuthProvider,
	jwtSecret []byte,
	securityCfg *seccfg.SecurityConfig,
	version string,
) *serverComponents {
	var repo repository.MediaRepository
	switch engine {
	case db.EnginePostgres:
		repo = postgres.NewMediaRepo(database)
	default:
		repo = sqlite.NewMediaRepo(database)
	}

	// Reads go through the Redis cache-aside decorator when REDIS_URL is
	// set. The sync pipeline writes through the plain repository; imports
	// must never round-trip half a million rows through the cache.
	redis := openRedis(logger)
	readRepo := repo
	if redis != nil {
		readRepo = cache.NewCachedMediaRepository(repo, redis)
	}

	browseSvc := browseUC.NewService(readRepo)
	browseSvc.Pagination = pagination.LoadFromEnv()
	searchSvc := searchUC.NewService(readRepo)

	purgers := []syncUC.CachePurger{searchSvc}
	if redis != nil {
		purgers = append(purgers, syncUC.PurgeFunc(func(ctx context.Context) error {
			return cache.PurgeCatalog(ctx, redis)
		}))
	}

	syncSvc := syncUC.NewService(repo, filmliste.NewDownloader(nil), loadSyncConfig(logger), purgers...)

	mux := setupRoutes(logger, database, version, browseSvc, searchSvc, syncSvc, provider, jwtSecret, securityCfg)
	handler := applyMiddleware(logger, mux)

	return &serverComponents{handler: handler, redis: redis}
}

// openRedis connects the optional query cache. A missing REDIS_URL means
// no cache; a broken one is logged and skipped, because a cache outage
// must not take the catalog down.
func openRedis(logger *slog.Logger) *cache.Redis {
	rawURL := os.Getenv("REDIS_URL")
	if rawURL == "" {
		logger.Info("REDIS_URL not set, query cache disabled")
		return nil
	}

	redis, err := cache.New(rawURL)
	if err != nil {
		logger.Warn("invalid REDIS_URL, query cache disabled", slog.Any("error", err))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redis.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, query cache disabled", slog.Any("error", err))
		if closeErr := redis.Close(); closeErr != nil {
			logger.Warn("failed to close redis client", slog.Any("error", closeErr))
		}
		return nil
	}

	logger.Info("redis query cache enabled")
	return redis
}

// loadSyncConfig assembles the pipeline configuration from environment
// variables. MIRROR_BASE_URL overrides both list locations at once,
// which is how a local mirror or a test server is pointed at.
func loadSyncConfig(logger *slog.Logger) syncUC.Config {
	cfg := syncUC.Config{
		WorkDir: config.GetEnvString("SYNC_WORK_DIR", "data"),
		Workers: config.GetEnvInt("SYNC_WORKERS", filmliste.DefaultImportWorkers),
	}

	if base := strings.TrimSuffix(os.Getenv("MIRROR_BASE_URL"), "/"); base != "" {
		cfg.FullURL = base + "/Filmliste-akt.xz"
		cfg.DiffURL = base + "/Filmliste-diff.xz"
	}

	mode, err := filmliste.ParseIngestMode(os.Getenv("SYNC_INGEST_MODE"))
	if err != nil {
		logger.Warn("invalid SYNC_INGEST_MODE, using auto", slog.Any("error", err))
	}
	cfg.IngestMode = mode

	return cfg
}

// setupRoutes registers all HTTP routes: public catalog reads, the token
// endpoint, admin mutations, the sync pipeline, and the operational
// surface.
func setupRoutes(
	logger *slog.Logger,
	database *sql.DB,
	version string,
	browseSvc *browseUC.Service,
	searchSvc *searchUC.Service,
	syncSvc *syncUC.Service,
	provider *hauth.BasicAuthProvider,
	jwtSecret []byte,
	securityCfg *seccfg.SecurityConfig,
) *http.ServeMux {
	authSvc := authservice.NewAuthService(provider)
	admin := hauth.RequireAdmin(jwtSecret)

	mux := http.NewServeMux()

	// Catalog and entry routes share a request deadline. The filmliste
	// routes are registered on the root mux instead: a streamed sync
	// holds its response open for minutes.
	apiMux := http.NewServeMux()
	catalog.Register(apiMux, browseSvc)
	entry.Register(apiMux, browseSvc, searchSvc, admin)
	mux.Handle("/api/", hhttp.Timeout(30*time.Second)(apiMux))

	hfilmliste.Register(mux, syncSvc, admin)

	// Token issuance gets its own tight limiter: five attempts a minute
	// per client keeps credential stuffing slow without locking out a
	// fumbled password.
	tokenLimiter := hhttp.NewRateLimiter(5.0/60.0, 5)
	mux.Handle("POST   /api/auth/token", tokenLimiter.Limit(hauth.TokenHandler(authSvc, hauth.Config{
		Secret: jwtSecret,
		Expiry: time.Duration(securityCfg.GetJWTExpiryHours()) * time.Hour,
	})))

	mux.Handle("GET    /api/health", &hhttp.HealthHandler{
		DB:          database,
		Version:     version,
		Sync:        syncSvc,
		SearchCache: searchSvc,
	})
	mux.Handle("GET    /healthz/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET    /healthz/live", &hhttp.LiveHandler{})
	mux.Handle("GET    /metrics", hhttp.MetricsHandler())

	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	logger.Info("routes registered")
	return mux
}

// applyMiddleware wraps the handler with the middleware chain, outermost
// first: CORS, request ID, trace propagation, rate limit, recovery,
// logging, input validation, body limit, security headers, metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	corsConfig, err := middleware.LoadCORSConfig()
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}
	corsConfig.Logger = logger

	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.AllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods))

	rateCfg := config.LoadRateLimitConfig()

	chain := handler

	// Applied in reverse order (innermost to outermost).
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.SecurityHeaders(hhttp.DefaultSecurityHeadersConfig())(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	if rateCfg.Enabled {
		chain = hhttp.NewRateLimiter(rateCfg.RPS, rateCfg.Burst).Limit(chain)
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = middleware.CORS(*corsConfig)(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, components *serverComponents, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// SLO gauges are recomputed from the request metrics once a minute.
	go slo.NewUpdater(logger).Run(ctx)

	addr := ":" + config.GetEnvString("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           components.handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}

	if components.redis != nil {
		if err := components.redis.Close(); err != nil {
			logger.Error("failed to close redis client", slog.Any("error", err))
		}
	}

	logger.Info("server stopped")
}
