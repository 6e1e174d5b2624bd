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
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"newsroom/internal/config"
	pgRepo "newsroom/internal/infra/adapter/persistence/postgres"
	"newsroom/internal/infra/db"
	"newsroom/internal/infra/notifier"
	"newsroom/internal/observability/logging"
	"newsroom/internal/observability/slo"
	"newsroom/internal/resilience/circuitbreaker"
	pkgconfig "newsroom/pkg/config"

	accUC "newsroom/internal/usecase/account"
	artUC "newsroom/internal/usecase/article"
	nlUC "newsroom/internal/usecase/newsletter"
	"newsroom/internal/usecase/notify"
	pubUC "newsroom/internal/usecase/publisher"
	subUC "newsroom/internal/usecase/subscription"

	hhttp "newsroom/internal/handler/http"
	harticle "newsroom/internal/handler/http/article"
	hauth "newsroom/internal/handler/http/auth"
	hjournalist "newsroom/internal/handler/http/journalist"
	"newsroom/internal/handler/http/middleware"
	hnewsletter "newsroom/internal/handler/http/newsletter"
	hpublisher "newsroom/internal/handler/http/publisher"
	"newsroom/internal/handler/http/requestid"
	hsubscription "newsroom/internal/handler/http/subscription"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	secCfg := loadSecurityConfig(logger)
	secret := loadJWTSecret(logger, secCfg)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	notifySvc := initNotifier(logger)
	handler := setupServer(logger, database, secret, notifySvc, getVersion())

	runServer(logger, handler, notifySvc)
}

// loadSecurityConfig reads the security file named by SECURITY_CONFIG,
// falling back to built-in defaults when the variable is unset.
func loadSecurityConfig(logger *slog.Logger) *config.SecurityConfig {
	path := os.Getenv("SECURITY_CONFIG")
	if path == "" {
		return config.DefaultSecurityConfig()
	}
	cfg, err := config.LoadSecurityConfig(path)
	if err != nil {
		logger.Error("failed to load security config", slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}

// loadJWTSecret resolves and validates the signing secret and applies the
// configured token lifetime and public endpoint list.
func loadJWTSecret(logger *slog.Logger, cfg *config.SecurityConfig) []byte {
	secret := os.Getenv(cfg.Security.JWT.SecretEnv)
	if err := hauth.ValidateSecret(secret); err != nil {
		logger.Error("JWT secret validation failed",
			slog.String("env", cfg.Security.JWT.SecretEnv),
			slog.Any("error", err))
		os.Exit(1)
	}

	hauth.TokenTTL = time.Duration(cfg.Security.JWT.ExpiryHours) * time.Hour
	hauth.PublicEndpoints = cfg.Security.PublicEndpoints
	return []byte(secret)
}

// initDatabase opens the connection pool and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// initNotifier assembles the notification channels from the environment.
// With no channel enabled the noop channel keeps dispatch observable.
func initNotifier(logger *slog.Logger) notify.Service {
	var channels []notify.Channel

	emailCfg := notifier.EmailConfig{
		Enabled:  pkgconfig.GetEnvBool("EMAIL_ENABLED", false),
		Host:     pkgconfig.GetEnvString("SMTP_HOST", "localhost"),
		Port:     pkgconfig.GetEnvInt("SMTP_PORT", 587),
		Username: pkgconfig.GetEnvString("SMTP_USERNAME", ""),
		Password: pkgconfig.GetEnvString("SMTP_PASSWORD", ""),
		From:     pkgconfig.GetEnvString("EMAIL_FROM", "newsroom@localhost"),
	}
	if emailCfg.Enabled {
		channels = append(channels, notifier.NewEmailChannel(emailCfg))
	}

	webhookCfg := notifier.WebhookConfig{
		Enabled: pkgconfig.GetEnvBool("WEBHOOK_ENABLED", false),
		URL:     pkgconfig.GetEnvString("WEBHOOK_URL", ""),
		Timeout: pkgconfig.GetEnvDuration("WEBHOOK_TIMEOUT", 10*time.Second),
	}
	if webhookCfg.Enabled && webhookCfg.URL != "" {
		channels = append(channels, notifier.NewWebhookChannel(webhookCfg))
	}

	if len(channels) == 0 {
		logger.Warn("no notification channels enabled, using noop channel")
		channels = append(channels, notifier.NewNoopChannel())
	}

	maxConcurrent := pkgconfig.GetEnvInt("NOTIFY_MAX_CONCURRENT", 10)
	return notify.NewService(channels, maxConcurrent)
}

func getVersion() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}

// setupServer wires repositories, services, routes and middleware into
// the final handler.
func setupServer(logger *slog.Logger, database *sql.DB, secret []byte, notifySvc notify.Service, version string) http.Handler {
	users := pgRepo.NewUserRepo(database)
	publishers := pgRepo.NewPublisherRepo(database)
	articles := pgRepo.NewArticleRepo(database)
	newsletters := pgRepo.NewNewsletterRepo(database)
	subscriptions := pgRepo.NewSubscriptionRepo(database)

	accSvc := &accUC.Service{Repo: users}
	pubSvc := &pubUC.Service{Repo: publishers, Users: users}
	artSvc := &artUC.Service{Repo: articles, Publishers: publishers, Subs: subscriptions, Users: users, Notifier: notifySvc}
	nlSvc := &nlUC.Service{Repo: newsletters, Publishers: publishers, Subs: subscriptions, Users: users, Notifier: notifySvc}
	subSvc := &subUC.Service{Repo: subscriptions, Publishers: publishers, Users: users}

	dbBreaker := circuitbreaker.NewDBCircuitBreaker(database)

	mux := http.NewServeMux()

	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, DBBreaker: dbBreaker, Notifier: notifySvc, Version: version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database, DBBreaker: dbBreaker})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	mux.Handle("POST /auth/register", hauth.RegisterHandler(accSvc))
	mux.Handle("POST /auth/token", hauth.TokenHandler(accSvc, secret))

	harticle.Register(mux, artSvc)
	hnewsletter.Register(mux, nlSvc)
	hpublisher.Register(mux, pubSvc)
	hjournalist.Register(mux, accSvc)
	hsubscription.Register(mux, subSvc)

	return applyMiddleware(logger, mux, secret)
}

// applyMiddleware wraps the mux in the middleware chain, innermost first:
// authentication runs closest to the handlers, CORS outermost so
// preflight requests never touch anything else.
func applyMiddleware(logger *slog.Logger, handler http.Handler, secret []byte) http.Handler {
	corsConfig := middleware.LoadCORSConfig()
	corsConfig.Logger = logger

	rateLimit := pkgconfig.GetEnvInt("RATE_LIMIT_PER_MINUTE", 120)
	rateLimiter := hhttp.NewRateLimiter(rateLimit, time.Minute)

	requestTimeout := pkgconfig.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second)

	chain := handler
	chain = hauth.Authn(secret)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.Timeout(requestTimeout)(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = rateLimiter.Limit(chain)
	chain = requestid.Middleware(chain)
	chain = middleware.CORS(corsConfig)(chain)
	return chain
}

// runServer starts the HTTP server and blocks until shutdown completes.
func runServer(logger *slog.Logger, handler http.Handler, notifySvc notify.Service) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go slo.StartReporter(ctx, time.Minute)

	addr := pkgconfig.GetEnvString("LISTEN_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting", slog.String("addr", addr))
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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	if err := notifySvc.Shutdown(shutdownCtx); err != nil {
		logger.Error("notifier shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
