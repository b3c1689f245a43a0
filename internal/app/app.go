package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmstack/dairytrack-backend/internal/adapter/postgres"
	auditrepo "github.com/farmstack/dairytrack-backend/internal/adapter/postgres/audit"
	breedingrepo "github.com/farmstack/dairytrack-backend/internal/adapter/postgres/breeding"
	cattlerepo "github.com/farmstack/dairytrack-backend/internal/adapter/postgres/cattle"
	feedrepo "github.com/farmstack/dairytrack-backend/internal/adapter/postgres/feed"
	healthrepo "github.com/farmstack/dairytrack-backend/internal/adapter/postgres/health"
	userrepo "github.com/farmstack/dairytrack-backend/internal/adapter/postgres/user"
	workerrepo "github.com/farmstack/dairytrack-backend/internal/adapter/postgres/worker"
	"github.com/farmstack/dairytrack-backend/internal/auth"
	"github.com/farmstack/dairytrack-backend/internal/config"
	auditsvc "github.com/farmstack/dairytrack-backend/internal/service/audit"
	"github.com/farmstack/dairytrack-backend/internal/service/authsvc"
	breedingsvc "github.com/farmstack/dairytrack-backend/internal/service/breeding"
	cattlesvc "github.com/farmstack/dairytrack-backend/internal/service/cattle"
	feedsvc "github.com/farmstack/dairytrack-backend/internal/service/feed"
	healthsvc "github.com/farmstack/dairytrack-backend/internal/service/health"
	workersvc "github.com/farmstack/dairytrack-backend/internal/service/worker"
	"github.com/farmstack/dairytrack-backend/internal/transport/middleware"
	"github.com/farmstack/dairytrack-backend/internal/transport/rest"
)

// loginRateLimit caps login attempts per client IP per minute.
const loginRateLimit = 10

// Run is the application entry point. It loads configuration, wires the
// repositories, services and HTTP transport together, and serves until ctx
// is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	handler := buildHandler(logger, pool, *cfg, rateLimiter)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	select {
	case serveErr := <-errCh:
		return fmt.Errorf("http server: %w", serveErr)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}

// buildHandler wires repositories, services and REST handlers into the
// routed and middleware-wrapped root handler.
func buildHandler(logger *slog.Logger, pool *pgxpool.Pool, cfg config.Config, rateLimiter *middleware.RateLimiter) http.Handler {
	tx := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	workers := workerrepo.New(pool)
	herd := cattlerepo.New(pool)
	healthRecords := healthrepo.New(pool)
	breedingRecords := breedingrepo.New(pool)
	feeds := feedrepo.New(pool)
	trail := auditrepo.New(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	authService := authsvc.NewService(logger, users, trail, tx, jwtManager, hasher)
	cattleService := cattlesvc.NewService(logger, herd, trail, tx, cfg.Farm)
	healthService := healthsvc.NewService(logger, healthRecords, herd, trail, tx, cfg.Farm)
	breedingService := breedingsvc.NewService(logger, breedingRecords, herd, trail, tx, cfg.Farm)
	feedService := feedsvc.NewService(logger, feeds, trail, tx, cfg.Farm)
	workerService := workersvc.NewService(logger, users, workers, trail, tx, hasher, cfg.Farm)
	auditService := auditsvc.NewService(logger, trail, cfg.Farm)

	authHandler := rest.NewAuthHandler(authService, logger)
	cattleHandler := rest.NewCattleHandler(cattleService, logger)
	healthRecordHandler := rest.NewHealthRecordHandler(healthService, logger)
	breedingHandler := rest.NewBreedingHandler(breedingService, logger)
	feedHandler := rest.NewFeedHandler(feedService, logger)
	workerHandler := rest.NewWorkerHandler(workerService, logger)
	auditHandler := rest.NewAuditHandler(auditService, logger)
	healthHandler := rest.NewHealthHandler(pool, BuildVersion())

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Login is the only unauthenticated API endpoint, so it carries its own
	// per-IP rate limit.
	mux.Handle("POST /api/v1/auth/login",
		rateLimiter.Limit(loginRateLimit)(http.HandlerFunc(authHandler.Login)))

	mux.HandleFunc("POST /api/v1/cattle", cattleHandler.Create)
	mux.HandleFunc("GET /api/v1/cattle", cattleHandler.List)
	mux.HandleFunc("GET /api/v1/cattle/{id}", cattleHandler.Get)
	mux.HandleFunc("PUT /api/v1/cattle/{id}", cattleHandler.Update)
	mux.HandleFunc("DELETE /api/v1/cattle/{id}", cattleHandler.Delete)
	mux.HandleFunc("GET /api/v1/cattle/{id}/history", cattleHandler.History)

	mux.HandleFunc("POST /api/v1/health-records", healthRecordHandler.Create)
	mux.HandleFunc("GET /api/v1/health-records", healthRecordHandler.List)
	mux.HandleFunc("GET /api/v1/health-records/{id}", healthRecordHandler.Get)
	mux.HandleFunc("PUT /api/v1/health-records/{id}", healthRecordHandler.Update)
	mux.HandleFunc("DELETE /api/v1/health-records/{id}", healthRecordHandler.Delete)
	mux.HandleFunc("GET /api/v1/health-records/{id}/history", healthRecordHandler.History)

	mux.HandleFunc("POST /api/v1/breeding-records", breedingHandler.Create)
	mux.HandleFunc("GET /api/v1/breeding-records", breedingHandler.List)
	mux.HandleFunc("GET /api/v1/breeding-records/{id}", breedingHandler.Get)
	mux.HandleFunc("PUT /api/v1/breeding-records/{id}", breedingHandler.Update)
	mux.HandleFunc("DELETE /api/v1/breeding-records/{id}", breedingHandler.Delete)
	mux.HandleFunc("GET /api/v1/breeding-records/{id}/history", breedingHandler.History)

	mux.HandleFunc("POST /api/v1/feeds", feedHandler.Create)
	mux.HandleFunc("GET /api/v1/feeds", feedHandler.List)
	mux.HandleFunc("GET /api/v1/feeds/{id}", feedHandler.Get)
	mux.HandleFunc("PUT /api/v1/feeds/{id}", feedHandler.Update)
	mux.HandleFunc("DELETE /api/v1/feeds/{id}", feedHandler.Delete)
	mux.HandleFunc("GET /api/v1/feeds/{id}/transactions", feedHandler.Ledger)
	mux.HandleFunc("GET /api/v1/feeds/{id}/history", feedHandler.History)

	mux.HandleFunc("POST /api/v1/workers", workerHandler.Create)
	mux.HandleFunc("GET /api/v1/workers", workerHandler.List)
	mux.HandleFunc("GET /api/v1/workers/{id}", workerHandler.Get)
	mux.HandleFunc("PUT /api/v1/workers/{id}", workerHandler.Update)
	mux.HandleFunc("DELETE /api/v1/workers/{id}", workerHandler.Delete)
	mux.HandleFunc("GET /api/v1/workers/{id}/history", workerHandler.History)

	mux.HandleFunc("GET /api/v1/audit/users/{id}", auditHandler.UserActivity)
	mux.HandleFunc("GET /api/v1/audit/{entityType}/{id}", auditHandler.EntityHistory)

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Origin(),
		middleware.Logger(logger),
		middleware.Auth(jwtManager),
	)

	return chain(mux)
}
