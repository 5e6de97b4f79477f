package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/yourorg/shiftline/internal/handler"
	"github.com/yourorg/shiftline/internal/infrastructure/logger"
	"github.com/yourorg/shiftline/internal/infrastructure/redis"
	"github.com/yourorg/shiftline/internal/notify"
	"github.com/yourorg/shiftline/internal/observability/metrics"
	"github.com/yourorg/shiftline/internal/observability/tracing"
	"github.com/yourorg/shiftline/internal/repository"
	"github.com/yourorg/shiftline/internal/security/audit"
	"github.com/yourorg/shiftline/internal/security/ratelimit"
	"github.com/yourorg/shiftline/internal/service"
	"github.com/yourorg/shiftline/pkg/cache"
	"github.com/yourorg/shiftline/pkg/config"
	"github.com/yourorg/shiftline/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting shiftline server", slog.String("environment", cfg.Environment))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, log, "shiftline", cfg.Environment)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := database.NewConnectionPool(ctx, cfg, log)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Migrate(ctx); err != nil {
		log.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()
	}

	db := pool.GetDB()
	employeeRepo := repository.NewPostgresEmployeeRepository(db, log)
	userRepo := repository.NewPostgresUserRepository(db, log)
	workLogRepo := repository.NewPostgresWorkLogRepository(db, log)
	shiftRepo := repository.NewPostgresShiftRepository(db, log)

	dispatcher := notify.NewDispatcher(
		notify.NewProvider(cfg.NotifyWebhookURL, log),
		cfg.NotifyQueueSize,
		cfg.NotifyTimeout,
		log,
	)
	go dispatcher.Start(ctx)

	auditLog := audit.NewLogger(log)

	employeeService := service.NewEmployeeService(employeeRepo, userRepo, cfg.DefaultPassword, auditLog, log)
	authService := service.NewAuthService(userRepo, log)
	workLogService := service.NewWorkLogService(workLogRepo, employeeRepo, dispatcher, cfg.DefaultShiftHours, auditLog, log)
	shiftService := service.NewShiftService(shiftRepo, employeeRepo, dispatcher, cfg.DefaultShiftHours, cfg.NotifyGroupID, auditLog, log)
	dashboardService := service.NewDashboardService(workLogRepo, cfg.HourlyRate, log)

	if err := authService.EnsureAdmin(ctx, cfg.AdminPassword); err != nil {
		log.Error("failed to seed admin user", slog.String("error", err.Error()))
		os.Exit(1)
	}

	statsCache := handler.NewStatsCache(redisClient, cache.New(), cfg.StatsCacheTTL, log)

	loginHandler := handler.NewLoginHandler(authService, log)
	employeeHandler := handler.NewEmployeeHandler(employeeService, log)
	workLogHandler := handler.NewWorkLogHandler(workLogService, statsCache, log)
	shiftHandler := handler.NewShiftHandler(shiftService, statsCache, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, statsCache, log)
	notificationHandler := handler.NewNotificationHandler(dispatcher, log)
	healthHandler := handler.NewHealthHandler(pool, redisClient, log)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", loginHandler.ServeHTTP)
	mux.HandleFunc("GET /api/employees", employeeHandler.List)
	mux.HandleFunc("POST /api/employees", employeeHandler.Create)
	mux.HandleFunc("DELETE /api/employees/{id}", employeeHandler.Delete)
	mux.HandleFunc("GET /api/work-logs", workLogHandler.List)
	mux.HandleFunc("POST /api/work-logs", workLogHandler.Create)
	mux.HandleFunc("POST /api/work-logs/{id}/toggle-paid", workLogHandler.TogglePaid)
	mux.HandleFunc("POST /api/work-logs/{id}/notes", workLogHandler.UpdateNote)
	mux.HandleFunc("POST /api/work-logs/batch-pay", workLogHandler.BatchPay)
	mux.HandleFunc("GET /api/shift-requests", shiftHandler.List)
	mux.HandleFunc("POST /api/shift-requests", shiftHandler.Create)
	mux.HandleFunc("POST /api/shift-requests/{id}/take", shiftHandler.Take)
	mux.HandleFunc("GET /api/dashboard/stats", dashboardHandler.Stats)
	mux.HandleFunc("POST /api/notifications", notificationHandler.Send)
	mux.HandleFunc("GET /healthz", healthHandler.Health)
	mux.HandleFunc("GET /readyz", healthHandler.Ready)
	mux.Handle("/metrics", promhttp.Handler())

	rateLimiter := ratelimit.NewLimiter(cfg.RateLimitPerMinute, time.Minute)

	rootHandler := withRequestID(
		metrics.Middleware(
			withRateLimit(rateLimiter,
				withCORS(cfg.CORSAllowedOrigins, mux),
			),
		),
		log,
	)
	rootHandler = otelhttp.NewHandler(rootHandler, "shiftline")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      rootHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting",
		slog.Int("port", cfg.ServerPort),
		slog.Int("rate_limit", cfg.RateLimitPerMinute),
		slog.String("rate_limit_window", "1m"),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	<-sigChan
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}

	cancel() // stop the notification dispatcher
	rateLimiter.Stop()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown error", slog.String("error", err.Error()))
	}
	log.Info("server stopped")
}

// withRequestID attaches a request ID to the context and response
// headers and logs request completion
func withRequestID(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)

		ctx := audit.WithRequestID(r.Context(), reqID)
		start := time.Now()

		next.ServeHTTP(w, r.WithContext(ctx))

		log.Info("request completed",
			slog.String("request_id", reqID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration_ms", time.Since(start)),
		)
	})
}

func withRateLimit(limiter *ratelimit.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" || r.URL.Path == "/readyz" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !limiter.Allow(host) {
			http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func withCORS(allowedOrigins []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(allowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else if len(allowedOrigins) > 0 {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins[0])
		}
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return false
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}
