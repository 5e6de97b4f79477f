package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration
type Config struct {
	Environment string
	ServerPort  int
	LogLevel    string

	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// RedisURL enables the shared dashboard-stats cache and the
	// readiness probe when set. Empty disables Redis entirely.
	RedisURL string

	// Payroll
	HourlyRate        float64 // currency units per hour for unpaid payroll cost
	DefaultShiftHours float64 // hours assigned when a log or claim omits them

	// Provisioning
	DefaultPassword string // initial password for auto-created employee users
	AdminPassword   string // password for the seed admin user

	// Notifications
	NotifyGroupID    string // group channel id; takes priority over phones
	NotifyWebhookURL string // outbound webhook; empty means log-only delivery
	NotifyQueueSize  int
	NotifyTimeout    time.Duration

	RateLimitPerMinute int
	StatsCacheTTL      time.Duration
	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	port, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	dbPort, err := intEnv("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	rate, err := floatEnv("HOURLY_RATE", 20)
	if err != nil {
		return nil, err
	}
	defaultHours, err := floatEnv("DEFAULT_SHIFT_HOURS", 7)
	if err != nil {
		return nil, err
	}
	if defaultHours <= 0 {
		return nil, fmt.Errorf("DEFAULT_SHIFT_HOURS must be positive, got %v", defaultHours)
	}
	queueSize, err := intEnv("NOTIFY_QUEUE_SIZE", 64)
	if err != nil {
		return nil, err
	}
	notifyTimeout, err := intEnv("NOTIFY_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	rateLimit, err := intEnv("RATE_LIMIT_PER_MINUTE", 120)
	if err != nil {
		return nil, err
	}
	statsTTL, err := intEnv("STATS_CACHE_TTL_SECONDS", 15)
	if err != nil {
		return nil, err
	}

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		ServerPort:  port,
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "shiftline"),
		DBPassword: getEnv("DB_PASSWORD", "dev"),
		DBName:     getEnv("DB_NAME", "shiftline"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisURL: os.Getenv("REDIS_URL"),

		HourlyRate:        rate,
		DefaultShiftHours: defaultHours,

		DefaultPassword: getEnv("DEFAULT_EMPLOYEE_PASSWORD", "password123"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "admin123"),

		NotifyGroupID:    os.Getenv("NOTIFY_GROUP_ID"),
		NotifyWebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
		NotifyQueueSize:  queueSize,
		NotifyTimeout:    time.Duration(notifyTimeout) * time.Second,

		RateLimitPerMinute: rateLimit,
		StatsCacheTTL:      time.Duration(statsTTL) * time.Second,
		CORSAllowedOrigins: parseCSVEnv("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://localhost:3000",
		}),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func intEnv(key string, defaultValue int) (int, error) {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func floatEnv(key string, defaultValue float64) (float64, error) {
	v, err := strconv.ParseFloat(getEnv(key, strconv.FormatFloat(defaultValue, 'f', -1, 64)), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseCSVEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
