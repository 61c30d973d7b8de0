package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings for cmd/server
type Config struct {
	ServerHost   string
	ServerPort   string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	DBDriver        string
	DatabaseURL     string
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBConnMaxLife   time.Duration
	DBAutoMigrate   bool
	DBSeedOnStartup bool

	SummarizerURL     string
	SummarizerTimeout time.Duration

	RedisURL      string
	AIEnableCache bool
	AICacheTTL    time.Duration

	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	AuthEnabled       bool
	AdminEmail        string
	AdminPasswordHash string
	JWTSecret         string
	AccessTokenTTL    time.Duration

	LogLevel  string
	LogFormat string

	CORSEnabled          bool
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
}

// SummarizerConfig holds the settings for cmd/summarizer
type SummarizerConfig struct {
	Host        string
	Port        string
	OpenAIKey   string
	OpenAIURL   string
	Model       string
	Temperature float64
	LLMTimeout  time.Duration
	LogLevel    string
	LogFormat   string
}

var (
	ErrMissingDatabaseURL  = errors.New("DATABASE_URL is required")
	ErrUnsupportedDriver   = errors.New("DB_DRIVER must be postgres or sqlite")
	ErrMissingJWTSecret    = errors.New("JWT_SECRET is required when AUTH_ENABLED=true")
	ErrMissingAdminAccount = errors.New("ADMIN_EMAIL and ADMIN_PASSWORD_HASH are required when AUTH_ENABLED=true")
	ErrInvalidTimeout      = errors.New("timeouts must be positive")
)

// Load reads .env (if present) and the environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerHost:   getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
		ServerPort:   getEnvOrDefault("SERVER_PORT", "8080"),
		Environment:  getEnvOrDefault("ENV", "development"),
		ReadTimeout:  getEnvOrDefaultDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvOrDefaultDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:  getEnvOrDefaultDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),

		DBDriver:        getEnvOrDefault("DB_DRIVER", "postgres"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DBMaxOpenConns:  getEnvOrDefaultInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:  getEnvOrDefaultInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLife:   getEnvOrDefaultDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		DBAutoMigrate:   getEnvOrDefaultBool("DB_AUTO_MIGRATE", false),
		DBSeedOnStartup: getEnvOrDefaultBool("DB_SEED", false),

		SummarizerURL:     getEnvOrDefault("SUMMARIZER_URL", "http://localhost:8000"),
		SummarizerTimeout: getEnvOrDefaultDuration("SUMMARIZER_TIMEOUT", 5*time.Second),

		RedisURL:      getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		AIEnableCache: getEnvOrDefaultBool("AI_ENABLE_CACHE", false),
		AICacheTTL:    time.Duration(getEnvOrDefaultInt("AI_CACHE_TTL_MIN", 60)) * time.Minute,

		RateLimitEnabled:  getEnvOrDefaultBool("RATE_LIMIT_ENABLED", false),
		RateLimitRequests: getEnvOrDefaultInt("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   getEnvOrDefaultDuration("RATE_LIMIT_WINDOW", time.Minute),

		AuthEnabled:       getEnvOrDefaultBool("AUTH_ENABLED", false),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AccessTokenTTL:    getEnvOrDefaultDuration("JWT_ACCESS_TOKEN_TTL", 8*time.Hour),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		CORSEnabled:          getEnvOrDefaultBool("CORS_ENABLED", true),
		CORSAllowCredentials: getEnvOrDefaultBool("CORS_ALLOW_CREDENTIALS", false),
		CORSAllowedOrigins:   parseAllowedOrigins(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if c.DBDriver != "postgres" && c.DBDriver != "sqlite" {
		return fmt.Errorf("%w: got %q", ErrUnsupportedDriver, c.DBDriver)
	}
	if c.SummarizerTimeout <= 0 || c.AccessTokenTTL < 0 {
		return ErrInvalidTimeout
	}
	if c.AuthEnabled {
		if c.JWTSecret == "" {
			return ErrMissingJWTSecret
		}
		if c.AdminEmail == "" || c.AdminPasswordHash == "" {
			return ErrMissingAdminAccount
		}
	}
	return nil
}

// Addr is the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.ServerHost, c.ServerPort)
}

// LoadSummarizer reads the summarizer service settings
func LoadSummarizer() *SummarizerConfig {
	_ = godotenv.Load()

	return &SummarizerConfig{
		Host:        getEnvOrDefault("SUMMARIZER_HOST", "0.0.0.0"),
		Port:        getEnvOrDefault("SUMMARIZER_PORT", "8000"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIURL:   getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		Model:       getEnvOrDefault("AI_SUGGESTION_MODEL", "gpt-4"),
		Temperature: getEnvOrDefaultFloat("AI_TEMPERATURE", 0.7),
		LLMTimeout:  time.Duration(getEnvOrDefaultInt("AI_TIMEOUT_MS", 30000)) * time.Millisecond,
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "json"),
	}
}

// Addr is the listen address
func (c *SummarizerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

// getEnvOrDefaultDuration accepts plain seconds or a Go duration string
func getEnvOrDefaultDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return time.Duration(n) * time.Second
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return defaultValue
		}
		return d
	}
	return defaultValue
}

func parseAllowedOrigins(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			res = append(res, trimmed)
		}
	}
	return res
}
