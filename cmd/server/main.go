package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	httpadapter "github.com/n3xa/n3xa/internal/adapter/http"
	"github.com/n3xa/n3xa/internal/adapter/http/middleware"
	"github.com/n3xa/n3xa/internal/adapter/persistence"
	"github.com/n3xa/n3xa/internal/adapter/summarizer"
	"github.com/n3xa/n3xa/internal/config"
	"github.com/n3xa/n3xa/internal/ports"
	"github.com/n3xa/n3xa/internal/service/jwt"
	"github.com/n3xa/n3xa/internal/service/logger"
	"github.com/n3xa/n3xa/internal/service/password"
	"github.com/n3xa/n3xa/internal/service/ratelimit"
	"github.com/n3xa/n3xa/internal/usecase"
)

// Version and build information
var (
	Version   = "development"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const defaultBcryptCost = 12

func main() {
	var (
		version      = pflag.Bool("version", false, "Show version information")
		migrate      = pflag.Bool("migrate", false, "Run database migrations and exit")
		seed         = pflag.Bool("seed", false, "Seed the category list and exit")
		hashPassword = pflag.String("hash-password", "", "Print a bcrypt hash for ADMIN_PASSWORD_HASH and exit")
		bcryptCost   = pflag.Int("bcrypt-cost", defaultBcryptCost, "bcrypt cost used by --hash-password")
	)
	pflag.Parse()

	if *version {
		fmt.Printf("N3XA Support Desk\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)
		os.Exit(0)
	}

	if *hashPassword != "" {
		hash, err := password.NewBcryptPasswordService(*bcryptCost).HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to hash password: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "n3xa-server",
	})

	ctx := context.Background()
	log.Info(ctx, "Starting N3XA support desk", map[string]interface{}{
		"version":     Version,
		"environment": cfg.Environment,
		"db_driver":   cfg.DBDriver,
	})

	db, err := persistence.Open(ctx, cfg.DBDriver, cfg.DatabaseURL, persistence.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	if err != nil {
		log.Error(ctx, "Failed to initialize database", err, nil)
		os.Exit(1)
	}
	defer db.Close()

	categoryUseCase := usecase.NewCategoryUseCase(persistence.NewSQLCategoryRepository(db))

	if *migrate || cfg.DBAutoMigrate {
		if err := persistence.Migrate(ctx, db); err != nil {
			log.Error(ctx, "Failed to run migrations", err, nil)
			os.Exit(1)
		}
		log.Info(ctx, "Migrations completed successfully", nil)
		if *migrate {
			os.Exit(0)
		}
	}

	if *seed || cfg.DBSeedOnStartup {
		if err := categoryUseCase.SeedCategories(ctx); err != nil {
			log.Error(ctx, "Failed to seed categories", err, nil)
			os.Exit(1)
		}
		log.Info(ctx, "Categories seeded successfully", nil)
		if *seed {
			os.Exit(0)
		}
	}

	ticketUseCase := usecase.NewTicketUseCase(persistence.NewSQLTicketRepository(db), log)
	conversationUseCase := usecase.NewConversationUseCase(initSummarizer(ctx, cfg, log), ticketUseCase, cfg.SummarizerTimeout, log)

	rateLimiter, err := ratelimit.NewRateLimitService(ratelimit.RateLimitConfig{
		Enabled:  cfg.RateLimitEnabled,
		RedisURL: cfg.RedisURL,
	}, newLogrus(cfg))
	if err != nil {
		log.Warn(ctx, "Rate limiting unavailable, continuing without it", map[string]interface{}{"error": err.Error()})
		rateLimiter = ratelimit.NoopRateLimitService{}
	}

	routerCfg := httpadapter.RouterConfig{
		Chat:                 httpadapter.NewChatHandler(conversationUseCase),
		Tickets:              httpadapter.NewTicketHandler(ticketUseCase),
		Categories:           httpadapter.NewCategoryHandler(categoryUseCase),
		CORSEnabled:          cfg.CORSEnabled,
		CORSAllowedOrigins:   cfg.CORSAllowedOrigins,
		CORSAllowCredentials: cfg.CORSAllowCredentials,
		DB:                   db,
		Logger:               log,
	}
	if cfg.RateLimitEnabled {
		routerCfg.ChatRateLimit = middleware.NewRateLimitMiddleware(rateLimiter, "chat", cfg.RateLimitRequests, cfg.RateLimitWindow, log)
	}
	if cfg.AuthEnabled {
		authUseCase, authMiddleware, err := initAuth(cfg, rateLimiter, log)
		if err != nil {
			log.Error(ctx, "Failed to initialize auth", err, nil)
			os.Exit(1)
		}
		routerCfg.Auth = httpadapter.NewAuthHandler(authUseCase)
		routerCfg.AuthMiddleware = authMiddleware
	} else {
		log.Warn(ctx, "Console auth disabled, ticket management routes are open", nil)
	}

	server := httpadapter.NewServer(httpadapter.ServerConfig{
		Addr:         cfg.Addr(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}, httpadapter.NewRouter(routerCfg), log)

	go func() {
		if err := server.Start(); err != nil {
			log.Error(ctx, "Failed to start server", err, nil)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "Error during server shutdown", err, nil)
	}
	log.Info(ctx, "Server stopped successfully", nil)
}

// initSummarizer builds the summarizer client, wrapped in the Redis cache when enabled
func initSummarizer(ctx context.Context, cfg *config.Config, log logger.Logger) ports.Summarizer {
	var s ports.Summarizer = summarizer.NewHTTPClient(cfg.SummarizerURL, cfg.SummarizerTimeout)
	if !cfg.AIEnableCache {
		return s
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Warn(ctx, "Invalid REDIS_URL, summary cache disabled", map[string]interface{}{"error": err.Error()})
		return s
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		log.Warn(ctx, "Redis unreachable, summary cache disabled", map[string]interface{}{"error": err.Error()})
		return s
	}

	log.Info(ctx, "Summary cache enabled", map[string]interface{}{"redis_addr": opt.Addr, "ttl": cfg.AICacheTTL.String()})
	return summarizer.NewCachedSummarizer(s, summarizer.NewRedisCache(client), cfg.AICacheTTL, log)
}

func initAuth(cfg *config.Config, rateLimiter ports.RateLimitService, log logger.Logger) (*usecase.AuthUseCase, *middleware.AuthMiddleware, error) {
	if err := password.CheckHash(cfg.AdminPasswordHash); err != nil {
		return nil, nil, fmt.Errorf("ADMIN_PASSWORD_HASH: %w", err)
	}
	tokens, err := jwt.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL)
	if err != nil {
		return nil, nil, err
	}

	authUseCase := usecase.NewAuthUseCase(
		usecase.AdminAccount{Email: cfg.AdminEmail, PasswordHash: cfg.AdminPasswordHash},
		tokens,
		password.NewBcryptPasswordService(defaultBcryptCost),
		rateLimiter,
		cfg.AccessTokenTTL,
		log,
	)
	return authUseCase, middleware.NewAuthMiddleware(tokens), nil
}

// newLogrus configures the plain logrus logger the rate limiter logs through
func newLogrus(cfg *config.Config) *logrus.Logger {
	l := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		l.SetLevel(level)
	}
	if cfg.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l
}
