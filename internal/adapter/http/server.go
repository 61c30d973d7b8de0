package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/n3xa/n3xa/internal/adapter/http/middleware"
	"github.com/n3xa/n3xa/internal/adapter/http/response"
	"github.com/n3xa/n3xa/internal/service/logger"
)

// Pinger reports backing store health
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterConfig collects the handlers and middleware of the main API
type RouterConfig struct {
	Chat       *ChatHandler
	Tickets    *TicketHandler
	Categories *CategoryHandler
	Auth       *AuthHandler // nil when console auth is disabled

	AuthMiddleware *middleware.AuthMiddleware // guards the management routes when set
	ChatRateLimit  *middleware.RateLimitMiddleware

	CORSEnabled          bool
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	DB     Pinger
	Logger logger.Logger
}

// NewRouter builds the main API handler
func NewRouter(cfg RouterConfig) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(middleware.CorrelationID)
	router.Use(middleware.Logging(cfg.Logger))

	router.HandleFunc("/health", healthHandler(cfg.DB)).Methods(http.MethodGet)

	chat := router.NewRoute().Subrouter()
	if cfg.ChatRateLimit != nil {
		chat.Use(cfg.ChatRateLimit.RateLimit)
	}
	cfg.Chat.RegisterRoutes(chat)

	if cfg.Auth != nil {
		cfg.Auth.RegisterRoutes(router)
	}

	// categories feed the public chat as well as the console
	cfg.Categories.RegisterRoutes(router)

	console := router.NewRoute().Subrouter()
	if cfg.AuthMiddleware != nil {
		console.Use(cfg.AuthMiddleware.RequireAuth)
	}
	cfg.Tickets.RegisterRoutes(console)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	if !cfg.CORSEnabled {
		return router
	}
	// outside the router so preflights for any path are answered
	return middleware.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials)(router)
}

// NewSummaryRouter builds the summarizer service handler
func NewSummaryRouter(summary *SummaryHandler, log logger.Logger) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CorrelationID)
	router.Use(middleware.Logging(log))
	summary.RegisterRoutes(router)
	return router
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				response.Error(w, http.StatusServiceUnavailable, "unhealthy", "Database unreachable")
				return
			}
		}
		response.Success(w, http.StatusOK, "ok", map[string]string{"status": "ok"})
	}
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Server represents the HTTP server
type Server struct {
	server *http.Server
	logger logger.Logger
}

// NewServer creates a new HTTP server
func NewServer(config ServerConfig, handler http.Handler, log logger.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         config.Addr,
			Handler:      handler,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
		logger: log,
	}
}

// Start blocks serving until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "Starting HTTP server", map[string]interface{}{"addr": s.server.Addr})
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}
