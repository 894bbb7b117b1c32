package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/notebook/auth"
	"github.com/rpupo63/notebook/config"
	"github.com/rpupo63/notebook/database"
	"github.com/rpupo63/notebook/services"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(db database.Database) (Server, error) {
	c := config.New()

	secret := config.GetString(c, "JWT_SECRET", "")
	if secret == "" {
		return Server{}, fmt.Errorf("JWT_SECRET must be set")
	}
	tokens := auth.NewTokenManager(
		secret,
		config.GetDuration(c, "JWT_EXPIRATION_SECONDS", 24*time.Hour),
		config.GetDuration(c, "JWT_REFRESH_EXPIRATION_SECONDS", 7*24*time.Hour),
	)

	svc := Services{
		Posts: services.NewPostService(db.PostRepo()),
		Auth:  services.NewAuthService(db.UserRepo(), tokens),
		Users: services.NewUserService(db.UserRepo()),
		Ping:  db.Ping,
	}

	// Ensure correct port is set
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	// Capture startup time
	startupTime := time.Now()

	router := newRouter(svc, withConfig(c), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  config.GetDuration(c, "READ_TIMEOUT_SECONDS", 180*time.Second),  // Timeout for reading the entire request
		WriteTimeout: config.GetDuration(c, "WRITE_TIMEOUT_SECONDS", 180*time.Second), // Timeout for writing the response
		IdleTimeout:  config.GetDuration(c, "IDLE_TIMEOUT_SECONDS", 180*time.Second),  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config        map[string]string
	startupTime   time.Time
	requestLogger func(http.Handler) http.Handler
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withRequestLogger(logger zerolog.Logger) func(*router) {
	return func(r *router) {
		r.requestLogger = requestLogger(logger)
	}
}

func newRouter(svc Services, opts ...func(*router)) *chi.Mux {
	router := router{
		startupTime:   time.Now(),
		requestLogger: ColoredHTTPLoggingMiddleware,
	}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(router.requestLogger)

	// Apply CORS middleware
	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS", []string{"*"})
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   acceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	notifier := newErrorNotifier(config.GetString(router.config, "ERROR_WEBHOOK_URL", ""))

	// Initialize all handlers
	handlers := initializeHandlers(svc, router.startupTime, notifier)

	// Initialize auth middleware
	authMiddleware := newAuthMiddleware(svc.Auth)

	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
