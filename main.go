// Entry point of the todo API. Wires configuration, the database pool,
// services and handlers, sets up the chi router with its middleware stack,
// and runs the HTTP server with graceful shutdown.
//
// @title Todo API
// @version 1.0
// @description Multi-tenant todo-list backend with JWT authentication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/RobertLib/todo-api/auth"
	"github.com/RobertLib/todo-api/config"
	"github.com/RobertLib/todo-api/db"
	_ "github.com/RobertLib/todo-api/docs" // Generated Swagger docs
	"github.com/RobertLib/todo-api/logger"
	"github.com/RobertLib/todo-api/todos"
	"github.com/RobertLib/todo-api/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	if err := logger.Init("info"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// A missing JWT secret or database credential aborts startup here; it is
	// a deployment fault, not a per-request condition.
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		logger.Log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(context.Background(), pool); err != nil {
		logger.Log.Fatalf("Failed to ensure schema: %v", err)
	}

	userStore := auth.NewPgUserStore(pool)
	authService := auth.NewService(userStore, *cfg.Auth)
	authHandlers := auth.NewHandlers(authService)

	userHandlers := users.NewHandlers(users.NewService(userStore))

	todoStore := todos.NewPgStore(pool)
	todoHandlers := todos.NewHandlers(todos.NewService(todoStore))

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandlers.HandleRegister())
		r.Post("/login", authHandlers.HandleLogin())
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.JWTMiddleware(cfg.Auth))

		r.Route("/todos", func(r chi.Router) {
			r.Post("/", todoHandlers.HandleCreate())
			r.Get("/", todoHandlers.HandleList())
			r.Get("/{id}", todoHandlers.HandleGet())
			r.Patch("/{id}", todoHandlers.HandleUpdate())
			r.Delete("/{id}", todoHandlers.HandleDelete())
		})

		r.Get("/users/me", userHandlers.HandleMe())
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Log.Infof("Server listening on %s", server.Addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("HTTP server error: %v", err)
		}
	case <-ctx.Done():
		logger.Log.Info("Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorf("Server forced to shutdown: %v", err)
		}
	}

	logger.Log.Info("Server exiting")
}
