// Command bulletin runs the content-and-account backend: it wires the
// configuration, the database pool, the credential core, and the HTTP router,
// then serves until interrupted.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/user/bulletin-go/apperror"
	"github.com/user/bulletin-go/auth"
	"github.com/user/bulletin-go/config"
	"github.com/user/bulletin-go/db"
	"github.com/user/bulletin-go/posts"
	"github.com/user/bulletin-go/users"
)

func main() {
	// .env is a development convenience; production sets the environment
	// directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewPool(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.EnableExtensions(pool); err != nil {
		log.Fatalf("Failed to enable extensions: %v", err)
	}
	if err := db.RunMigrations(cfg.Database, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// The credential core: store, hasher, issuer, validator. The validator
	// shares the server secret with the issuer and is handed to the session
	// middleware; both are read-only after this point.
	accountStore := auth.NewAccountStore(pool)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)
	validator := auth.NewTokenValidator(cfg.Auth.JWTSecret)

	authService := auth.NewAuthService(accountStore, hasher, issuer)
	authHandlers := auth.NewHandlers(authService)

	userService := users.NewUserService(accountStore)
	userHandlers := users.NewUserHandlers(userService)

	postService := posts.NewPostService(posts.NewPostStore(pool))
	postHandler := posts.NewPostHandler(postService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic fallback that keeps the apperror envelope even for crashes.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Printf("Panic: %+v", rvr)
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", authHandlers.HandleRegister())
		r.Post("/login", authHandlers.HandleLogin())
		r.Get("/check-id", authHandlers.HandleCheckUserID())

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(validator))
			r.Get("/profile", userHandlers.HandleGetProfile())
			r.Put("/profile", userHandlers.HandleUpdateProfile())
		})
	})

	r.Route("/api/posts", func(r chi.Router) {
		postHandler.RegisterRoutes(r, validator)
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// writeError formats panic-path errors with the apperror envelope. It lives
// here so the recovery middleware has no dependency back into the handlers.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"error":"failed to encode error response"}`, http.StatusInternalServerError)
	}
}
