package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/auth"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/config"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/db"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/handlers"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/logger"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/middleware"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/repository"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/services"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/utils"
)

func main() {
	// .env es opcional; en producción las variables vienen del entorno
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	auth.Init(cfg.JWTSecret)

	if err := db.Connect(cfg.GetDSN()); err != nil {
		log.Fatal().Err(err).Msg("No se pudo conectar a la base de datos")
	}
	defer db.Close()

	// Repositorios
	userRepo := repository.NewUserRepository(db.DB)
	auditRepo := repository.NewAuditRepository(db.DB)
	signatureRepo := repository.NewSignatureRepository(db.DB)

	// Services
	userService := services.NewUserService(userRepo)
	auditService := services.NewAuditService(auditRepo)
	signatureService := services.NewSignatureService(signatureRepo, userService)

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	auditHandler := handlers.NewAuditHandler(auditService)
	signatureHandler := handlers.NewSignatureHandler(signatureService, signatureRepo)

	router := mux.NewRouter()
	router.NotFoundHandler = middleware.NotFoundHandler()
	router.MethodNotAllowedHandler = middleware.MethodNotAllowedHandler()

	// Cadena global de middlewares
	rateLimiter := middleware.NewRateLimiter(10, 20)
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.SecurityHeadersMiddleware)
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.LoggingMiddleware)
	router.Use(rateLimiter.Middleware)
	router.Use(middleware.OperationScopeMiddleware)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	// Rutas públicas
	api.HandleFunc("/auth/login", userHandler.Login).Methods(http.MethodPost)

	// Rutas protegidas
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware)

	protected.Handle("/audit-logs",
		middleware.RequirePermission(middleware.PermViewAuditLog)(http.HandlerFunc(auditHandler.List)),
	).Methods(http.MethodGet)

	protected.Handle("/signatures",
		middleware.RequirePermission(middleware.PermCreateSignature)(http.HandlerFunc(signatureHandler.Create)),
	).Methods(http.MethodPost)
	protected.Handle("/signatures",
		middleware.RequirePermission(middleware.PermVerifySignature)(http.HandlerFunc(signatureHandler.ListValid)),
	).Methods(http.MethodGet)
	protected.Handle("/signatures/{id}/verify",
		middleware.RequirePermission(middleware.PermVerifySignature)(http.HandlerFunc(signatureHandler.Verify)),
	).Methods(http.MethodGet)
	protected.Handle("/signatures/{id}/invalidate",
		middleware.RequirePermission(middleware.PermInvalidateSignature)(http.HandlerFunc(signatureHandler.Invalidate)),
	).Methods(http.MethodPost)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Arranque del servidor en su goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Servidor HTTP escuchando")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("El servidor HTTP falló")
		}
	}()

	// Apagado prolijo
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Apagando el servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Apagado forzado del servidor")
	}

	log.Info().Msg("Servidor detenido")
}
