package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amitjangid17/SVJSS/monitoring"
	v1 "github.com/amitjangid17/SVJSS/v1"
	v1handlers "github.com/amitjangid17/SVJSS/v1/handlers"
	v1middleware "github.com/amitjangid17/SVJSS/v1/middleware"
	"github.com/amitjangid17/SVJSS/v1/services"
	"github.com/amitjangid17/SVJSS/v1/utils"
	"github.com/joho/godotenv"
)

const serviceName = "svjss-directory-backend"

func main() {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	slog.SetDefault(logger)

	slog.Info("Starting Directory Backend initialization")

	shutdownTelemetry, err := monitoring.Setup(context.Background(), monitoring.Config{
		ServiceName: serviceName,
	})
	if err != nil {
		slog.Error("Failed to set up telemetry", "error", err)
		os.Exit(1)
	}

	// Initialize GORM database connection for V1
	v1DbConfig := v1.NewDatabaseConfig()
	gormDB, err := v1.ConnectGormDB(v1DbConfig)
	if err != nil {
		slog.Error("Failed to connect to GORM database", "error", err)
		os.Exit(1)
	}

	// Load sample directory data when requested
	if os.Getenv("RUN_SEED") == "true" {
		if err := v1.SeedV1Data(gormDB); err != nil {
			slog.Error("Failed to seed data", "error", err)
			os.Exit(1)
		}
	}

	// Initialize admin authentication
	authService, err := services.NewAuthServiceFromEnv()
	if err != nil {
		slog.Error("Failed to initialize auth service", "error", err)
		os.Exit(1)
	}

	// Initialize V1 handlers
	v1Handler := v1handlers.NewV1Handler(gormDB, authService)

	// Create a mux for API routes
	apiMux := http.NewServeMux()
	v1Handler.SetupV1Routes(apiMux) // All /api/v1/... routes go here

	// Setup middleware chain
	corsMiddleware := v1middleware.NewCORSMiddleware()

	jwtConfig := v1middleware.JWTAuthConfig{
		SigningKey:     authService.SigningKey(),
		ExpectedIssuer: services.TokenIssuer,
	}
	if err := jwtConfig.Validate(); err != nil {
		slog.Error("Invalid JWT configuration", "error", err)
		os.Exit(1)
	}
	jwtAuthMiddleware := v1middleware.NewJWTAuthMiddleware(jwtConfig)

	// Apply middleware chain (CORS -> metrics -> JWT Auth) to the API mux ONLY
	protectedAPIHandler := corsMiddleware(
		monitoring.HTTPMetricsMiddleware(
			jwtAuthMiddleware.AuthenticateJWT(apiMux),
		),
	)

	// Create the MAIN (top-level) mux for all incoming traffic
	topLevelMux := http.NewServeMux()

	// Register public routes directly on the top-level mux
	topLevelMux.Handle("/health", utils.PanicRecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		type DBHealth struct {
			Status   string `json:"status"`
			Error    string `json:"error,omitempty"`
			Database string `json:"database,omitempty"`
		}
		type HealthStatus struct {
			Status   string   `json:"status"`
			Service  string   `json:"service"`
			Database DBHealth `json:"database"`
		}

		status := HealthStatus{
			Status:   "healthy",
			Service:  serviceName,
			Database: DBHealth{Status: "unknown"},
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if gormDB == nil {
			status.Database = DBHealth{Status: "unhealthy", Error: "GORM connection is nil"}
			status.Status = "unhealthy"
		} else {
			sqlDB, err := gormDB.DB()
			if err != nil {
				status.Database = DBHealth{Status: "unhealthy", Error: fmt.Sprintf("failed to get sql.DB: %v", err)}
				status.Status = "unhealthy"
			} else if err := sqlDB.PingContext(ctx); err != nil {
				status.Database = DBHealth{Status: "unhealthy", Error: err.Error()}
				status.Status = "unhealthy"
			} else {
				status.Database = DBHealth{Status: "healthy", Database: v1DbConfig.Database}
			}
		}

		statusCode := http.StatusOK
		if status.Status != "healthy" {
			statusCode = http.StatusServiceUnavailable
		}

		utils.RespondWithJSON(w, statusCode, status)
	})))

	topLevelMux.Handle("/metrics", monitoring.Handler())

	// Register the protected API routes to the top-level mux
	// All traffic to /api/v1/ (and its sub-paths) will pass through the middleware chain
	topLevelMux.Handle("/api/v1/", protectedAPIHandler)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	addr := ":" + port
	server := &http.Server{
		Addr:         addr,
		Handler:      topLevelMux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Directory Backend starting", "port", port, "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Failed to start Directory Backend", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down Directory Backend...")

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if err := shutdownTelemetry(ctx); err != nil {
		slog.Error("Failed to shut down telemetry", "error", err)
	}

	// Gracefully close database connection
	if gormDB != nil {
		if sqlDB, err := gormDB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}
	}

	slog.Info("Directory Backend exited")
}
