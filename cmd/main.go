package main

//
//  @title           breezerelay API
//  @version         1.0
//  @description     Authenticated relay over the ICICI Breeze trading API with NSE lot-size enrichment.
//  @contact.name    API Support
//  @contact.email   support@example.com
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @securityDefinitions.apikey ApiKeyAuth
//  @in              header
//  @name            X-APP-TOKEN
//
//  @tag.name        quotes
//  @tag.description Market quotes and option-chain strike lists
//
//  @tag.name        lotsize
//  @tag.description NSE derivative lot sizes and instrument search
//
//  @tag.name        health
//  @tag.description Liveness probe

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"breezerelay/config"
	_ "breezerelay/docs" // swagger docs
	"breezerelay/internal/app"
	"breezerelay/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// The write timeout sits above the 60s request timeout middleware so slow
// lot-size refreshes are cancelled by the middleware, not cut off mid-write.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., idle connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the breezerelay application.
//
// Flags:
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API server")
	flag.Parse()

	router, cleanup, err := app.InitializeApp()
	if err != nil {
		logger.L().Fatal().Err(err).Msg("app init error")
	}

	server := startServer(router, *port)
	gracefulShutdown(ctx, server, cleanup)
}
