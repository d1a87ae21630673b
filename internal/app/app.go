package app

import (
	"github.com/gin-gonic/gin"

	"breezerelay/config"
	"breezerelay/internal/api"
	"breezerelay/internal/breeze"
	"breezerelay/internal/lotsize"
	"breezerelay/internal/service"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the Breeze client from configured credentials.
//   - Initializes the NSE lot-size cache (loaded lazily on first lookup).
//   - Creates the quote service and the HTTP handler layer.
//   - Configures the Gin router with all API routes and probes.
//   - Provides a cleanup function to release idle connections.
//
// Credentials and the app token are deliberately not validated here;
// missing values surface per request so the relay can boot without them.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Breeze session is negotiated on first use, not here.
	client := breeze.NewClient(breeze.Credentials{
		APIKey:       cfg.Breeze.APIKey,
		APISecret:    cfg.Breeze.APISecret,
		SessionToken: cfg.Breeze.SessionToken,
	}, breeze.WithBaseURL(cfg.Breeze.BaseURL))

	// Lot-size cache over the NSE contract archive.
	cache := lotsize.New(lotsize.Config{
		OverrideURL: cfg.NSE.ContractURL,
		ReportsURL:  cfg.NSE.ReportsURL,
		ArchiveBase: cfg.NSE.ArchiveBaseURL,
		HomeURL:     cfg.NSE.HomeURL,
	})

	// Initialize service layer (business logic)
	svc := service.NewQuoteService(client, cache)

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc, cache)

	// Setup Gin router with routes; the token is read per request so
	// rotation does not require a restart.
	router := api.NewRouter(handler, func() string { return config.AppConfig.Auth.AppToken })

	// Cleanup resources on shutdown
	cleanup := func() {
		cache.Close()
		client.CloseIdleConnections()
	}

	return router, cleanup, nil
}
