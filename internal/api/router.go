package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"breezerelay/internal/metrics"
	"breezerelay/internal/middleware"
)

// requestTimeout bounds one request end to end. A cold lot-size refresh
// chains the publisher priming hit, the listing scan and the archive
// download, so the budget sits well above their summed timeouts.
const requestTimeout = 60 * time.Second

// NewRouter creates the Gin engine with all routes configured.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery,
//     ErrorHandler, CORS, request timeout).
//   - Mounts the open endpoints: /health, /metrics, /swagger.
//   - Mounts the shared-secret protected relay endpoints.
//
// token is read per request so the shared secret never has to be baked
// into the router.
func NewRouter(handler *Handler, token func() string) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
	)

	// The spreadsheet add-on calls from browser contexts on changing
	// origins; credentials stay disabled.
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.AppTokenHeader},
	}))

	router.Use(middleware.RequestTimeout(requestTimeout))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	RegisterHealth(router)

	protected := router.Group("/", middleware.SharedSecret(token))
	{
		protected.POST("/quote", handler.GetQuote)
		protected.POST("/option_strikes", handler.GetOptionStrikes)
		protected.GET("/lot_size/:symbol", handler.GetLotSize)
		protected.POST("/lot_size/refresh", handler.RefreshLotSizes)
		protected.GET("/instruments", handler.SearchInstruments)
	}

	return router
}
