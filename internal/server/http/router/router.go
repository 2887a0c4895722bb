package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/qrorder/internal/server/http/handlers"
	"github.com/polkiloo/qrorder/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.OrderingFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.CORS())
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	sessionHandler := handlers.NewSessionHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/healthz", healthHandler.Check)

	api := engine.Group("/api")
	api.POST("/sessions", sessionHandler.Create)

	orders := api.Group("/orders")
	orders.Use(middleware.SessionRequired(facade))
	orders.POST("", orderHandler.Create)
	orders.GET("/:id", orderHandler.Get)

	payments := api.Group("/payments")
	payments.POST("", paymentHandler.Create)
	payments.POST("/ecpay/callback", paymentHandler.ECPayCallback)

	return engine
}
