package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/ecomarket/ecomarket/internal/server/http/handlers"
	"github.com/ecomarket/ecomarket/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade, facade)
	statsHandler := handlers.NewStatsHandler(facade)

	api := engine.Group("/api")
	api.GET("/health", statsHandler.Health)
	api.GET("/statistics", statsHandler.Statistics)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.PUT("/user/payment-details", authHandler.UpdatePaymentDetails)
	authed.POST("/products", productHandler.Create)
	authed.POST("/orders", orderHandler.Create)
	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.POST("/orders/:id/status", orderHandler.Advance)
	authed.GET("/orders/:id/payment-request", paymentHandler.Request)
	authed.POST("/payments/verify", paymentHandler.Verify)

	return engine
}
