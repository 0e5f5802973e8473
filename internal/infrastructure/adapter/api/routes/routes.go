package routes

import (
	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/api/handler"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	walletHandler *handler.WalletHandler,
	catalogHandler *handler.CatalogHandler,
	telegramHandler *handler.TelegramHandler,
) {
	// Session routes
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", authHandler.Logout)

		// GET because the bot hands out a clickable link
		authRoutes.GET("/telegram", authHandler.RedeemTelegramToken)
	}

	// Wallet routes
	walletRoutes := router.Group("/wallet")
	{
		walletRoutes.GET("", walletHandler.Balance)
		walletRoutes.POST("/deposit", walletHandler.Deposit)
		walletRoutes.GET("/transactions", walletHandler.Transactions)
	}

	// Purchase history
	router.GET("/purchases", walletHandler.Purchases)

	// Catalog routes
	recRoutes := router.Group("/recommendations")
	{
		recRoutes.GET("", catalogHandler.Active)
		recRoutes.GET("/all", catalogHandler.List)
		recRoutes.POST("", catalogHandler.Create)
		recRoutes.PATCH("/:id", catalogHandler.Update)
		recRoutes.DELETE("/:id", catalogHandler.Delete)
		recRoutes.POST("/:id/result", catalogHandler.MarkResult)
		recRoutes.POST("/:id/purchase", catalogHandler.Purchase)
	}

	// Bot webhook
	router.POST("/telegram/webhook", telegramHandler.Webhook)
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, parser middleware.TokenParser) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.Auth(parser))
}
