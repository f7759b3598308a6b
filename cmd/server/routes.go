package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"shieldnest.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler            *handlers.AuthHandler
	walletAuthHandler      *handlers.WalletAuthHandler
	walletHandler          *handlers.WalletHandler
	visitorHandler         *handlers.VisitorHandler
	authMiddleware         gin.HandlerFunc
	optionalAuthMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)

			// Wallet challenge/response. Verify runs with optional auth:
			// no session means visitor bootstrap, a session means linking.
			wallet := auth.Group("/wallet")
			{
				wallet.GET("/nonce", d.walletAuthHandler.GetNonce)
				wallet.POST("/verify", d.optionalAuthMiddleware, d.walletAuthHandler.VerifyWallet)
			}
		}

		// Wallet routes (protected)
		wallets := v1.Group("/wallets")
		wallets.Use(d.authMiddleware)
		{
			wallets.GET("", d.walletHandler.ListWallets)
			wallets.POST("", d.walletHandler.AddWallet)
			wallets.PUT("/:id/label", d.walletHandler.UpdateLabel)
			wallets.PUT("/:id/primary", d.walletHandler.SetPrimary)
			wallets.DELETE("/:id", d.walletHandler.Disconnect)
			wallets.POST("/migrate", d.walletHandler.Migrate)
		}

		// Visitor wallet store (public, keyed by X-Visitor-ID)
		visitor := v1.Group("/visitor")
		{
			visitor.GET("/wallets", d.visitorHandler.ListWallets)
			visitor.POST("/wallets", d.visitorHandler.AddWallet)
			visitor.DELETE("/wallets/:address", d.visitorHandler.RemoveWallet)
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "shieldnest-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Visitor-ID, X-Request-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}
