package main

import (
	"net/http"
	"time"

	"brixium.backend/internal/interfaces/http/handlers"
	"brixium.backend/internal/interfaces/http/middleware"
	"brixium.backend/pkg/metrics"
	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "brixium-backend"
	serviceVersion = "1.0.0"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	accountHandler      *handlers.AccountHandler
	ledgerHandler       *handlers.LedgerHandler
	kycHandler          *handlers.KYCHandler
	withdrawalHandler   *handlers.WithdrawalHandler
	notificationHandler *handlers.NotificationHandler
	settingsHandler     *handlers.SettingsHandler
	adminHandler        *handlers.AdminHandler
	authMiddleware      gin.HandlerFunc
	idempotencyTTL      time.Duration
}

func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) {
	r.Use(middleware.CORSMiddleware(allowedOrigins))
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	idempotent := middleware.IdempotencyMiddleware(d.idempotencyTTL)

	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", d.authHandler.Signup)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/admin/login", d.authHandler.AdminLogin)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.POST("/logout", d.authHandler.Logout)
		}

		v1.GET("/settings/public", d.settingsHandler.Public)
		v1.GET("/exchange/rates", d.ledgerHandler.Rates)

		// Customer routes (protected)
		customer := v1.Group("")
		customer.Use(d.authMiddleware, middleware.RequireCustomer())
		{
			customer.GET("/me", d.authHandler.Me)
			customer.PUT("/me/profile", d.accountHandler.UpdateProfile)
			customer.PUT("/me/settings", d.accountHandler.UpdateSettings)
			customer.PUT("/me/password", d.authHandler.ChangePassword)

			customer.GET("/transfers/recipient", d.ledgerHandler.LookupRecipient)
			customer.POST("/transfers", idempotent, d.ledgerHandler.Transfer)
			customer.GET("/exchange/quote", d.ledgerHandler.Quote)
			customer.POST("/exchange", idempotent, d.ledgerHandler.Exchange)
			customer.GET("/transactions", d.ledgerHandler.ListTransactions)

			customer.POST("/withdrawals", idempotent, d.withdrawalHandler.Request)
			customer.GET("/withdrawals", d.withdrawalHandler.ListMine)

			customer.POST("/kyc", d.kycHandler.Submit)
			customer.GET("/kyc", d.kycHandler.Status)

			customer.GET("/notifications", d.notificationHandler.List)
			customer.POST("/notifications/:id/read", d.notificationHandler.MarkRead)

			customer.GET("/fees/quote", d.settingsHandler.FeeQuote)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/dashboard", d.adminHandler.Dashboard)

			admin.GET("/users", d.adminHandler.ListUsers)
			admin.GET("/users/:id", d.adminHandler.GetUser)
			admin.PUT("/users/:id", d.adminHandler.UpdateUser)
			admin.POST("/users/:id/fund", idempotent, d.ledgerHandler.Fund)
			admin.POST("/users/:id/deduct", idempotent, d.ledgerHandler.Deduct)
			admin.PUT("/users/:id/kyc", d.kycHandler.SetVerification)
			admin.POST("/users/:id/message", d.notificationHandler.Message)

			admin.GET("/transactions", d.ledgerHandler.ListAllTransactions)

			admin.GET("/kyc", d.kycHandler.List)
			admin.POST("/kyc/:id/review", d.kycHandler.Review)

			admin.GET("/withdrawals", d.withdrawalHandler.List)
			admin.POST("/withdrawals/:id/process", idempotent, d.withdrawalHandler.Process)

			admin.GET("/fees", d.settingsHandler.ListFees)
			admin.POST("/fees", d.settingsHandler.CreateFee)
			admin.PUT("/fees/:id", d.settingsHandler.UpdateFee)
			admin.DELETE("/fees/:id", d.settingsHandler.DeleteFee)

			admin.GET("/settings", d.settingsHandler.Get)
			admin.PUT("/settings", d.settingsHandler.Update)

			admin.GET("/notifications", d.notificationHandler.List)
			admin.POST("/notifications/:id/read", d.notificationHandler.MarkRead)
		}
	}
}
