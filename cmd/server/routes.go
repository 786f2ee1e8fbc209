package main

import (
	"github.com/gin-gonic/gin"

	"github.com/lawithanx/jcorp/internal/interfaces/http/handlers"
	"github.com/lawithanx/jcorp/internal/interfaces/http/middleware"
)

type routeDeps struct {
	paymentHandler  *handlers.PaymentHandler
	downloadHandler *handlers.DownloadHandler
	adminHandler    *handlers.AdminHandler
	catalogHandler  *handlers.CatalogHandler
	authMiddleware  gin.HandlerFunc
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		// Payment routes (public)
		payment := api.Group("/payment")
		{
			payment.GET("/info", d.paymentHandler.GetInfo)
			payment.POST("/verify", d.paymentHandler.VerifyPayment)
			payment.POST("/fiat", middleware.IdempotencyMiddleware(), d.paymentHandler.ProcessFiatPayment)
		}

		// Download gate (public, token is the credential)
		api.GET("/download/:token", d.downloadHandler.Download)

		// Catalog routes (public)
		api.GET("/projects", d.catalogHandler.ListProjects)
		api.GET("/projects/:id", d.catalogHandler.GetProject)
		api.GET("/agents", d.catalogHandler.ListAgents)

		// Admin routes
		admin := api.Group("/admin")
		{
			admin.POST("/login", d.adminHandler.Login)
			admin.POST("/logout", d.adminHandler.Logout)

			protected := admin.Group("", d.authMiddleware)
			{
				protected.GET("/projects", d.catalogHandler.ListProjects)
				protected.POST("/projects", d.catalogHandler.CreateProject)
				protected.PUT("/projects/:id", d.catalogHandler.UpdateProject)
				protected.DELETE("/projects/:id", d.catalogHandler.DeleteProject)

				protected.GET("/agents", d.catalogHandler.ListAgents)
				protected.POST("/agents", d.catalogHandler.CreateAgent)
				protected.PUT("/agents/:id", d.catalogHandler.UpdateAgent)
				protected.DELETE("/agents/:id", d.catalogHandler.DeleteAgent)
			}
		}
	}
}
