package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gisteam.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	healthHandler   *handlers.HealthHandler
	adminHandler    *handlers.AdminHandler
	adminMiddleware gin.HandlerFunc
	metrics         gin.HandlerFunc
}

func metricsHandler(g prometheus.Gatherer) gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	r.GET("/health", d.healthHandler.Live)
	r.GET("/ready", d.healthHandler.Ready)
	r.GET("/metrics", d.metrics)

	admin := r.Group("/api/v1/admin")
	admin.Use(d.adminMiddleware)
	{
		admin.POST("/reconcile", d.adminHandler.Reconcile)
		admin.GET("/audit", d.adminHandler.Audit)
		admin.GET("/contact-messages", d.adminHandler.ListContactMessages)
		admin.GET("/contact-messages/:id", d.adminHandler.GetContactMessage)
	}
}
