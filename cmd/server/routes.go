package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"osrs-bingo.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	interactionHandler  *handlers.InteractionHandler
	signatureMiddleware gin.HandlerFunc
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	// Discord delivers every slash command here; the signature gate
	// rejects anything Discord did not sign.
	r.POST("/interactions", d.signatureMiddleware, d.interactionHandler.Handle)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
