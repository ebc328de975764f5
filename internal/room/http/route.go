package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	group := g.Group("/rooms")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/available", h.Available)
		group.GET("/:id", h.Get)
		group.POST("", staffMiddleware, h.Create)
	}
}
