package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kunalaswar/HireFlow/internal/handlers"
	"github.com/kunalaswar/HireFlow/internal/web"
)

// RegisterRoutes mounts the REST API under /api/v1 and the server-rendered
// pages at the root.
func RegisterRoutes(r *gin.Engine, h *handlers.AppHandlers, w *web.Web) {
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)

	w.RegisterRoutes(r)
}
