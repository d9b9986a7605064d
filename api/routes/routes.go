package routes

import (
	"riftrewind/api/handlers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	Engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		api:    engine.Group("/api/v1"),
		Engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.RecapHandler:
			r.registerRecapHandler(handler)
		case *handlers.HealthHandler:
			r.registerHealthHandler(handler)
		}
	}
}

// Register the metrics endpoint.
func (r *Router) SetupMetrics() {
	r.Engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Register the recap handler.
func (r *Router) registerRecapHandler(handler *handlers.RecapHandler) {
	recap := r.api.Group("/recap")
	{
		recap.GET("/:region/:gameName/:gameTag", handler.GetRecap)
	}
}

// Register the health handler.
func (r *Router) registerHealthHandler(handler *handlers.HealthHandler) {
	r.Engine.GET("/health", handler.GetHealth)
}

// Start the router.
func (r *Router) Run(addr string) error {
	return r.Engine.Run(addr)
}
