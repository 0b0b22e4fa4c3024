package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fibercare/backend-go/internal/observability"
)

// SetupRouter configures all API routes
func SetupRouter(
	topo *TopologyHandler,
	elements *ElementHandler,
	metrics *observability.Metrics,
	corsOrigin string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(CORSMiddleware(corsOrigin))
	r.Use(PrometheusMiddleware(metrics))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Planning endpoints
	planGroup := r.Group("/api/topology")
	{
		planGroup.POST("/plan", topo.PlanTopology)
		planGroup.POST("/validate", topo.ValidateTopology)
		planGroup.GET("/recommendations", topo.GetRecommendations)
		planGroup.POST("/diagram", topo.GetDiagram)
	}

	// Network element endpoints
	networkGroup := r.Group("/api/network")
	{
		networkGroup.POST("/elements", elements.CreateElement)
		networkGroup.GET("/elements/:type", elements.ListElements)
		networkGroup.GET("/elements/:type/:business_id", elements.GetElement)
		networkGroup.GET("/elements/:type/:business_id/children", topo.GetChildren)
		networkGroup.GET("/elements/:type/:business_id/analysis", topo.AnalyzeElement)
		networkGroup.POST("/elements/:type/:business_id/analysis/archive", topo.ArchiveAnalysis)
		networkGroup.GET("/topology/:business_id", topo.ResolveTopology)
	}

	return r
}
