package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fibercare/backend-go/internal/domain"
	"github.com/fibercare/backend-go/internal/observability"
	"github.com/fibercare/backend-go/internal/topology"
	"github.com/gin-gonic/gin"
)

// Archiver stores analysis reports in object storage
type Archiver interface {
	ArchiveAnalysis(ctx context.Context, analysis *domain.ExistingAnalysis) (string, error)
}

// TopologyHandler handles planning, validation and graph resolution
// endpoints. All domain decisions live in the topology package; handlers
// only translate HTTP.
type TopologyHandler struct {
	planner   *topology.Planner
	validator *topology.Validator
	resolver  *topology.Resolver
	repo      topology.ElementRepository
	archiver  Archiver
	metrics   *observability.Metrics
}

// NewTopologyHandler creates a new TopologyHandler. The archiver may be nil
// when no archive bucket is configured.
func NewTopologyHandler(
	planner *topology.Planner,
	validator *topology.Validator,
	resolver *topology.Resolver,
	repo topology.ElementRepository,
	archiver Archiver,
	metrics *observability.Metrics,
) *TopologyHandler {
	return &TopologyHandler{
		planner:   planner,
		validator: validator,
		resolver:  resolver,
		repo:      repo,
		archiver:  archiver,
		metrics:   metrics,
	}
}

// PlanRequest is the planning input
type PlanRequest struct {
	Subscribers int    `json:"subscribers" form:"subscribers" binding:"required,min=1"`
	Technology  string `json:"technology" form:"technology" binding:"required"`
}

// PlanTopology plans a topology for a subscriber count and technology and
// returns the plan together with its validation
func (h *TopologyHandler) PlanTopology(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	plan, err := h.planner.Plan(req.Subscribers, req.Technology)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownTechnology) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	h.metrics.RecordPlan(string(plan.Type), plan.IsValid)
	c.JSON(http.StatusOK, gin.H{
		"plan":       plan,
		"validation": h.validator.Validate(plan),
	})
}

// ValidateTopology validates a submitted plan against the rule table
func (h *TopologyHandler) ValidateTopology(c *gin.Context) {
	var plan domain.TopologyPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.validator.Validate(plan))
}

// GetRecommendations returns deployment guidance for a subscriber count
// and technology
func (h *TopologyHandler) GetRecommendations(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	recs, err := h.planner.Recommend(req.Subscribers, req.Technology)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// GetDiagram renders a submitted plan as a stage-by-stage diagram
func (h *TopologyHandler) GetDiagram(c *gin.Context) {
	var plan domain.TopologyPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, topology.Diagram(plan))
}

// ResolveTopology materializes the full deployed tree under an OLT
func (h *TopologyHandler) ResolveTopology(c *gin.Context) {
	businessID := c.Param("business_id")

	start := time.Now()
	tree, err := h.resolver.ResolveTopology(c.Request.Context(), businessID)
	if err != nil {
		if errors.Is(err, domain.ErrElementNotFound) {
			h.metrics.RecordResolution("not_found", 0, 0)
			c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
			return
		}
		h.metrics.RecordResolution("error", 0, 0)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	h.metrics.RecordResolution("ok", time.Since(start).Seconds(), tree.ElementCount)
	c.JSON(http.StatusOK, tree)
}

// GetChildren returns an element's direct children grouped by type
func (h *TopologyHandler) GetChildren(c *gin.Context) {
	elem, ok := h.lookupElement(c)
	if !ok {
		return
	}

	byType, err := h.resolver.ResolveChildren(c.Request.Context(), *elem)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"element": elem, "children": byType})
}

// AnalyzeElement audits a deployed element's output chain against the
// passive loss budget
func (h *TopologyHandler) AnalyzeElement(c *gin.Context) {
	elem, ok := h.lookupElement(c)
	if !ok {
		return
	}

	analysis, err := h.validator.AnalyzeExisting(c.Request.Context(), *elem)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	h.metrics.RecordAnalysis(analysis.IsValid)
	c.JSON(http.StatusOK, analysis)
}

// ArchiveAnalysis runs an analysis and stores the report in object storage
func (h *TopologyHandler) ArchiveAnalysis(c *gin.Context) {
	if h.archiver == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Analysis archive not configured"})
		return
	}

	elem, ok := h.lookupElement(c)
	if !ok {
		return
	}

	analysis, err := h.validator.AnalyzeExisting(c.Request.Context(), *elem)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	key, err := h.archiver.ArchiveAnalysis(c.Request.Context(), analysis)
	if err != nil {
		h.metrics.RecordArchive("error")
		c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
		return
	}

	h.metrics.RecordArchive("ok")
	c.JSON(http.StatusCreated, gin.H{"key": key, "analysis": analysis})
}

// lookupElement fetches the element addressed by the :type/:business_id
// path, writing the error response itself when the lookup fails
func (h *TopologyHandler) lookupElement(c *gin.Context) (*domain.Element, bool) {
	elementType, ok := parseElementType(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "unknown element type: " + c.Param("type")})
		return nil, false
	}

	elem, err := h.repo.FindByBusinessID(c.Request.Context(), elementType, c.Param("business_id"))
	if err != nil {
		if errors.Is(err, domain.ErrElementNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return nil, false
	}
	return elem, true
}
