package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/fibercare/backend-go/internal/domain"
	"github.com/gin-gonic/gin"
)

// ElementStore is the persistence surface the element handlers need
type ElementStore interface {
	Create(ctx context.Context, elem domain.Element) (*domain.Element, error)
	FindByBusinessID(ctx context.Context, elementType domain.ElementType, businessID string) (*domain.Element, error)
	ListByType(ctx context.Context, elementType domain.ElementType) ([]domain.Element, error)
}

// ElementHandler handles network element record endpoints
type ElementHandler struct {
	store ElementStore
}

// NewElementHandler creates a new ElementHandler
func NewElementHandler(store ElementStore) *ElementHandler {
	return &ElementHandler{store: store}
}

// CreateElement registers a new network element record
func (h *ElementHandler) CreateElement(c *gin.Context) {
	var elem domain.Element
	if err := c.ShouldBindJSON(&elem); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if _, ok := parseElementType(string(elem.Type)); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "unknown element type: " + string(elem.Type)})
		return
	}

	created, err := h.store.Create(c.Request.Context(), elem)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateBusinessID) {
			c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetElement returns one element by type and business id
func (h *ElementHandler) GetElement(c *gin.Context) {
	elementType, ok := parseElementType(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "unknown element type: " + c.Param("type")})
		return
	}

	elem, err := h.store.FindByBusinessID(c.Request.Context(), elementType, c.Param("business_id"))
	if err != nil {
		if errors.Is(err, domain.ErrElementNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, elem)
}

// ListElements returns every element of one type
func (h *ElementHandler) ListElements(c *gin.Context) {
	elementType, ok := parseElementType(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "unknown element type: " + c.Param("type")})
		return
	}

	elements, err := h.store.ListByType(c.Request.Context(), elementType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"elements": elements, "count": len(elements)})
}

var elementTypes = map[string]domain.ElementType{
	"olt":      domain.ElementOLT,
	"ms":       domain.ElementMS,
	"subms":    domain.ElementSubMS,
	"fdb":      domain.ElementFDB,
	"x2":       domain.ElementX2,
	"customer": domain.ElementCustomer,
}

// parseElementType maps a path segment to an element type
func parseElementType(s string) (domain.ElementType, bool) {
	t, ok := elementTypes[s]
	return t, ok
}
