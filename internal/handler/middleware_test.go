package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple path", "/api/topology/plan", "/api/topology/plan"},
		{"element by id", "/api/network/elements/olt/OLT-001", "/api/network/elements/olt/{id}"},
		{"tree by id", "/api/network/topology/OLT-001", "/api/network/topology/{id}"},
		{"analysis by id", "/api/network/elements/ms/MS-17/analysis", "/api/network/elements/ms/{id}/analysis"},
		{"root path", "/", "/"},
		{"health", "/health", "/health"},
		{"metrics", "/metrics", "/metrics"},
		{"trailing slash", "/api/network/elements/olt/", "/api/network/elements/olt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizePath(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsBusinessID(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"OLT-001", true},
		{"SUBMS-12A", true},
		{"X2-7", true},
		{"plan", false},
		{"recommendations", false},
		{"analysis-reports", false}, // lowercase prefix is a route word
		{"-001", false},
		{"OLT-", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := isBusinessID(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}
