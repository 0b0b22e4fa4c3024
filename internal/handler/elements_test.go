package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateElement(t *testing.T) {
	r := setupTestRouter(&fakeStore{}, nil)

	w, body := doJSON(t, r, "POST", "/api/network/elements",
		`{"type": "olt", "business_id": "OLT-100", "name": "Sector 7 head end", "technology": "gpon"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "OLT-100", body["business_id"])

	w, _ = doJSON(t, r, "GET", "/api/network/elements/olt/OLT-100", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateElementDuplicate(t *testing.T) {
	r := setupTestRouter(seedStore(), nil)

	w, _ := doJSON(t, r, "POST", "/api/network/elements",
		`{"type": "olt", "business_id": "OLT-001"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateElementRejectsUnknownType(t *testing.T) {
	r := setupTestRouter(&fakeStore{}, nil)

	w, _ := doJSON(t, r, "POST", "/api/network/elements",
		`{"type": "router", "business_id": "RT-001"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetElementNotFound(t *testing.T) {
	r := setupTestRouter(&fakeStore{}, nil)

	w, _ := doJSON(t, r, "GET", "/api/network/elements/ms/MS-404", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListElements(t *testing.T) {
	r := setupTestRouter(seedStore(), nil)

	w, body := doJSON(t, r, "GET", "/api/network/elements/ms", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, body["count"])
}

func TestListElementsUnknownType(t *testing.T) {
	r := setupTestRouter(seedStore(), nil)

	w, _ := doJSON(t, r, "GET", "/api/network/elements/switch", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
