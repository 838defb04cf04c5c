package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(path string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", path, nil)
	return c, w
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		name       string
		respond    func(c *gin.Context)
		wantStatus int
		wantBody   string
	}{
		{"not found default", func(c *gin.Context) { NotFound(c, "") }, http.StatusNotFound, `{"code":"NOT_FOUND","message":"Resource not found"}`},
		{"bad request", func(c *gin.Context) { BadRequest(c, "Invalid user ID") }, http.StatusBadRequest, `{"code":"INVALID_INPUT","message":"Invalid user ID"}`},
		{"missing field", func(c *gin.Context) { MissingField(c, "name is required", gin.H{"field": "name"}) }, http.StatusBadRequest, `{"code":"MISSING_FIELD","message":"name is required","details":{"field":"name"}}`},
		{"invalid format", func(c *gin.Context) { InvalidFormat(c, "Invalid request body", gin.H{"error": "unexpected EOF"}) }, http.StatusBadRequest, `{"code":"INVALID_FORMAT","message":"Invalid request body","details":{"error":"unexpected EOF"}}`},
		{"conflict", func(c *gin.Context) { Conflict(c, "") }, http.StatusConflict, `{"code":"CONFLICT","message":"Resource conflict"}`},
		{"internal", func(c *gin.Context) { InternalError(c, "connection reset") }, http.StatusInternalServerError, `{"code":"INTERNAL_ERROR","message":"connection reset"}`},
		{"unavailable", func(c *gin.Context) { ServiceUnavailable(c, "") }, http.StatusServiceUnavailable, `{"code":"SERVICE_UNAVAILABLE","message":"Service temporarily unavailable"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext("/")
			tt.respond(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.True(t, c.IsAborted())
			assert.Len(t, c.Errors, 1)
		})
	}
}

func TestRouteNotFound(t *testing.T) {
	c, w := newTestContext("/api/nope")
	RouteNotFound(c, []string{"GET /api/users"})

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body["code"])
	assert.Equal(t, "/api/nope", body["path"])
	assert.Equal(t, []any{"GET /api/users"}, body["available_endpoints"])
}
