package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/org-admin-api/internal/database"
	apierrors "github.com/yukikurage/org-admin-api/internal/errors"
	"gorm.io/gorm"
)

// Endpoints is the catalogue advertised by the index routes and the 404 body.
var Endpoints = []string{
	"GET /api/organizations",
	"POST /api/organizations",
	"GET /api/organizations/:id",
	"PUT /api/organizations/:id",
	"DELETE /api/organizations/:id",
	"PATCH /api/organizations/:id/status",
	"POST /api/organizations/:id/logo",
	"GET /api/organizations/organization/:orgId",
	"GET /api/users",
	"POST /api/users",
	"GET /api/users/count",
	"GET /api/users/count/organization",
	"GET /api/users/organization/:orgId",
	"GET /api/users/:id",
	"PUT /api/users/:id",
	"DELETE /api/users/:id",
	"PATCH /api/users/:id/status",
}

type SystemHandler struct {
	db      *gorm.DB
	version string
}

func NewSystemHandler(db *gorm.DB, version string) *SystemHandler {
	return &SystemHandler{
		db:      db,
		version: version,
	}
}

// Index returns the service banner
func (h *SystemHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Organization Admin API is running",
		"status":  "ok",
		"version": h.version,
		"endpoints": gin.H{
			"organizations": "/api/organizations",
			"users":         "/api/users",
			"health":        "/health",
		},
	})
}

// APIIndex returns the endpoint catalogue
func (h *SystemHandler) APIIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Organization Admin API",
		"version":   h.version,
		"endpoints": Endpoints,
	})
}

// Health reports whether the database is reachable
func (h *SystemHandler) Health(c *gin.Context) {
	if err := database.Ping(h.db); err != nil {
		_ = c.Error(err)
		apierrors.ServiceUnavailable(c, "Database unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// NotFound answers unmatched routes
func (h *SystemHandler) NotFound(c *gin.Context) {
	apierrors.RouteNotFound(c, Endpoints)
}
