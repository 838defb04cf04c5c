package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/org-admin-api/internal/constants"
	apierrors "github.com/yukikurage/org-admin-api/internal/errors"
	"github.com/yukikurage/org-admin-api/internal/logger"
)

// RequireOrganizationID parses the organization ID path parameter
func RequireOrganizationID(param string) gin.HandlerFunc {
	return requireID(param, "Invalid organization ID", func(id uint64) logger.LogFields {
		return logger.LogFields{OrganizationID: &id}
	})
}

// RequireUserID parses the user ID path parameter
func RequireUserID(param string) gin.HandlerFunc {
	return requireID(param, "Invalid user ID", func(id uint64) logger.LogFields {
		return logger.LogFields{UserID: &id}
	})
}

func requireID(param, message string, fields func(uint64) logger.LogFields) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, message)
			return
		}

		c.Set(constants.ContextKeyID, id)
		ctx := logger.WithLogFields(c.Request.Context(), fields(id))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetID retrieves the path ID parsed by RequireOrganizationID or RequireUserID
func GetID(c *gin.Context) (uint64, bool) {
	id, exists := c.Get(constants.ContextKeyID)
	if !exists {
		return 0, false
	}
	v, ok := id.(uint64)
	return v, ok
}
