package handlers

import (
	"errors"
	"unicode"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/org-admin-api/internal/errors"
	"github.com/yukikurage/org-admin-api/internal/services"
)

// respondServiceError maps a service error to its HTTP response.
func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		details := gin.H{"field": verr.Field}
		if len(verr.Fields) > 0 {
			details["fields"] = verr.Fields
		}
		if verr.Missing {
			apierrors.MissingField(c, verr.Message, details)
			return
		}
		apierrors.BadRequestWithDetails(c, verr.Message, details)
	case errors.Is(err, services.ErrSlugTaken):
		apierrors.Conflict(c, "Organization with this slug already exists")
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "User with this email already exists")
	case errors.Is(err, services.ErrConstraintViolation):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, capitalize(err.Error()))
	default:
		apierrors.InternalError(c, err.Error())
	}
}

func capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}

// bindJSON decodes the request body, responding 400 on malformed input.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		apierrors.InvalidFormat(c, "Invalid request body", gin.H{"error": err.Error()})
		return false
	}
	return true
}
