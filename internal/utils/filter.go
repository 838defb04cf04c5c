package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/org-admin-api/internal/constants"
	"github.com/yukikurage/org-admin-api/internal/repository"
)

// GetOrganizationFilter extracts the search and status filters from the
// query string. Absent or blank values disable the filter.
func GetOrganizationFilter(c *gin.Context) repository.OrganizationFilter {
	return repository.OrganizationFilter{
		Search: strings.TrimSpace(c.Query(constants.QuerySearch)),
		Status: strings.TrimSpace(c.Query(constants.QueryStatus)),
	}
}
