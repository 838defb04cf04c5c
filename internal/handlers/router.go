package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/org-admin-api/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by SetupRoutes.
type Handlers struct {
	Organizations *OrganizationHandler
	Users         *UserHandler
	System        *SystemHandler
}

// SetupRoutes mounts the API on r.
func SetupRoutes(r *gin.Engine, h Handlers) {
	r.GET("/", h.System.Index)
	r.GET("/health", h.System.Health)
	r.NoRoute(h.System.NotFound)

	api := r.Group("/api")
	{
		api.GET("", h.System.APIIndex)

		orgID := middleware.RequireOrganizationID("id")
		ownerID := middleware.RequireOrganizationID("orgId")

		orgs := api.Group("/organizations")
		{
			orgs.POST("", h.Organizations.CreateOrganization)
			orgs.GET("", h.Organizations.ListOrganizations)
			orgs.GET("/organization/:orgId", ownerID, h.Organizations.ListOrganizationUsers)
			orgs.GET("/:id", orgID, h.Organizations.GetOrganization)
			orgs.PUT("/:id", orgID, h.Organizations.UpdateOrganization)
			orgs.DELETE("/:id", orgID, h.Organizations.DeleteOrganization)
			orgs.PATCH("/:id/status", orgID, h.Organizations.ToggleOrganizationStatus)
			orgs.POST("/:id/logo", orgID, h.Organizations.UploadLogo)
		}

		userID := middleware.RequireUserID("id")

		users := api.Group("/users")
		{
			users.POST("", h.Users.CreateUser)
			users.GET("", h.Users.ListUsers)
			users.GET("/count", h.Users.CountUsers)
			users.GET("/count/organization", h.Users.CountUsersByOrganization)
			users.GET("/organization/:orgId", ownerID, h.Users.ListOrganizationUsers)
			users.GET("/:id", userID, h.Users.GetUser)
			users.PUT("/:id", userID, h.Users.UpdateUser)
			users.DELETE("/:id", userID, h.Users.DeleteUser)
			users.PATCH("/:id/status", userID, h.Users.ToggleUserStatus)
		}
	}
}
