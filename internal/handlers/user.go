package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/org-admin-api/internal/dto"
	"github.com/yukikurage/org-admin-api/internal/middleware"
	"github.com/yukikurage/org-admin-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser creates a user in an existing organization
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ListUsers returns all users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUser returns a user
func (h *UserHandler) GetUser(c *gin.Context) {
	id, _ := middleware.GetID(c)

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser applies a partial update
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, _ := middleware.GetID(c)

	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser deletes a user
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, _ := middleware.GetID(c)

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "User deleted successfully",
	})
}

// ToggleUserStatus flips the user between Active and Inactive
func (h *UserHandler) ToggleUserStatus(c *gin.Context) {
	id, _ := middleware.GetID(c)

	user, err := h.userService.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// CountUsers returns the total number of users
func (h *UserHandler) CountUsers(c *gin.Context) {
	total, err := h.userService.CountAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserCountResponse{TotalUsers: total})
}

// CountUsersByOrganization returns the number of users per organization
func (h *UserHandler) CountUsersByOrganization(c *gin.Context) {
	counts, err := h.userService.CountByOrganization(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationUserCounts(counts))
}

// ListOrganizationUsers returns the users of an organization, newest first
func (h *UserHandler) ListOrganizationUsers(c *gin.Context) {
	id, _ := middleware.GetID(c)

	org, users, err := h.userService.ListByOrganization(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationUsersResponse(*org, users))
}
