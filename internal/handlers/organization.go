package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/org-admin-api/internal/constants"
	"github.com/yukikurage/org-admin-api/internal/dto"
	"github.com/yukikurage/org-admin-api/internal/middleware"
	"github.com/yukikurage/org-admin-api/internal/services"
	"github.com/yukikurage/org-admin-api/internal/utils"
)

// multipartOverhead is the room left for boundaries and part headers on top
// of the logo size limit.
const multipartOverhead = 64 << 10

type OrganizationHandler struct {
	orgService *services.OrganizationService
}

func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
	}
}

// CreateOrganization creates a new organization
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	var input services.CreateOrganizationInput
	if !bindJSON(c, &input) {
		return
	}

	org, err := h.orgService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, org)
}

// ListOrganizations returns organizations filtered by ?search= and ?status=,
// newest first, each with its user count
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	orgs, err := h.orgService.List(c.Request.Context(), utils.GetOrganizationFilter(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationList(orgs))
}

// GetOrganization returns an organization with its users
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	id, _ := middleware.GetID(c)

	org, err := h.orgService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDetail(*org))
}

// UpdateOrganization applies a partial update
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	id, _ := middleware.GetID(c)

	var patch services.OrganizationPatch
	if !bindJSON(c, &patch) {
		return
	}

	org, err := h.orgService.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

// DeleteOrganization deletes an organization and its users
func (h *OrganizationHandler) DeleteOrganization(c *gin.Context) {
	id, _ := middleware.GetID(c)

	if err := h.orgService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Organization deleted successfully",
	})
}

// ToggleOrganizationStatus flips the organization between Active and Inactive
func (h *OrganizationHandler) ToggleOrganizationStatus(c *gin.Context) {
	id, _ := middleware.GetID(c)

	org, err := h.orgService.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

// UploadLogo stores the multipart "logo" file and records its URL
func (h *OrganizationHandler) UploadLogo(c *gin.Context) {
	id, _ := middleware.GetID(c)

	limit := h.orgService.MaxLogoBytes()
	if limit > 0 {
		if c.Request.ContentLength > limit+multipartOverhead {
			respondServiceError(c, services.LogoTooLargeError(limit))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)
	}

	var upload *services.LogoUpload
	header, err := c.FormFile(constants.FormFieldLogo)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondServiceError(c, services.LogoTooLargeError(limit))
		return
	}
	if err == nil {
		file, err := header.Open()
		if err != nil {
			respondServiceError(c, err)
			return
		}
		defer func(f multipart.File) { _ = f.Close() }(file)

		upload = &services.LogoUpload{
			Filename: header.Filename,
			Size:     header.Size,
			Content:  file,
		}
	}

	org, err := h.orgService.AttachLogo(c.Request.Context(), id, upload)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLogoResponse(*org))
}

// ListOrganizationUsers returns the users of an organization, newest first
func (h *OrganizationHandler) ListOrganizationUsers(c *gin.Context) {
	id, _ := middleware.GetID(c)

	org, users, err := h.orgService.ListUsers(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationUsersResponse(*org, users))
}
