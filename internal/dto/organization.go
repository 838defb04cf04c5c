package dto

import (
	"github.com/yukikurage/org-admin-api/internal/models"
	"github.com/yukikurage/org-admin-api/internal/repository"
	"github.com/yukikurage/org-admin-api/internal/services"
)

// OrganizationListItem is an organization in list responses, annotated with
// its number of users
type OrganizationListItem struct {
	models.Organization
	UserCount int64 `json:"userCount"`
}

// OrganizationDetail is a single organization with its users. Users is
// always present, even when empty.
type OrganizationDetail struct {
	models.Organization
	Users []models.User `json:"users"`
}

// OrganizationUsersResponse lists the users of one organization
type OrganizationUsersResponse struct {
	Organization   string        `json:"organization"`
	OrganizationID uint64        `json:"organization_id"`
	UserCount      int           `json:"userCount"`
	Users          []UserSummary `json:"users"`
}

// OrganizationUserCount is one entry of the users-per-organization count
type OrganizationUserCount struct {
	OrganizationID uint64 `json:"organization_id"`
	UserCount      int64  `json:"userCount"`
}

// LogoResponse is returned after a logo upload
type LogoResponse struct {
	Message string `json:"message"`
	LogoURL string `json:"logo_url"`
}

// MessageResponse carries a human readable confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// ToOrganizationList converts service results to list items
func ToOrganizationList(orgs []services.OrganizationWithCount) []OrganizationListItem {
	items := make([]OrganizationListItem, len(orgs))
	for i, org := range orgs {
		items[i] = OrganizationListItem{
			Organization: org.Organization,
			UserCount:    org.UserCount,
		}
	}
	return items
}

// ToOrganizationDetail converts an organization loaded with its users
func ToOrganizationDetail(org models.Organization) OrganizationDetail {
	users := org.Users
	if users == nil {
		users = []models.User{}
	}
	return OrganizationDetail{Organization: org, Users: users}
}

// ToOrganizationUsersResponse converts an organization and its users
func ToOrganizationUsersResponse(org models.Organization, users []models.User) OrganizationUsersResponse {
	return OrganizationUsersResponse{
		Organization:   org.Name,
		OrganizationID: org.ID,
		UserCount:      len(users),
		Users:          ToUserSummaries(users),
	}
}

// ToOrganizationUserCounts converts grouped counts
func ToOrganizationUserCounts(counts []repository.OrganizationUserCount) []OrganizationUserCount {
	out := make([]OrganizationUserCount, len(counts))
	for i, c := range counts {
		out[i] = OrganizationUserCount{
			OrganizationID: c.OrganizationID,
			UserCount:      c.UserCount,
		}
	}
	return out
}

// ToLogoResponse builds the upload confirmation for org
func ToLogoResponse(org models.Organization) LogoResponse {
	resp := LogoResponse{Message: "Logo uploaded successfully"}
	if org.LogoURL != nil {
		resp.LogoURL = *org.LogoURL
	}
	return resp
}
