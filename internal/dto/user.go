package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yukikurage/org-admin-api/internal/models"
	"github.com/yukikurage/org-admin-api/internal/services"
)

// ID is a numeric identifier that also accepts its decimal string form,
// as sent by clients that read ids from the URL.
type ID uint64

func (id *ID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(strings.Trim(string(data), `"`))
	if raw == "" || raw == "null" {
		*id = 0
		return nil
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s", data)
	}
	*id = ID(v)
	return nil
}

// CreateUserRequest represents the body of a user creation request
type CreateUserRequest struct {
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	Role           models.UserRole `json:"role"`
	PhoneNumber    string          `json:"phone_number"`
	OrganizationID ID              `json:"organization_id"`
}

func (r CreateUserRequest) ToInput() services.CreateUserInput {
	return services.CreateUserInput{
		FullName:       r.FullName,
		Email:          r.Email,
		Role:           r.Role,
		PhoneNumber:    r.PhoneNumber,
		OrganizationID: uint64(r.OrganizationID),
	}
}

// UpdateUserRequest represents the body of a user update request. Absent
// fields are left unchanged.
type UpdateUserRequest struct {
	FullName       *string            `json:"full_name"`
	Email          *string            `json:"email"`
	Role           *models.UserRole   `json:"role"`
	PhoneNumber    *string            `json:"phone_number"`
	Status         *models.UserStatus `json:"status"`
	OrganizationID *ID                `json:"organization_id"`
}

func (r UpdateUserRequest) ToPatch() services.UserPatch {
	patch := services.UserPatch{
		FullName:    r.FullName,
		Email:       r.Email,
		Role:        r.Role,
		PhoneNumber: r.PhoneNumber,
		Status:      r.Status,
	}
	if r.OrganizationID != nil {
		orgID := uint64(*r.OrganizationID)
		patch.OrganizationID = &orgID
	}
	return patch
}

// UserSummary is the projection of a user listed under its organization
type UserSummary struct {
	ID          uint64            `json:"id"`
	FullName    string            `json:"full_name"`
	Email       string            `json:"email"`
	Role        models.UserRole   `json:"role"`
	PhoneNumber *string           `json:"phone_number"`
	Status      models.UserStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

// UserCountResponse carries the total number of users
type UserCountResponse struct {
	TotalUsers int64 `json:"totalUsers"`
}

// ToUserSummary converts a User model to UserSummary
func ToUserSummary(user models.User) UserSummary {
	return UserSummary{
		ID:          user.ID,
		FullName:    user.FullName,
		Email:       user.Email,
		Role:        user.Role,
		PhoneNumber: user.PhoneNumber,
		Status:      user.Status,
		CreatedAt:   user.CreatedAt,
	}
}

func ToUserSummaries(users []models.User) []UserSummary {
	out := make([]UserSummary, len(users))
	for i, user := range users {
		out[i] = ToUserSummary(user)
	}
	return out
}
