package repository

import (
	"context"

	"github.com/yukikurage/org-admin-api/internal/models"
)

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// Create creates a new organization
	Create(ctx context.Context, org *models.Organization) error

	// FindByID finds an organization by ID
	FindByID(ctx context.Context, id uint64) (*models.Organization, error)

	// FindByIDWithUsers finds an organization by ID with its users preloaded
	FindByIDWithUsers(ctx context.Context, id uint64) (*models.Organization, error)

	// FindBySlug finds an organization by slug
	FindBySlug(ctx context.Context, slug string) (*models.Organization, error)

	// List retrieves organizations matching the filter, newest first
	List(ctx context.Context, filter OrganizationFilter) ([]models.Organization, error)

	// Update writes the given columns of org
	Update(ctx context.Context, org *models.Organization, columns ...string) error

	// Delete deletes an organization and all of its users
	Delete(ctx context.Context, id uint64) error
}

// OrganizationFilter holds filtering options for listing organizations
type OrganizationFilter struct {
	Search string
	Status string
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// List retrieves all users
	List(ctx context.Context) ([]models.User, error)

	// ListByOrganization retrieves the users of an organization, newest first,
	// loading only the summary columns
	ListByOrganization(ctx context.Context, organizationID uint64) ([]models.User, error)

	// Update writes the given columns of user
	Update(ctx context.Context, user *models.User, columns ...string) error

	// Delete deletes a user
	Delete(ctx context.Context, id uint64) error

	// Count counts all users
	Count(ctx context.Context) (int64, error)

	// CountByOrganization counts users grouped by organization
	CountByOrganization(ctx context.Context) ([]OrganizationUserCount, error)
}

// OrganizationUserCount is one row of a users-per-organization count
type OrganizationUserCount struct {
	OrganizationID uint64 `gorm:"column:organization_id"`
	UserCount      int64  `gorm:"column:user_count"`
}

// UserSummaryColumns are the columns loaded for organization user listings.
var UserSummaryColumns = []string{
	"id", "full_name", "email", "role", "phone_number", "status", "created_at",
}

// writeContext detaches writes from request cancellation so that a client
// disconnect does not abort a statement already issued.
func writeContext(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

func withUpdatedAt(columns []string) []string {
	for _, c := range columns {
		if c == "updated_at" {
			return columns
		}
	}
	return append(columns, "updated_at")
}
