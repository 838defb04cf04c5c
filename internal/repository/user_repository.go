package repository

import (
	"context"

	"github.com/yukikurage/org-admin-api/internal/database"
	"github.com/yukikurage/org-admin-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(writeContext(ctx)).Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves all users
func (r *GormUserRepository) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListByOrganization retrieves the users of an organization, newest first
func (r *GormUserRepository) ListByOrganization(ctx context.Context, organizationID uint64) ([]models.User, error) {
	users := []models.User{}
	err := r.db.WithContext(ctx).
		Select(UserSummaryColumns).
		Where("organization_id = ?", organizationID).
		Scopes(database.NewestFirst("users")).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Update writes the given columns of user
func (r *GormUserRepository) Update(ctx context.Context, user *models.User, columns ...string) error {
	return r.db.WithContext(writeContext(ctx)).
		Model(user).
		Select(withUpdatedAt(columns)).
		Updates(user).Error
}

// Delete deletes a user
func (r *GormUserRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(writeContext(ctx)).Delete(&models.User{}, id).Error
}

// Count counts all users
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

// CountByOrganization counts users grouped by organization
func (r *GormUserRepository) CountByOrganization(ctx context.Context) ([]OrganizationUserCount, error) {
	counts := []OrganizationUserCount{}
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("organization_id, COUNT(id) AS user_count").
		Group("organization_id").
		Order("organization_id ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
