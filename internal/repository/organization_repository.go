package repository

import (
	"context"

	"github.com/yukikurage/org-admin-api/internal/database"
	"github.com/yukikurage/org-admin-api/internal/models"
	"gorm.io/gorm"
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// Create creates a new organization
func (r *GormOrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	return r.db.WithContext(writeContext(ctx)).Create(org).Error
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(ctx context.Context, id uint64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindByIDWithUsers finds an organization by ID with its users, newest first
func (r *GormOrganizationRepository) FindByIDWithUsers(ctx context.Context, id uint64) (*models.Organization, error) {
	var org models.Organization
	err := r.db.WithContext(ctx).
		Preload("Users", func(db *gorm.DB) *gorm.DB {
			return db.Scopes(database.NewestFirst("users"))
		}).
		First(&org, id).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// FindBySlug finds an organization by slug
func (r *GormOrganizationRepository) FindBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// List retrieves organizations matching the filter, newest first
func (r *GormOrganizationRepository) List(ctx context.Context, filter OrganizationFilter) ([]models.Organization, error) {
	orgs := []models.Organization{}
	err := r.db.WithContext(ctx).
		Scopes(
			database.SearchOrganizations(filter.Search),
			database.WithStatus("organizations", filter.Status),
			database.NewestFirst("organizations"),
		).
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

// Update writes the given columns of org
func (r *GormOrganizationRepository) Update(ctx context.Context, org *models.Organization, columns ...string) error {
	return r.db.WithContext(writeContext(ctx)).
		Model(org).
		Select(withUpdatedAt(columns)).
		Updates(org).Error
}

// Delete deletes an organization and all of its users in a transaction
func (r *GormOrganizationRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(writeContext(ctx)).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("organization_id = ?", id).Delete(&models.User{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Organization{}, id).Error
	})
}
