package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yukikurage/org-admin-api/internal/models"
	"github.com/yukikurage/org-admin-api/internal/repository"
	"github.com/yukikurage/org-admin-api/internal/storage"
	"gorm.io/gorm"
)

// OrganizationService provides business logic for organization operations.
type OrganizationService struct {
	orgRepo      repository.OrganizationRepository
	userRepo     repository.UserRepository
	logos        storage.LogoStorage
	maxLogoBytes int64
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
	logos storage.LogoStorage,
	maxLogoBytes int64,
) *OrganizationService {
	return &OrganizationService{
		orgRepo:      orgRepo,
		userRepo:     userRepo,
		logos:        logos,
		maxLogoBytes: maxLogoBytes,
	}
}

// OrganizationProfile holds the optional organization fields. A nil field is
// left untouched; an empty string clears the column.
type OrganizationProfile struct {
	PrimaryAdminName  *string `json:"primary_admin_name"`
	PrimaryAdminEmail *string `json:"primary_admin_email"`
	SupportEmail      *string `json:"support_email"`
	PhoneAlt1         *string `json:"phone_alt1"`
	PhoneAlt2         *string `json:"phone_alt2"`
	MaxCoordinators   *int    `json:"max_coordinators" validate:"omitnil,min=0"`
	Timezone          *string `json:"timezone"`
	Region            *string `json:"region"`
	Language          *string `json:"language"`
	WebsiteURL        *string `json:"website_url"`
}

// apply copies present fields onto org and returns the written columns.
func (p OrganizationProfile) apply(org *models.Organization) []string {
	var columns []string
	set := func(dst **string, src *string, column string) {
		if src == nil {
			return
		}
		*dst = optional(trimPtr(src))
		columns = append(columns, column)
	}

	set(&org.PrimaryAdminName, p.PrimaryAdminName, "primary_admin_name")
	set(&org.PrimaryAdminEmail, p.PrimaryAdminEmail, "primary_admin_email")
	set(&org.SupportEmail, p.SupportEmail, "support_email")
	set(&org.PhoneAlt1, p.PhoneAlt1, "phone_alt1")
	set(&org.PhoneAlt2, p.PhoneAlt2, "phone_alt2")
	set(&org.Timezone, p.Timezone, "timezone")
	set(&org.Region, p.Region, "region")
	set(&org.Language, p.Language, "language")
	set(&org.WebsiteURL, p.WebsiteURL, "website_url")

	if p.MaxCoordinators != nil {
		org.MaxCoordinators = *p.MaxCoordinators
		columns = append(columns, "max_coordinators")
	}
	return columns
}

// CreateOrganizationInput represents parameters to create a new organization.
type CreateOrganizationInput struct {
	Name         string `json:"name" validate:"required"`
	Slug         string `json:"slug" validate:"required"`
	OrgEmail     string `json:"org_email" validate:"required"`
	PhonePrimary string `json:"phone_primary" validate:"required"`
	OrganizationProfile
}

// OrganizationPatch is the allow-list of fields an update may change.
type OrganizationPatch struct {
	Name         *string                    `json:"name" validate:"omitnil,min=1"`
	Slug         *string                    `json:"slug" validate:"omitnil,min=1"`
	OrgEmail     *string                    `json:"org_email" validate:"omitnil,min=1"`
	PhonePrimary *string                    `json:"phone_primary" validate:"omitnil,min=1"`
	LogoURL      *string                    `json:"logo_url"`
	Status       *models.OrganizationStatus `json:"status" validate:"omitnil,oneof=Active Inactive Blocked"`
	OrganizationProfile
}

// OrganizationWithCount is an organization annotated with its number of users.
type OrganizationWithCount struct {
	models.Organization
	UserCount int64
}

// LogoUpload is a logo file received from a client.
type LogoUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// Create validates input and inserts a new organization.
func (s *OrganizationService) Create(ctx context.Context, input CreateOrganizationInput) (*models.Organization, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Slug = strings.TrimSpace(input.Slug)
	input.OrgEmail = strings.TrimSpace(input.OrgEmail)
	input.PhonePrimary = strings.TrimSpace(input.PhonePrimary)

	if err := validateInput(input); err != nil {
		return nil, err
	}

	if err := s.ensureSlugAvailable(ctx, input.Slug, 0); err != nil {
		return nil, err
	}

	org := &models.Organization{
		Name:         input.Name,
		Slug:         input.Slug,
		OrgEmail:     input.OrgEmail,
		PhonePrimary: input.PhonePrimary,
		Status:       models.OrganizationStatusActive,
	}
	input.OrganizationProfile.apply(org)

	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, translateOrganizationWriteError(err, "failed to create organization")
	}

	return org, nil
}

// List returns organizations matching filter, newest first, each with its
// user count.
func (s *OrganizationService) List(ctx context.Context, filter repository.OrganizationFilter) ([]OrganizationWithCount, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Status = strings.TrimSpace(filter.Status)

	orgs, err := s.orgRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}

	counts, err := s.userRepo.CountByOrganization(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	byOrg := make(map[uint64]int64, len(counts))
	for _, c := range counts {
		byOrg[c.OrganizationID] = c.UserCount
	}

	result := make([]OrganizationWithCount, len(orgs))
	for i, org := range orgs {
		result[i] = OrganizationWithCount{
			Organization: org,
			UserCount:    byOrg[org.ID],
		}
	}
	return result, nil
}

// Get returns an organization with its users.
func (s *OrganizationService) Get(ctx context.Context, id uint64) (*models.Organization, error) {
	org, err := s.orgRepo.FindByIDWithUsers(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return org, nil
}

// Update applies the fields present in patch.
func (s *OrganizationService) Update(ctx context.Context, id uint64, patch OrganizationPatch) (*models.Organization, error) {
	patch.Name = trimPtr(patch.Name)
	patch.Slug = trimPtr(patch.Slug)
	patch.OrgEmail = trimPtr(patch.OrgEmail)
	patch.PhonePrimary = trimPtr(patch.PhonePrimary)

	if err := validateInput(patch); err != nil {
		return nil, err
	}

	org, err := s.findOrganization(ctx, id)
	if err != nil {
		return nil, err
	}

	var columns []string
	if patch.Name != nil {
		org.Name = *patch.Name
		columns = append(columns, "name")
	}
	if patch.Slug != nil && *patch.Slug != org.Slug {
		if err := s.ensureSlugAvailable(ctx, *patch.Slug, org.ID); err != nil {
			return nil, err
		}
		org.Slug = *patch.Slug
		columns = append(columns, "slug")
	}
	if patch.OrgEmail != nil {
		org.OrgEmail = *patch.OrgEmail
		columns = append(columns, "org_email")
	}
	if patch.PhonePrimary != nil {
		org.PhonePrimary = *patch.PhonePrimary
		columns = append(columns, "phone_primary")
	}
	if patch.LogoURL != nil {
		org.LogoURL = optional(trimPtr(patch.LogoURL))
		columns = append(columns, "logo_url")
	}
	if patch.Status != nil {
		org.Status = *patch.Status
		columns = append(columns, "status")
	}
	columns = append(columns, patch.OrganizationProfile.apply(org)...)

	if len(columns) == 0 {
		return org, nil
	}

	if err := s.orgRepo.Update(ctx, org, columns...); err != nil {
		return nil, translateOrganizationWriteError(err, "failed to update organization")
	}
	return org, nil
}

// Delete removes an organization and its users.
func (s *OrganizationService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.findOrganization(ctx, id); err != nil {
		return err
	}

	if err := s.orgRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	return nil
}

// ToggleStatus flips an organization between Active and Inactive. A Blocked
// organization becomes Active.
func (s *OrganizationService) ToggleStatus(ctx context.Context, id uint64) (*models.Organization, error) {
	org, err := s.findOrganization(ctx, id)
	if err != nil {
		return nil, err
	}

	org.Status = org.Status.Toggled()
	if err := s.orgRepo.Update(ctx, org, "status"); err != nil {
		return nil, fmt.Errorf("failed to update organization status: %w", err)
	}
	return org, nil
}

// MaxLogoBytes is the largest logo AttachLogo accepts. Zero means no limit.
func (s *OrganizationService) MaxLogoBytes() int64 {
	return s.maxLogoBytes
}

// AttachLogo stores an uploaded logo and records its URL on the organization.
// upload is nil when the client sent no file.
func (s *OrganizationService) AttachLogo(ctx context.Context, id uint64, upload *LogoUpload) (*models.Organization, error) {
	org, err := s.findOrganization(ctx, id)
	if err != nil {
		return nil, err
	}

	if upload == nil || upload.Content == nil {
		return nil, ErrNoLogoFile
	}
	if _, ok := storage.LogoExtension(upload.Filename); !ok {
		return nil, &ValidationError{
			Field:   "logo",
			Message: fmt.Sprintf("Invalid file format. Allowed formats: %s", storage.AllowedLogoFormats),
		}
	}
	if s.maxLogoBytes > 0 && upload.Size > s.maxLogoBytes {
		return nil, LogoTooLargeError(s.maxLogoBytes)
	}

	url, err := s.logos.Save(ctx, storage.Logo{
		OrganizationID: org.ID,
		Filename:       upload.Filename,
		Size:           upload.Size,
		Content:        upload.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store logo: %w", err)
	}

	org.LogoURL = &url
	if err := s.orgRepo.Update(ctx, org, "logo_url"); err != nil {
		return nil, fmt.Errorf("failed to save logo url: %w", err)
	}
	return org, nil
}

// ListUsers returns an organization and its users, newest first.
func (s *OrganizationService) ListUsers(ctx context.Context, orgID uint64) (*models.Organization, []models.User, error) {
	org, err := s.findOrganization(ctx, orgID)
	if err != nil {
		return nil, nil, err
	}

	users, err := s.userRepo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list organization users: %w", err)
	}
	return org, users, nil
}

func (s *OrganizationService) findOrganization(ctx context.Context, id uint64) (*models.Organization, error) {
	org, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}

// ensureSlugAvailable fails when slug belongs to an organization other than
// exceptID.
func (s *OrganizationService) ensureSlugAvailable(ctx context.Context, slug string, exceptID uint64) error {
	existing, err := s.orgRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if existing.ID != exceptID {
		return ErrSlugTaken
	}
	return nil
}

func translateOrganizationWriteError(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlugTaken
	}
	return fmt.Errorf("%s: %w", msg, err)
}
