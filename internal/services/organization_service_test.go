package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/org-admin-api/internal/config"
	"github.com/yukikurage/org-admin-api/internal/database"
	"github.com/yukikurage/org-admin-api/internal/models"
	"github.com/yukikurage/org-admin-api/internal/repository"
	"github.com/yukikurage/org-admin-api/internal/storage"
	"gorm.io/gorm"
)

// fakeLogoStorage records saved logos and returns a predictable URL.
type fakeLogoStorage struct {
	saved []storage.Logo
	body  []byte
	err   error
}

func (f *fakeLogoStorage) Save(ctx context.Context, logo storage.Logo) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	body, err := io.ReadAll(logo.Content)
	if err != nil {
		return "", err
	}
	f.body = body
	f.saved = append(f.saved, logo)
	return fmt.Sprintf("https://cdn.example.com/%s.png", storage.PublicID(logo.OrganizationID)), nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(config.DBConfig{
		Dialect:  config.DialectSQLite,
		Path:     ":memory:",
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

func strPtr(s string) *string { return &s }

// OrganizationServiceTestSuite defines the test suite for OrganizationService
type OrganizationServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	logos   *fakeLogoStorage
	service *OrganizationService
	users   *UserService
	ctx     context.Context
}

func (s *OrganizationServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.logos = &fakeLogoStorage{}

	orgRepo := repository.NewOrganizationRepository(s.db)
	userRepo := repository.NewUserRepository(s.db)
	s.service = NewOrganizationService(orgRepo, userRepo, s.logos, 1024)
	s.users = NewUserService(userRepo, orgRepo)
	s.ctx = context.Background()
}

func (s *OrganizationServiceTestSuite) createOrganization(slug string) *models.Organization {
	org, err := s.service.Create(s.ctx, CreateOrganizationInput{
		Name:         "Org " + slug,
		Slug:         slug,
		OrgEmail:     slug + "@example.com",
		PhonePrimary: "111",
	})
	s.Require().NoError(err)
	return org
}

func (s *OrganizationServiceTestSuite) createUser(email string, orgID uint64) *models.User {
	user, err := s.users.Create(s.ctx, CreateUserInput{
		FullName:       "User " + email,
		Email:          email,
		OrganizationID: orgID,
	})
	s.Require().NoError(err)
	return user
}

func (s *OrganizationServiceTestSuite) TestCreate_Success() {
	org, err := s.service.Create(s.ctx, CreateOrganizationInput{
		Name:         " Acme ",
		Slug:         "acme",
		OrgEmail:     "a@acme.com",
		PhonePrimary: "111",
		OrganizationProfile: OrganizationProfile{
			Region:   strPtr("EU"),
			Timezone: strPtr(""),
		},
	})
	s.Require().NoError(err)

	s.NotZero(org.ID)
	s.Equal("Acme", org.Name)
	s.Equal(models.OrganizationStatusActive, org.Status)
	s.Equal(0, org.MaxCoordinators)
	s.Require().NotNil(org.Region)
	s.Equal("EU", *org.Region)
	s.Nil(org.Timezone)
	s.False(org.CreatedAt.IsZero())
}

func (s *OrganizationServiceTestSuite) TestCreate_MissingFields() {
	tests := []struct {
		name  string
		input CreateOrganizationInput
		field string
	}{
		{"missing name", CreateOrganizationInput{Slug: "a", OrgEmail: "a@a.com", PhonePrimary: "1"}, "name"},
		{"blank slug", CreateOrganizationInput{Name: "A", Slug: "   ", OrgEmail: "a@a.com", PhonePrimary: "1"}, "slug"},
		{"missing email", CreateOrganizationInput{Name: "A", Slug: "a", PhonePrimary: "1"}, "org_email"},
		{"blank email", CreateOrganizationInput{Name: "A", Slug: "a", OrgEmail: "  ", PhonePrimary: "1"}, "org_email"},
		{"missing phone", CreateOrganizationInput{Name: "A", Slug: "a", OrgEmail: "a@a.com"}, "phone_primary"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.Create(s.ctx, tt.input)
			s.Require().ErrorIs(err, ErrValidation)

			var verr *ValidationError
			s.Require().True(errors.As(err, &verr))
			s.Equal(tt.field, verr.Field)
		})
	}

	var count int64
	s.db.Model(&models.Organization{}).Count(&count)
	s.Zero(count)
}

func (s *OrganizationServiceTestSuite) TestEmailIsFreeForm() {
	org, err := s.service.Create(s.ctx, CreateOrganizationInput{
		Name:         "Acme",
		Slug:         "acme",
		OrgEmail:     "contact-acme",
		PhonePrimary: "111",
	})
	s.Require().NoError(err)
	s.Equal("contact-acme", org.OrgEmail)

	updated, err := s.service.Update(s.ctx, org.ID, OrganizationPatch{OrgEmail: strPtr("front desk")})
	s.Require().NoError(err)
	s.Equal("front desk", updated.OrgEmail)
}

func (s *OrganizationServiceTestSuite) TestCreate_DuplicateSlug() {
	s.createOrganization("acme")

	_, err := s.service.Create(s.ctx, CreateOrganizationInput{
		Name:         "Other",
		Slug:         "acme",
		OrgEmail:     "other@acme.com",
		PhonePrimary: "222",
	})
	s.Require().ErrorIs(err, ErrConstraintViolation)
	s.ErrorIs(err, ErrSlugTaken)

	var count int64
	s.db.Model(&models.Organization{}).Where("slug = ?", "acme").Count(&count)
	s.Equal(int64(1), count)
}

func (s *OrganizationServiceTestSuite) TestList_FiltersAndCounts() {
	acme := s.createOrganization("acme")
	globex := s.createOrganization("globex")
	initech := s.createOrganization("initech")

	s.createUser("a1@example.com", acme.ID)
	s.createUser("a2@example.com", acme.ID)
	s.createUser("g1@example.com", globex.ID)

	_, err := s.service.Update(s.ctx, initech.ID, OrganizationPatch{
		Status: func() *models.OrganizationStatus { v := models.OrganizationStatusBlocked; return &v }(),
	})
	s.Require().NoError(err)

	all, err := s.service.List(s.ctx, repository.OrganizationFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal(initech.ID, all[0].ID)
	s.Equal(acme.ID, all[2].ID)
	s.Equal(int64(2), all[2].UserCount)
	s.Equal(int64(1), all[1].UserCount)
	s.Equal(int64(0), all[0].UserCount)

	searched, err := s.service.List(s.ctx, repository.OrganizationFilter{Search: "  GLOB "})
	s.Require().NoError(err)
	s.Require().Len(searched, 1)
	s.Equal(globex.ID, searched[0].ID)

	blocked, err := s.service.List(s.ctx, repository.OrganizationFilter{Status: "Blocked"})
	s.Require().NoError(err)
	s.Require().Len(blocked, 1)
	s.Equal(initech.ID, blocked[0].ID)
}

func (s *OrganizationServiceTestSuite) TestGet() {
	org := s.createOrganization("acme")
	s.createUser("bob@acme.com", org.ID)

	found, err := s.service.Get(s.ctx, org.ID)
	s.Require().NoError(err)
	s.Require().Len(found.Users, 1)
	s.Equal("bob@acme.com", found.Users[0].Email)

	_, err = s.service.Get(s.ctx, 999)
	s.ErrorIs(err, ErrNotFound)
}

func (s *OrganizationServiceTestSuite) TestUpdate_PartialMerge() {
	org := s.createOrganization("acme")
	_, err := s.service.Update(s.ctx, org.ID, OrganizationPatch{
		OrganizationProfile: OrganizationProfile{Region: strPtr("EU"), Language: strPtr("en")},
	})
	s.Require().NoError(err)

	maxCoordinators := 5
	updated, err := s.service.Update(s.ctx, org.ID, OrganizationPatch{
		Name: strPtr("Acme Corp"),
		OrganizationProfile: OrganizationProfile{
			MaxCoordinators: &maxCoordinators,
			Region:          strPtr(""),
		},
	})
	s.Require().NoError(err)
	s.Equal("Acme Corp", updated.Name)

	var stored models.Organization
	s.Require().NoError(s.db.First(&stored, org.ID).Error)
	s.Equal("Acme Corp", stored.Name)
	s.Equal("acme", stored.Slug)
	s.Equal("acme@example.com", stored.OrgEmail)
	s.Equal(5, stored.MaxCoordinators)
	s.Nil(stored.Region)
	s.Require().NotNil(stored.Language)
	s.Equal("en", *stored.Language)
	s.Equal(models.OrganizationStatusActive, stored.Status)
}

func (s *OrganizationServiceTestSuite) TestUpdate_Invalid() {
	org := s.createOrganization("acme")
	s.createOrganization("globex")

	negative := -1
	bogus := models.OrganizationStatus("Archived")

	tests := []struct {
		name    string
		patch   OrganizationPatch
		wantErr error
	}{
		{"empty name", OrganizationPatch{Name: strPtr(" ")}, ErrValidation},
		{"blank email", OrganizationPatch{OrgEmail: strPtr("  ")}, ErrValidation},
		{"negative max coordinators", OrganizationPatch{OrganizationProfile: OrganizationProfile{MaxCoordinators: &negative}}, ErrValidation},
		{"unknown status", OrganizationPatch{Status: &bogus}, ErrValidation},
		{"slug taken", OrganizationPatch{Slug: strPtr("globex")}, ErrConstraintViolation},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.Update(s.ctx, org.ID, tt.patch)
			s.ErrorIs(err, tt.wantErr)
		})
	}

	_, err := s.service.Update(s.ctx, org.ID, OrganizationPatch{Slug: strPtr("acme")})
	s.NoError(err)

	_, err = s.service.Update(s.ctx, 999, OrganizationPatch{Name: strPtr("x")})
	s.ErrorIs(err, ErrOrganizationNotFound)
}

func (s *OrganizationServiceTestSuite) TestDelete_CascadesUsers() {
	org := s.createOrganization("acme")
	other := s.createOrganization("globex")
	bob := s.createUser("bob@acme.com", org.ID)
	eve := s.createUser("eve@globex.com", other.ID)

	s.Require().NoError(s.service.Delete(s.ctx, org.ID))

	_, err := s.service.Get(s.ctx, org.ID)
	s.ErrorIs(err, ErrOrganizationNotFound)
	_, err = s.users.Get(s.ctx, bob.ID)
	s.ErrorIs(err, ErrUserNotFound)
	_, err = s.users.Get(s.ctx, eve.ID)
	s.NoError(err)

	s.ErrorIs(s.service.Delete(s.ctx, org.ID), ErrOrganizationNotFound)
}

func (s *OrganizationServiceTestSuite) TestToggleStatus() {
	org := s.createOrganization("acme")

	toggled, err := s.service.ToggleStatus(s.ctx, org.ID)
	s.Require().NoError(err)
	s.Equal(models.OrganizationStatusInactive, toggled.Status)

	toggled, err = s.service.ToggleStatus(s.ctx, org.ID)
	s.Require().NoError(err)
	s.Equal(models.OrganizationStatusActive, toggled.Status)

	blocked := models.OrganizationStatusBlocked
	_, err = s.service.Update(s.ctx, org.ID, OrganizationPatch{Status: &blocked})
	s.Require().NoError(err)

	toggled, err = s.service.ToggleStatus(s.ctx, org.ID)
	s.Require().NoError(err)
	s.Equal(models.OrganizationStatusActive, toggled.Status)

	_, err = s.service.ToggleStatus(s.ctx, 999)
	s.ErrorIs(err, ErrOrganizationNotFound)
}

func (s *OrganizationServiceTestSuite) TestAttachLogo() {
	org := s.createOrganization("acme")

	updated, err := s.service.AttachLogo(s.ctx, org.ID, &LogoUpload{
		Filename: "logo.PNG",
		Size:     4,
		Content:  bytes.NewReader([]byte("\x89PNG")),
	})
	s.Require().NoError(err)
	s.Require().NotNil(updated.LogoURL)
	s.Equal("https://cdn.example.com/logo-org-1.png", *updated.LogoURL)
	s.Equal([]byte("\x89PNG"), s.logos.body)

	var stored models.Organization
	s.Require().NoError(s.db.First(&stored, org.ID).Error)
	s.Equal(updated.LogoURL, stored.LogoURL)
}

func (s *OrganizationServiceTestSuite) TestAttachLogo_Errors() {
	org := s.createOrganization("acme")

	_, err := s.service.AttachLogo(s.ctx, 999, nil)
	s.ErrorIs(err, ErrOrganizationNotFound)

	_, err = s.service.AttachLogo(s.ctx, org.ID, nil)
	s.ErrorIs(err, ErrNoLogoFile)

	_, err = s.service.AttachLogo(s.ctx, org.ID, &LogoUpload{
		Filename: "logo.svg",
		Size:     10,
		Content:  bytes.NewReader(make([]byte, 10)),
	})
	s.ErrorIs(err, ErrValidation)

	_, err = s.service.AttachLogo(s.ctx, org.ID, &LogoUpload{
		Filename: "logo.jpg",
		Size:     2048,
		Content:  bytes.NewReader(make([]byte, 2048)),
	})
	s.ErrorIs(err, ErrValidation)

	s.logos.err = errors.New("upload refused")
	_, err = s.service.AttachLogo(s.ctx, org.ID, &LogoUpload{
		Filename: "logo.gif",
		Size:     1,
		Content:  bytes.NewReader([]byte{1}),
	})
	s.Require().Error(err)
	s.NotErrorIs(err, ErrValidation)

	s.Empty(s.logos.saved)
	var stored models.Organization
	s.Require().NoError(s.db.First(&stored, org.ID).Error)
	s.Nil(stored.LogoURL)
}

func (s *OrganizationServiceTestSuite) TestListUsers() {
	org := s.createOrganization("acme")
	other := s.createOrganization("globex")
	first := s.createUser("first@acme.com", org.ID)
	second := s.createUser("second@acme.com", org.ID)
	s.createUser("eve@globex.com", other.ID)

	found, users, err := s.service.ListUsers(s.ctx, org.ID)
	s.Require().NoError(err)
	s.Equal(org.ID, found.ID)
	s.Require().Len(users, 2)
	s.Equal(second.ID, users[0].ID)
	s.Equal(first.ID, users[1].ID)

	empty := s.createOrganization("empty")
	_, users, err = s.service.ListUsers(s.ctx, empty.ID)
	s.Require().NoError(err)
	s.Empty(users)

	_, _, err = s.service.ListUsers(s.ctx, 999)
	s.ErrorIs(err, ErrOrganizationNotFound)
}

func TestOrganizationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationServiceTestSuite))
}
