package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/org-admin-api/internal/models"
	"github.com/yukikurage/org-admin-api/internal/repository"
	"gorm.io/gorm"
)

// UserService provides business logic for user operations.
type UserService struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		orgRepo:  orgRepo,
	}
}

// CreateUserInput represents parameters to create a new user.
type CreateUserInput struct {
	FullName       string          `json:"full_name" validate:"required"`
	Email          string          `json:"email" validate:"required"`
	Role           models.UserRole `json:"role" validate:"omitempty,oneof=Admin Coordinator Viewer"`
	PhoneNumber    string          `json:"phone_number"`
	OrganizationID uint64          `json:"organization_id" validate:"required"`
}

// UserPatch is the allow-list of fields an update may change.
type UserPatch struct {
	FullName       *string            `json:"full_name" validate:"omitnil,min=1"`
	Email          *string            `json:"email" validate:"omitnil,min=1"`
	Role           *models.UserRole   `json:"role" validate:"omitnil,oneof=Admin Coordinator Viewer"`
	PhoneNumber    *string            `json:"phone_number"`
	Status         *models.UserStatus `json:"status" validate:"omitnil,oneof=Active Inactive"`
	OrganizationID *uint64            `json:"organization_id" validate:"omitnil,min=1"`
}

// Create validates input and inserts a user into an existing organization.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.TrimSpace(input.Email)
	input.Role = models.UserRole(strings.TrimSpace(string(input.Role)))

	if err := validateInput(input); err != nil {
		return nil, err
	}

	if err := s.ensureOrganizationExists(ctx, input.OrganizationID); err != nil {
		return nil, err
	}
	if err := s.ensureEmailAvailable(ctx, input.Email, 0); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = models.RoleCoordinator
	}

	phone := strings.TrimSpace(input.PhoneNumber)
	user := &models.User{
		FullName:       input.FullName,
		Email:          input.Email,
		Role:           role,
		PhoneNumber:    optional(&phone),
		Status:         models.UserStatusActive,
		OrganizationID: input.OrganizationID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, translateUserWriteError(err, "failed to create user")
	}
	return user, nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id uint64) (*models.User, error) {
	return s.findUser(ctx, id)
}

// Update applies the fields present in patch.
func (s *UserService) Update(ctx context.Context, id uint64, patch UserPatch) (*models.User, error) {
	patch.FullName = trimPtr(patch.FullName)
	patch.Email = trimPtr(patch.Email)
	patch.PhoneNumber = trimPtr(patch.PhoneNumber)

	if err := validateInput(patch); err != nil {
		return nil, err
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	var columns []string
	if patch.FullName != nil {
		user.FullName = *patch.FullName
		columns = append(columns, "full_name")
	}
	if patch.Email != nil && *patch.Email != user.Email {
		if err := s.ensureEmailAvailable(ctx, *patch.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *patch.Email
		columns = append(columns, "email")
	}
	if patch.Role != nil {
		user.Role = *patch.Role
		columns = append(columns, "role")
	}
	if patch.PhoneNumber != nil {
		user.PhoneNumber = optional(patch.PhoneNumber)
		columns = append(columns, "phone_number")
	}
	if patch.Status != nil {
		user.Status = *patch.Status
		columns = append(columns, "status")
	}
	if patch.OrganizationID != nil && *patch.OrganizationID != user.OrganizationID {
		if err := s.ensureOrganizationExists(ctx, *patch.OrganizationID); err != nil {
			return nil, err
		}
		user.OrganizationID = *patch.OrganizationID
		columns = append(columns, "organization_id")
	}

	if len(columns) == 0 {
		return user, nil
	}

	if err := s.userRepo.Update(ctx, user, columns...); err != nil {
		return nil, translateUserWriteError(err, "failed to update user")
	}
	return user, nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.findUser(ctx, id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// ToggleStatus flips a user between Active and Inactive.
func (s *UserService) ToggleStatus(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Status = user.Status.Toggled()
	if err := s.userRepo.Update(ctx, user, "status"); err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}
	return user, nil
}

// CountAll returns the total number of users.
func (s *UserService) CountAll(ctx context.Context) (int64, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// CountByOrganization returns one count per organization that has users.
func (s *UserService) CountByOrganization(ctx context.Context) ([]repository.OrganizationUserCount, error) {
	counts, err := s.userRepo.CountByOrganization(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users by organization: %w", err)
	}
	return counts, nil
}

// ListByOrganization returns an organization and its users, newest first.
func (s *UserService) ListByOrganization(ctx context.Context, orgID uint64) (*models.Organization, []models.User, error) {
	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrganizationNotFound
		}
		return nil, nil, fmt.Errorf("failed to find organization: %w", err)
	}

	users, err := s.userRepo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list organization users: %w", err)
	}
	return org, users, nil
}

func (s *UserService) findUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *UserService) ensureOrganizationExists(ctx context.Context, id uint64) error {
	if _, err := s.orgRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to find organization: %w", err)
	}
	return nil
}

func (s *UserService) ensureEmailAvailable(ctx context.Context, email string, exceptID uint64) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing.ID != exceptID {
		return ErrEmailTaken
	}
	return nil
}

func translateUserWriteError(err error, msg string) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrEmailTaken
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrOrganizationNotFound
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}
