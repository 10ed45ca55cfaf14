package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/identity"
	"github.com/sdkart/backend/internal/domain/shared"
)

// UserService handles administrative user management
type UserService struct {
	userRepo identity.Repository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.Repository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// ListByRole lists users with the given role
func (s *UserService) ListByRole(ctx context.Context, role identity.Role, filter shared.Filter) ([]UserResponse, error) {
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	users, err := s.userRepo.FindByRole(ctx, role, filter)
	if err != nil {
		return nil, err
	}
	return ToUserResponses(users), nil
}

// Disable blocks a user account
func (s *UserService) Disable(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := user.Disable(); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}
