package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/identity"
	"github.com/sdkart/backend/internal/domain/shared"
	"github.com/sdkart/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles registration and authentication
type AuthService struct {
	userRepo   identity.Repository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.Repository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a customer account and returns a token
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.Password, req.Name, identity.RoleCustomer)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("email", user.Email))
	return s.issueToken(user)
}

// RegisterVendor creates a vendor account (admin)
func (s *AuthService) RegisterVendor(ctx context.Context, req RegisterVendorRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.Password, req.Name, identity.RoleVendor)
	if err != nil {
		return nil, err
	}
	if err := user.SetVendorName(req.VendorName); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Vendor registered", zap.String("email", user.Email), zap.String("vendor_name", user.VendorName))
	response := ToUserResponse(user)
	return &response, nil
}

// Login authenticates a user and returns a token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Warn("Login attempt for unknown email", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	if !user.IsActive() {
		s.logger.Warn("Login attempt for disabled account", zap.String("email", req.Email))
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account has been disabled")
	}
	if !user.CheckPassword(req.Password) {
		s.logger.Warn("Login attempt with wrong password", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	return s.issueToken(user)
}

// GetCurrentUser returns the authenticated user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// ChangePassword changes the authenticated user's password
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(req.CurrentPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

func (s *AuthService) issueToken(user *identity.User) (*LoginResponse, error) {
	token, err := s.jwtService.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		Token: token,
		User:  ToUserResponse(user),
	}, nil
}
