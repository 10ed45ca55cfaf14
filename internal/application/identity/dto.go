package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/identity"
	"github.com/sdkart/backend/internal/infrastructure/auth"
)

// RegisterRequest creates a customer account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=100"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
}

// RegisterVendorRequest creates a vendor account (admin)
type RegisterVendorRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8,max=100"`
	Name       string `json:"name" binding:"required,min=1,max=100"`
	VendorName string `json:"vendor_name" binding:"required,min=1,max=100"`
}

// LoginRequest authenticates a user
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest changes the authenticated user's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=100"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	VendorName string    `json:"vendor_name,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	Token *auth.Token  `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse converts a domain User
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       string(u.Role),
		VendorName: u.VendorName,
		Status:     string(u.Status),
		CreatedAt:  u.CreatedAt,
	}
}

// ToUserResponses converts a slice of domain Users
func ToUserResponses(users []identity.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}
