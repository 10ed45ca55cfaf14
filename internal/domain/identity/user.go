package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents a user's role in the marketplace
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleVendor   Role = "vendor"
	RoleCustomer Role = "customer"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleVendor || r == RoleCustomer
}

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

// User is an account in the marketplace. Vendors are users with the vendor
// role and a display name shown on their listings.
type User struct {
	shared.BaseAggregateRoot
	Email        string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(100);not null"`
	Name         string     `gorm:"type:varchar(100);not null"`
	Role         Role       `gorm:"type:varchar(20);not null"`
	VendorName   string     `gorm:"type:varchar(100)"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates an active user with a hashed password
func NewUser(email, password, name string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be admin, vendor, or customer")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		Name:              name,
		Role:              role,
		Status:            UserStatusActive,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPassword hashes and stores the password
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetVendorName sets the vendor display name. Only valid for vendors.
func (u *User) SetVendorName(name string) error {
	if u.Role != RoleVendor {
		return shared.NewDomainError("INVALID_ROLE", "Only vendors have a vendor name")
	}
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Vendor name cannot be empty")
	}
	u.VendorName = name
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// Disable blocks the account
func (u *User) Disable() error {
	if u.Status == UserStatusDisabled {
		return shared.NewDomainError("INVALID_STATE", "User is already disabled")
	}
	u.Status = UserStatusDisabled
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// IsActive returns true if the account may authenticate
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// Repository defines persistence operations for users
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByRole(ctx context.Context, role Role, filter shared.Filter) ([]User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
