package identity

import (
	"strings"
	"time"

	"github.com/petroerp/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

// UserRole represents the coarse role of a user
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleTrader   UserRole = "trader"
	UserRoleOperator UserRole = "operator" // Operations / logistics desk
	UserRoleFinance  UserRole = "finance"
)

// User represents an authenticated operator of the system
type User struct {
	shared.BaseAggregateRoot
	Username     string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_user_username"`
	Email        string     `gorm:"type:varchar(200);index"`
	DisplayName  string     `gorm:"type:varchar(200)"`
	PasswordHash string     `gorm:"type:varchar(200);not null"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'trader'"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user with a bcrypt-hashed password
func NewUser(username, password string, role UserRole) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	switch role {
	case UserRoleAdmin, UserRoleTrader, UserRoleOperator, UserRoleFinance:
	default:
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown user role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		PasswordHash:      string(hash),
		Role:              role,
		Status:            UserStatusActive,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(newPassword string) error {
	if len(newPassword) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.touch()
	return nil
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.touch()
}

// Disable blocks the account from logging in
func (u *User) Disable() error {
	if u.Status == UserStatusDisabled {
		return shared.ErrInvalidState
	}
	u.Status = UserStatusDisabled
	u.touch()
	return nil
}

// Enable reactivates a disabled account
func (u *User) Enable() {
	u.Status = UserStatusActive
	u.touch()
}

// IsActive reports whether the account may log in
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

func (u *User) touch() {
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}
