package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ubhospitality/inventory-backend/pkg/enums"
)

// User represents a staff account.
type User struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email           string         `gorm:"type:text;not null;uniqueIndex"`
	Username        string         `gorm:"column:username;not null;uniqueIndex"`
	PasswordHash    string         `gorm:"column:password_hash;not null"`
	FirstName       string         `gorm:"column:first_name;not null"`
	LastName        string         `gorm:"column:last_name;not null"`
	Role            enums.UserRole `gorm:"column:role;not null;default:employee"`
	IsActive        bool           `gorm:"column:is_active;not null;default:true"`
	EmailVerifiedAt *time.Time     `gorm:"column:email_verified_at"`
	LastLoginAt     *time.Time     `gorm:"column:last_login_at"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// EmailVerified reports whether the account completed email verification.
func (u User) EmailVerified() bool {
	return u.EmailVerifiedAt != nil
}
