package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleCleaner UserRole = "cleaner"
)

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleCleaner
}

// User is a staff account: an administrator or a cleaner. Visitors submitting
// ratings are anonymous and never have accounts.
type User struct {
	BaseUUIDModel
	Username    string     `gorm:"type:text;not null;uniqueIndex" json:"username"`
	Password    string     `gorm:"type:text;not null"             json:"-"`
	Name        string     `gorm:"type:text;not null"             json:"name"`
	Role        UserRole   `gorm:"type:text;not null;default:'cleaner'" json:"role"`
	IsActive    bool       `gorm:"type:bool;default:true"         json:"is_active"`
	LastLoginAt *time.Time `gorm:"type:timestamp"                 json:"last_login_at,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateUserRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`
}

type UpdateUserRequest struct {
	Username string   `json:"username,omitempty"`
	Password string   `json:"password,omitempty"`
	Name     string   `json:"name,omitempty"`
	Role     UserRole `json:"role,omitempty"`
	IsActive *bool    `json:"is_active,omitempty"`
}
