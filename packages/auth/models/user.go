package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Roles []string

// Value stores roles as a JSONB array, defaulting to guest.
func (r Roles) Value() (driver.Value, error) {
	if len(r) == 0 {
		return json.Marshal([]string{RoleGuest})
	}
	return json.Marshal([]string(r))
}

func (r *Roles) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*r = Roles{RoleGuest}
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]string)(r))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(r))
	}
	return errors.New("roles: unsupported column type")
}

func (r Roles) Has(role string) bool {
	for _, have := range r {
		if have == role {
			return true
		}
	}
	return false
}

type User struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	Email               string     `json:"email" gorm:"uniqueIndex;not null"`
	Username            string     `json:"username" gorm:"uniqueIndex;not null"`
	FirstName           string     `json:"first_name" gorm:"size:100"`
	LastName            string     `json:"last_name" gorm:"size:100"`
	Gender              string     `json:"gender" gorm:"size:20"`
	Password            string     `json:"-" gorm:"not null"`
	Enabled             bool       `json:"enabled" gorm:"default:true"`
	Roles               Roles      `json:"roles" gorm:"type:jsonb;default:'[\"guest\"]'::jsonb"`
	LastLogin           *time.Time `json:"last_login"`
	ConnectionCount     int        `json:"connection_count" gorm:"default:0"`
	ConfirmationToken   *string    `json:"-"`
	PasswordRequestedAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) HasRole(role string) bool {
	return u.Roles.Has(role)
}

func (u *User) AddRole(role string) {
	if !u.HasRole(role) {
		u.Roles = append(u.Roles, role)
	}
}

// RecordLogin bumps the connection counter at most once per calendar day.
func (u *User) RecordLogin(now time.Time) {
	if u.LastLogin == nil || u.LastLogin.Format("2006-01-02") != now.Format("2006-01-02") {
		u.ConnectionCount++
	}
	u.LastLogin = &now
}

// IsPasswordRequestExpired reports whether the reset request is older than ttl.
func (u *User) IsPasswordRequestExpired(now time.Time, ttl time.Duration) bool {
	if u.PasswordRequestedAt == nil {
		return true
	}
	return now.Sub(*u.PasswordRequestedAt) > ttl
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,max=50"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Gender    string `json:"gender" binding:"omitempty,oneof=male female other"`
	Password  string `json:"password" binding:"required,min=8"`
}

type PasswordResetRequest struct {
	Email       string `json:"email" binding:"required,email"`
	CallBackUrl string `json:"callBackUrl" binding:"required"`
}

type PasswordResetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

type UpdateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,max=50"`
	FirstName string `json:"first_name" binding:"omitempty,max=100"`
	LastName  string `json:"last_name" binding:"omitempty,max=100"`
}

type PatchUserRequest struct {
	Roles   *Roles `json:"roles,omitempty"`
	Enabled *bool  `json:"enabled,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
