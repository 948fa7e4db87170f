package models

import (
	"strings"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleCrew   Role = "CREW"
	RoleClient Role = "CLIENT"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCrew, RoleClient:
		return true
	}
	return false
}

// User is an authenticated actor. Tokens carry only the user ID; the role is
// always read from this row.
type User struct {
	BaseUUIDModel
	Name     string  `gorm:"type:text;not null"             json:"name"`
	Email    *string `gorm:"type:text;uniqueIndex"          json:"email,omitempty"`
	Role     Role    `gorm:"type:text;not null;index"       json:"role"`
	IsActive bool    `gorm:"type:bool;default:true;not null" json:"isActive"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if err := u.assignID(); err != nil {
		return err
	}
	u.Name = strings.TrimSpace(u.Name)
	if u.Name == "" || !u.Role.IsValid() {
		return gorm.ErrInvalidValue
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) IsCrew() bool {
	return u != nil && u.Role == RoleCrew
}

type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UserProfile struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    *string `json:"email,omitempty"`
	Role     Role    `json:"role"`
	IsActive bool    `json:"isActive"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:       u.ID.String(),
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

func (u *User) ToSummary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID.String(), Name: u.Name}
}
