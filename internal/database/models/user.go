package models

import (
	"github.com/google/uuid"
)

// User is a member of exactly one organization; login is organization-agnostic
type User struct {
	BaseModel
	Name         string     `json:"name" gorm:"size:255"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;not null;size:255"`
	// Nullable so that a user detached from its organization is refused by the tenant guard instead of failing on load
	OrganizationID *uuid.UUID `json:"organization_id" gorm:"type:uuid;index"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
