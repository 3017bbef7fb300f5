package models

import (
	"github.com/google/uuid"
)

// Contact is a person, optionally linked to a company of the same organization
type Contact struct {
	TenantModel
	FirstName      string     `json:"first_name" gorm:"not null;size:255"`
	LastName       string     `json:"last_name" gorm:"not null;size:255"`
	Email          string     `json:"email" gorm:"not null;size:255"`
	Phone          string     `json:"phone" gorm:"size:50"`
	JobTitle       string     `json:"job_title" gorm:"size:255"`
	LifecycleStage string     `json:"lifecycle_stage" gorm:"size:50;not null;default:'Lead'"`
	CompanyID      *uuid.UUID `json:"company_id" gorm:"type:uuid;index"`

	Company *Company `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}

// FullName joins first and last name
func (c *Contact) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
