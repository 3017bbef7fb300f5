package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is a to-do item, optionally linked to a contact and/or a company
type Task struct {
	TenantModel
	Title       string       `json:"title" gorm:"not null;size:255"`
	Description string       `json:"description" gorm:"type:text"`
	DueDate     *time.Time   `json:"due_date"`
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(50);not null;default:'Medium'"`
	Status      TaskStatus   `json:"status" gorm:"type:varchar(50);not null;default:'Pending';index"`
	ContactID   *uuid.UUID   `json:"contact_id" gorm:"type:uuid;index"`
	CompanyID   *uuid.UUID   `json:"company_id" gorm:"type:uuid;index"`

	Contact *Contact `json:"contact,omitempty" gorm:"foreignKey:ContactID;constraint:OnDelete:SET NULL"`
	Company *Company `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Task
func (Task) TableName() string {
	return "tasks"
}
