package models

import (
	"time"

	"github.com/google/uuid"
)

// Invitation admits a future user into an organization
type Invitation struct {
	TenantModel
	Email       string           `json:"email" gorm:"not null;size:255;index;uniqueIndex:idx_invitations_pending_email,where:status = 'Pending'"`
	Token       string           `json:"-" gorm:"uniqueIndex;not null;size:255"`
	Status      InvitationStatus `json:"status" gorm:"type:varchar(50);not null;default:'Pending'"`
	ExpiresAt   time.Time        `json:"expires_at"`
	InvitedByID *uuid.UUID       `json:"invited_by_id,omitempty" gorm:"type:uuid"`
}

// TableName returns the table name for Invitation
func (Invitation) TableName() string {
	return "invitations"
}

// IsExpired reports whether the invitation can no longer be accepted at the given time
func (i *Invitation) IsExpired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}
