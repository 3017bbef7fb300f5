package models

// Organization represents the root entity for multi-tenancy
type Organization struct {
	BaseModel
	Name string `json:"name" gorm:"not null;size:255" validate:"required,min=1,max=255"`

	// Relationships
	Users       []User       `json:"users,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Invitations []Invitation `json:"invitations,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Companies   []Company    `json:"companies,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Contacts    []Contact    `json:"contacts,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Deals       []Deal       `json:"deals,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Tasks       []Task       `json:"tasks,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Organization
func (Organization) TableName() string {
	return "organizations"
}
