package models

// Default lifecycle stages applied by the schema
const (
	CompanyDefaultLifecycleStage = "Subscriber"
	ContactDefaultLifecycleStage = "Lead"
)

// Company is an account tracked by an organization
type Company struct {
	TenantModel
	Name           string `json:"name" gorm:"not null;size:255"`
	Domain         string `json:"domain" gorm:"size:255"`
	Address        string `json:"address" gorm:"size:255"`
	City           string `json:"city" gorm:"size:255"`
	State          string `json:"state" gorm:"size:255"`
	Country        string `json:"country" gorm:"size:255"`
	Industry       string `json:"industry" gorm:"size:255"`
	Employees      string `json:"employees" gorm:"size:50"`
	Revenue        string `json:"revenue" gorm:"size:50"`
	Description    string `json:"description" gorm:"type:text"`
	AboutUs        string `json:"about_us" gorm:"type:text"`
	LifecycleStage string `json:"lifecycle_stage" gorm:"size:50;not null;default:'Subscriber'"`
}

// TableName returns the table name for Company
func (Company) TableName() string {
	return "companies"
}
