package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DealStage is a column of the sales pipeline
type DealStage string

const (
	DealStageAppointmentScheduled  DealStage = "Appointment Scheduled"
	DealStageQualifiedToBuy        DealStage = "Qualified to Buy"
	DealStagePresentationScheduled DealStage = "Presentation Scheduled"
	DealStageDecisionMakerBoughtIn DealStage = "Decision Maker Bought-In"
	DealStageContractSent          DealStage = "Contract Sent"
	DealStageClosedWon             DealStage = "Closed Won"
	DealStageClosedLost            DealStage = "Closed Lost"
)

var dealStages = []DealStage{
	DealStageAppointmentScheduled,
	DealStageQualifiedToBuy,
	DealStagePresentationScheduled,
	DealStageDecisionMakerBoughtIn,
	DealStageContractSent,
	DealStageClosedWon,
	DealStageClosedLost,
}

// DealStages returns the pipeline stages in board order
func DealStages() []DealStage {
	out := make([]DealStage, len(dealStages))
	copy(out, dealStages)
	return out
}

// IsValid reports whether s is one of the pipeline stages
func (s DealStage) IsValid() bool {
	for _, stage := range dealStages {
		if s == stage {
			return true
		}
	}
	return false
}

// IsClosed reports whether s is Closed Won or Closed Lost.
// Closed deals can still be moved back into any open stage.
func (s DealStage) IsClosed() bool {
	return s == DealStageClosedWon || s == DealStageClosedLost
}

// MaxDealAmount is the exclusive magnitude bound of the numeric(10,2) amount column
var MaxDealAmount = decimal.New(1, 8)

// Deal is a sales opportunity
type Deal struct {
	TenantModel
	Name      string          `json:"name" gorm:"not null;size:255"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(10,2);not null;default:0"`
	Stage     DealStage       `json:"stage" gorm:"type:varchar(50);not null;index"`
	CloseDate *time.Time      `json:"close_date"`
	CompanyID *uuid.UUID      `json:"company_id" gorm:"type:uuid;index"`

	Company *Company `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Deal
func (Deal) TableName() string {
	return "deals"
}
