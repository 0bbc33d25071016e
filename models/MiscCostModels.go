package models

import "time"

// MiscCost is a miscellaneous project cost (freight, customs, site fees …).
// The table is managed by GORM and rows are immutable once written.
type MiscCost struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Project    string    `gorm:"not null;index" json:"project"`
	Category   string    `gorm:"not null" json:"category"`
	Amount     float64   `gorm:"not null" json:"amount"`
	Currency   string    `gorm:"size:8;not null" json:"currency"`
	EnteredBy  string    `gorm:"not null" json:"entered_by"`
	Region     string    `gorm:"not null;index" json:"region"`
	OccurredOn string    `json:"occurred_on"`
	CreatedAt  time.Time `json:"created_at"`
}

func (MiscCost) TableName() string {
	return "misc_costs"
}

type MiscCostRequest struct {
	Project    string  `json:"project" binding:"required"`
	Category   string  `json:"category" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
	Currency   string  `json:"currency" binding:"required"`
	OccurredOn string  `json:"occurred_on"`
}
