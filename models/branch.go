package models

import "time"

// Branch is an organizational unit that owes one report per template per
// period.
type Branch struct {
	BranchID  uint      `gorm:"primaryKey;column:branch_id" json:"branch_id"`
	Name      string    `gorm:"column:name;uniqueIndex" json:"name"`
	Address   *string   `gorm:"column:address" json:"address,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Branch) TableName() string { return "branches" }
