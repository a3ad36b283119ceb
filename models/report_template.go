package models

import "time"

// ReportTemplate defines a recurring reporting obligation. Its periodicity is
// copied onto each deadline at creation time; editing it later does not touch
// deadlines that are already open.
type ReportTemplate struct {
	TemplateID  uint           `gorm:"primaryKey;column:template_id" json:"template_id"`
	Name        string         `gorm:"column:name" json:"name"`
	Description *string        `gorm:"column:description" json:"description,omitempty"`
	Periodicity Periodicity    `gorm:"column:periodicity" json:"periodicity"`
	Category    ReportCategory `gorm:"column:category" json:"category"`
	FilePath    string         `gorm:"column:file_path" json:"file_path"`
	CreatedAt   time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (ReportTemplate) TableName() string { return "report_templates" }
