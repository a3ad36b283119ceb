package models

import "time"

// Report is one uploaded file satisfying (or attempting to satisfy) a
// deadline. A re-upload against the same open deadline replaces the file and
// updates this row in place.
type Report struct {
	ReportID     uint       `gorm:"primaryKey;column:report_id" json:"report_id"`
	Name         string     `gorm:"column:name" json:"name"`
	TemplateID   uint       `gorm:"column:template_id;index" json:"template_id"`
	BranchID     uint       `gorm:"column:branch_id;index" json:"branch_id"`
	UploadedByID *uint      `gorm:"column:uploaded_by_id" json:"uploaded_by_id,omitempty"`
	FilePath     string     `gorm:"column:file_path" json:"file_path"`
	UploadDate   time.Time  `gorm:"column:upload_date" json:"upload_date"`
	// Period is copied from the deadline the report was uploaded against,
	// never derived from the upload time.
	Period   time.Time      `gorm:"column:period" json:"period"`
	Category ReportCategory `gorm:"column:category" json:"category"`
	IsClosed bool           `gorm:"column:is_closed" json:"is_closed"`

	Template   *ReportTemplate `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
	Branch     *Branch         `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	UploadedBy *User           `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
}

func (Report) TableName() string { return "reports" }
