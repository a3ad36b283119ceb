package models

import "time"

// SubmissionDeadline is one branch's obligation for one period of one
// template. For a given (template, branch) at most one deadline is open at a
// time; a successor is created only when the previous one is closed with
// status Reviewed.
type SubmissionDeadline struct {
	DeadlineID  uint        `gorm:"primaryKey;column:deadline_id" json:"deadline_id"`
	TemplateID  uint        `gorm:"column:template_id;index" json:"template_id"`
	BranchID    uint        `gorm:"column:branch_id;index" json:"branch_id"`
	Periodicity Periodicity `gorm:"column:periodicity" json:"periodicity"`
	DueDate     time.Time   `gorm:"column:due_date" json:"due_date"`
	// Period marks the obligation window, always first-of-period.
	Period   time.Time `gorm:"column:period" json:"period"`
	FixedDay *int      `gorm:"column:fixed_day" json:"fixed_day,omitempty"`
	ReportID *uint     `gorm:"column:report_id" json:"report_id,omitempty"`
	Status   ReportStatus `gorm:"column:status" json:"status"`
	IsClosed bool         `gorm:"column:is_closed" json:"is_closed"`
	// Reopened suppresses duplicate successor creation during a correction
	// cycle that follows a prior acceptance.
	Reopened  bool      `gorm:"column:reopened" json:"reopened"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	Template *ReportTemplate `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
	Branch   *Branch         `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (SubmissionDeadline) TableName() string { return "submission_deadlines" }

// FixedDayOrDefault returns the day-of-month anchor, defaulting to 30 when no
// fixed day was configured.
func (d *SubmissionDeadline) FixedDayOrDefault() int {
	if d.FixedDay != nil {
		return *d.FixedDay
	}
	return 30
}
