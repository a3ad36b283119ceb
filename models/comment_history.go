package models

import "time"

// CommentHistory is an append-only ledger entry recording a status change on
// a deadline. Entries are never mutated or reordered; newest-first is the
// canonical read order.
type CommentHistory struct {
	CommentID  uint         `gorm:"primaryKey;column:comment_id" json:"comment_id"`
	DeadlineID *uint        `gorm:"column:deadline_id;index" json:"deadline_id,omitempty"`
	ReportID   *uint        `gorm:"column:report_id;index" json:"report_id,omitempty"`
	Comment    string       `gorm:"column:comment" json:"comment"`
	Status     ReportStatus `gorm:"column:status" json:"status"`
	AuthorID   *uint        `gorm:"column:author_id" json:"author_id,omitempty"`
	CreatedAt  time.Time    `gorm:"column:created_at" json:"created_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (CommentHistory) TableName() string { return "comment_history" }
