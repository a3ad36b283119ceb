package models

import "time"

// System role names. PEB reviews plan reports, OBUnF reviews accounting
// reports.
const (
	RoleAdmin = "Administrator"
	RoleUser  = "User"
	RolePEB   = "PEB"
	RoleOBUnF = "OBUnF"
)

type Role struct {
	RoleID   uint   `gorm:"primaryKey;column:role_id" json:"role_id"`
	RoleName string `gorm:"column:role_name;uniqueIndex" json:"role_name"`
}

func (Role) TableName() string { return "roles" }

// User is an account that can upload or review reports. Branch users carry a
// BranchID; reviewers and administrators do not.
type User struct {
	UserID       uint      `gorm:"primaryKey;column:user_id" json:"user_id"`
	UserName     string    `gorm:"column:user_name;uniqueIndex" json:"user_name"`
	FullName     string    `gorm:"column:full_name" json:"full_name"`
	Email        *string   `gorm:"column:email" json:"email,omitempty"`
	Position     *string   `gorm:"column:position" json:"position,omitempty"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	RoleID       uint      `gorm:"column:role_id" json:"role_id"`
	BranchID     *uint     `gorm:"column:branch_id" json:"branch_id,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`

	Role   *Role   `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Branch *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (User) TableName() string { return "users" }
