// Package repository provides narrow, typed persistence access per entity
// plus an explicit transaction scope. Single-record lookups that find nothing
// return (nil, nil); errors are reserved for storage failures.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

// Store bundles the per-entity repositories behind one handle so that
// multi-record operations can run against a shared transaction.
type Store interface {
	Deadlines() DeadlineRepository
	Reports() ReportRepository
	Templates() TemplateRepository
	Branches() BranchRepository
	Users() UserRepository
	Comments() CommentRepository
	Notifications() NotificationRepository

	// WithinTransaction runs fn against a Store bound to a single database
	// transaction. Any error from fn rolls the whole transaction back and is
	// returned unchanged.
	WithinTransaction(fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore returns a Store backed by the given GORM handle.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Deadlines() DeadlineRepository         { return &deadlineRepository{db: s.db} }
func (s *gormStore) Reports() ReportRepository             { return &reportRepository{db: s.db} }
func (s *gormStore) Templates() TemplateRepository         { return &templateRepository{db: s.db} }
func (s *gormStore) Branches() BranchRepository            { return &branchRepository{db: s.db} }
func (s *gormStore) Users() UserRepository                 { return &userRepository{db: s.db} }
func (s *gormStore) Comments() CommentRepository           { return &commentRepository{db: s.db} }
func (s *gormStore) Notifications() NotificationRepository { return &notificationRepository{db: s.db} }

func (s *gormStore) WithinTransaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// notFound maps gorm.ErrRecordNotFound to a nil result.
func notFound(err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	return false, err
}
