package services

import (
	"fmt"
	"time"

	"stat-reports-api/models"
	"stat-reports-api/repository"
)

// CommentService is the append-only status-change ledger attached to
// deadlines. The workflow never updates or reorders entries; Delete exists
// only as an administrative escape hatch.
type CommentService struct {
	store repository.Store
}

func NewCommentService(store repository.Store) *CommentService {
	return &CommentService{store: store}
}

func (s *CommentService) Append(deadlineID uint, comment string, status models.ReportStatus, authorID *uint) (*models.CommentHistory, error) {
	deadline, err := s.store.Deadlines().FindByID(deadlineID)
	if err != nil {
		return nil, err
	}
	if deadline == nil {
		return nil, ErrDeadlineNotFound
	}
	return appendComment(s.store, deadlineID, deadline.ReportID, comment, status, authorID)
}

// History returns a deadline's ledger newest first, with author display data
// joined.
func (s *CommentService) History(deadlineID uint) ([]models.CommentHistory, error) {
	return s.store.Comments().FindByDeadline(deadlineID)
}

func (s *CommentService) Delete(commentID uint) error {
	entry, err := s.store.Comments().FindByID(commentID)
	if err != nil {
		return err
	}
	if entry == nil {
		return ErrCommentNotFound
	}
	return s.store.Comments().Delete(commentID)
}

// appendComment writes one ledger entry inside the caller's store scope, so
// the correction-request path can append within its transaction.
func appendComment(tx repository.Store, deadlineID uint, reportID *uint, comment string, status models.ReportStatus, authorID *uint) (*models.CommentHistory, error) {
	entry := &models.CommentHistory{
		DeadlineID: &deadlineID,
		ReportID:   reportID,
		Comment:    comment,
		Status:     status,
		AuthorID:   authorID,
		CreatedAt:  time.Now(),
	}
	if err := tx.Comments().Create(entry); err != nil {
		return nil, fmt.Errorf("failed to append comment for deadline %d: %w", deadlineID, err)
	}
	return entry, nil
}
