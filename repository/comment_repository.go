package repository

import (
	"gorm.io/gorm"

	"stat-reports-api/models"
)

type CommentRepository interface {
	Create(entry *models.CommentHistory) error
	FindByID(id uint) (*models.CommentHistory, error)
	// FindByDeadline returns a deadline's ledger entries newest first, with
	// the author joined for display.
	FindByDeadline(deadlineID uint) ([]models.CommentHistory, error)
	Delete(id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func (r *commentRepository) Create(entry *models.CommentHistory) error {
	return r.db.Create(entry).Error
}

func (r *commentRepository) FindByID(id uint) (*models.CommentHistory, error) {
	var entry models.CommentHistory
	err := r.db.Where("comment_id = ?", id).First(&entry).Error
	if missing, err := notFound(err); missing || err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *commentRepository) FindByDeadline(deadlineID uint) ([]models.CommentHistory, error) {
	var entries []models.CommentHistory
	err := r.db.Preload("Author").
		Where("deadline_id = ?", deadlineID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *commentRepository) Delete(id uint) error {
	return r.db.Delete(&models.CommentHistory{}, "comment_id = ?", id).Error
}
