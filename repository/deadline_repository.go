package repository

import (
	"gorm.io/gorm"

	"stat-reports-api/models"
)

// DeadlineRepository persists submission deadlines and the targeted queries
// the lifecycle manager and the notification sweep need.
type DeadlineRepository interface {
	Create(deadline *models.SubmissionDeadline) error
	FindByID(id uint) (*models.SubmissionDeadline, error)
	Update(deadline *models.SubmissionDeadline) error
	Delete(id uint) error

	// FindOpen returns every open deadline joined with its template and
	// branch, in store order.
	FindOpen() ([]models.SubmissionDeadline, error)
	// FindOpenByBranch returns a branch's open deadlines joined with their
	// templates.
	FindOpenByBranch(branchID uint) ([]models.SubmissionDeadline, error)
	// FindClosedReviewed locates the closed, Reviewed deadline matching the
	// (template, branch, report) triple, the roll-over predecessor.
	FindClosedReviewed(templateID, branchID, reportID uint) (*models.SubmissionDeadline, error)
	// FindByReportID locates the deadline linked to the given report.
	FindByReportID(reportID uint) (*models.SubmissionDeadline, error)
}

type deadlineRepository struct {
	db *gorm.DB
}

func (r *deadlineRepository) Create(deadline *models.SubmissionDeadline) error {
	return r.db.Create(deadline).Error
}

func (r *deadlineRepository) FindByID(id uint) (*models.SubmissionDeadline, error) {
	var deadline models.SubmissionDeadline
	err := r.db.Preload("Template").Preload("Branch").
		Where("deadline_id = ?", id).First(&deadline).Error
	if missing, err := notFound(err); missing || err != nil {
		return nil, err
	}
	return &deadline, nil
}

func (r *deadlineRepository) Update(deadline *models.SubmissionDeadline) error {
	return r.db.Save(deadline).Error
}

func (r *deadlineRepository) Delete(id uint) error {
	return r.db.Delete(&models.SubmissionDeadline{}, "deadline_id = ?", id).Error
}

func (r *deadlineRepository) FindOpen() ([]models.SubmissionDeadline, error) {
	var deadlines []models.SubmissionDeadline
	err := r.db.Preload("Template").Preload("Branch").
		Where("is_closed = ?", false).Find(&deadlines).Error
	return deadlines, err
}

func (r *deadlineRepository) FindOpenByBranch(branchID uint) ([]models.SubmissionDeadline, error) {
	var deadlines []models.SubmissionDeadline
	err := r.db.Preload("Template").
		Where("branch_id = ? AND is_closed = ?", branchID, false).
		Find(&deadlines).Error
	return deadlines, err
}

func (r *deadlineRepository) FindClosedReviewed(templateID, branchID, reportID uint) (*models.SubmissionDeadline, error) {
	var deadline models.SubmissionDeadline
	err := r.db.
		Where("template_id = ? AND branch_id = ? AND report_id = ? AND is_closed = ? AND status = ?",
			templateID, branchID, reportID, true, models.StatusReviewed).
		First(&deadline).Error
	if missing, err := notFound(err); missing || err != nil {
		return nil, err
	}
	return &deadline, nil
}

func (r *deadlineRepository) FindByReportID(reportID uint) (*models.SubmissionDeadline, error) {
	var deadline models.SubmissionDeadline
	err := r.db.Where("report_id = ?", reportID).First(&deadline).Error
	if missing, err := notFound(err); missing || err != nil {
		return nil, err
	}
	return &deadline, nil
}
