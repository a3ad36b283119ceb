package repository

import (
	"time"

	"gorm.io/gorm"

	"stat-reports-api/models"
)

// ArchiveFilter narrows the closed-report archive query. Nil fields are
// ignored.
type ArchiveFilter struct {
	Name       string
	TemplateID *uint
	BranchID   *uint
	Category   *models.ReportCategory
	PeriodFrom *time.Time
	PeriodTo   *time.Time
}

type ReportRepository interface {
	Create(report *models.Report) error
	FindByID(id uint) (*models.Report, error)
	Update(report *models.Report) error
	Delete(id uint) error

	// FindByPeriod locates the report uploaded for a (template, branch)
	// obligation whose period falls in the given year and month.
	FindByPeriod(templateID, branchID uint, year int, month time.Month) (*models.Report, error)
	// FindClosed returns closed reports for the archive view, joined with
	// template, branch and uploader.
	FindClosed(filter ArchiveFilter) ([]models.Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

func (r *reportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) FindByID(id uint) (*models.Report, error) {
	var report models.Report
	err := r.db.Where("report_id = ?", id).First(&report).Error
	if missing, err := notFound(err); missing || err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) Update(report *models.Report) error {
	return r.db.Save(report).Error
}

func (r *reportRepository) Delete(id uint) error {
	return r.db.Delete(&models.Report{}, "report_id = ?", id).Error
}

func (r *reportRepository) FindByPeriod(templateID, branchID uint, year int, month time.Month) (*models.Report, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var report models.Report
	err := r.db.
		Where("template_id = ? AND branch_id = ? AND period >= ? AND period < ?",
			templateID, branchID, from, to).
		First(&report).Error
	if missing, err := notFound(err); missing || err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindClosed(filter ArchiveFilter) ([]models.Report, error) {
	query := r.db.Preload("Template").Preload("Branch").Preload("UploadedBy").
		Where("is_closed = ?", true)

	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.TemplateID != nil {
		query = query.Where("template_id = ?", *filter.TemplateID)
	}
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.PeriodFrom != nil {
		query = query.Where("period >= ?", *filter.PeriodFrom)
	}
	if filter.PeriodTo != nil {
		query = query.Where("period <= ?", *filter.PeriodTo)
	}

	var reports []models.Report
	err := query.Order("upload_date DESC").Find(&reports).Error
	return reports, err
}
