package repository

import (
	"gorm.io/gorm"

	"stat-reports-api/models"
)

type TemplateRepository interface {
	Create(template *models.ReportTemplate) error
	FindByID(id uint) (*models.ReportTemplate, error)
	FindAll() ([]models.ReportTemplate, error)
	Update(template *models.ReportTemplate) error
	Delete(id uint) error
}

type templateRepository struct {
	db *gorm.DB
}

func (r *templateRepository) Create(template *models.ReportTemplate) error {
	return r.db.Create(template).Error
}

func (r *templateRepository) FindByID(id uint) (*models.ReportTemplate, error) {
	var template models.ReportTemplate
	err := r.db.Where("template_id = ?", id).First(&template).Error
	if missing, err := notFound(err); missing || err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) FindAll() ([]models.ReportTemplate, error) {
	var templates []models.ReportTemplate
	err := r.db.Order("name").Find(&templates).Error
	return templates, err
}

func (r *templateRepository) Update(template *models.ReportTemplate) error {
	return r.db.Save(template).Error
}

func (r *templateRepository) Delete(id uint) error {
	return r.db.Delete(&models.ReportTemplate{}, "template_id = ?", id).Error
}

type BranchRepository interface {
	Create(branch *models.Branch) error
	FindByID(id uint) (*models.Branch, error)
	FindAll() ([]models.Branch, error)
	Delete(id uint) error
}

type branchRepository struct {
	db *gorm.DB
}

func (r *branchRepository) Create(branch *models.Branch) error {
	return r.db.Create(branch).Error
}

func (r *branchRepository) FindByID(id uint) (*models.Branch, error) {
	var branch models.Branch
	err := r.db.Where("branch_id = ?", id).First(&branch).Error
	if missing, err := notFound(err); missing || err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) FindAll() ([]models.Branch, error) {
	var branches []models.Branch
	err := r.db.Order("name").Find(&branches).Error
	return branches, err
}

func (r *branchRepository) Delete(id uint) error {
	return r.db.Delete(&models.Branch{}, "branch_id = ?", id).Error
}
