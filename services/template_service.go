package services

import (
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"stat-reports-api/models"
	"stat-reports-api/repository"
)

// TemplateService manages report templates. Creating a template seeds one
// open deadline per branch in the same transaction.
type TemplateService struct {
	store     repository.Store
	files     FileStore
	deadlines *DeadlineService
}

func NewTemplateService(store repository.Store, files FileStore, deadlines *DeadlineService) *TemplateService {
	return &TemplateService{store: store, files: files, deadlines: deadlines}
}

type CreateTemplateInput struct {
	Name        string
	Description *string
	Periodicity models.Periodicity
	Category    models.ReportCategory
	FixedDay    int
	ReportDate  time.Time
	File        *multipart.FileHeader
}

func (s *TemplateService) Create(input CreateTemplateInput) (*models.ReportTemplate, error) {
	if !input.Periodicity.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPeriodicity, input.Periodicity)
	}
	if input.FixedDay < 1 || input.FixedDay > 31 {
		return nil, fmt.Errorf("fixed day must be between 1 and 31, got %d", input.FixedDay)
	}

	filePath := ""
	if input.File != nil {
		path, err := s.files.SaveTemplate(input.File)
		if err != nil {
			return nil, err
		}
		filePath = path
	}

	template := &models.ReportTemplate{
		Name:        input.Name,
		Description: input.Description,
		Periodicity: input.Periodicity,
		Category:    input.Category,
		FilePath:    filePath,
		CreatedAt:   time.Now(),
	}

	err := s.store.WithinTransaction(func(tx repository.Store) error {
		if err := tx.Templates().Create(template); err != nil {
			return fmt.Errorf("failed to create template: %w", err)
		}
		branches, err := tx.Branches().FindAll()
		if err != nil {
			return err
		}
		return s.deadlines.Seed(tx, template, branches, input.FixedDay, input.ReportDate)
	})
	if err != nil {
		return nil, err
	}
	return template, nil
}

func (s *TemplateService) List() ([]models.ReportTemplate, error) {
	return s.store.Templates().FindAll()
}

func (s *TemplateService) GetByID(templateID uint) (*models.ReportTemplate, error) {
	return s.store.Templates().FindByID(templateID)
}

// Update edits a template's descriptive fields. Changing the periodicity does
// not retroactively alter deadlines that are already open.
func (s *TemplateService) Update(templateID uint, name string, description *string, category models.ReportCategory) (*models.ReportTemplate, error) {
	template, err := s.store.Templates().FindByID(templateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}
	template.Name = name
	template.Description = description
	template.Category = category
	if err := s.store.Templates().Update(template); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *TemplateService) Delete(templateID uint) error {
	template, err := s.store.Templates().FindByID(templateID)
	if err != nil {
		return err
	}
	if template == nil {
		return ErrTemplateNotFound
	}
	if err := s.store.Templates().Delete(templateID); err != nil {
		return err
	}
	if template.FilePath != "" {
		if err := s.files.Delete(template.FilePath); err != nil {
			log.Printf("failed to delete template file %s: %v", template.FilePath, err)
		}
	}
	return nil
}
