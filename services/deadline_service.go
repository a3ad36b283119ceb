package services

import (
	"fmt"
	"log"
	"time"

	"stat-reports-api/models"
	"stat-reports-api/repository"
	"stat-reports-api/schedule"
)

// DeadlineService owns the submission deadline lifecycle: seeding the first
// deadline per branch at template creation, the transactional roll-over that
// closes one period and opens the next, and administrative deletion.
type DeadlineService struct {
	store repository.Store
	files FileStore
}

func NewDeadlineService(store repository.Store, files FileStore) *DeadlineService {
	return &DeadlineService{store: store, files: files}
}

// Seed creates one open InProgress deadline for every branch, due on the
// template's first computed due date. It runs inside the caller's transaction
// scope (template creation).
func (s *DeadlineService) Seed(tx repository.Store, template *models.ReportTemplate, branches []models.Branch, fixedDay int, reportDate time.Time) error {
	day := fixedDay
	for _, branch := range branches {
		deadline := &models.SubmissionDeadline{
			TemplateID:  template.TemplateID,
			BranchID:    branch.BranchID,
			Periodicity: template.Periodicity,
			DueDate:     schedule.FirstDueDate(template.Periodicity, fixedDay, reportDate),
			Period:      schedule.NextPeriodStart(template.Periodicity, reportDate),
			FixedDay:    &day,
			Status:      models.StatusInProgress,
			CreatedAt:   time.Now(),
		}
		if err := tx.Deadlines().Create(deadline); err != nil {
			return fmt.Errorf("failed to seed deadline for branch %d: %w", branch.BranchID, err)
		}
	}
	return nil
}

// RollOver closes the reviewed deadline matching (template, branch, report)
// and creates its successor for the next period in one transaction. When no
// closed reviewed deadline matches, it is a logged no-op.
func (s *DeadlineService) RollOver(templateID, branchID, reportID uint) error {
	return s.store.WithinTransaction(func(tx repository.Store) error {
		return rollOver(tx, templateID, branchID, reportID)
	})
}

// rollOver is shared with the acceptance path, which already holds a
// transaction. The successor's due date and period advance from the found
// deadline's own dates, not from today, so the cadence stays regular.
func rollOver(tx repository.Store, templateID, branchID, reportID uint) error {
	prev, err := tx.Deadlines().FindClosedReviewed(templateID, branchID, reportID)
	if err != nil {
		return fmt.Errorf("failed to look up previous deadline: %w", err)
	}
	if prev == nil {
		log.Printf("roll-over skipped: no closed reviewed deadline for template %d, branch %d, report %d",
			templateID, branchID, reportID)
		return nil
	}

	successor := &models.SubmissionDeadline{
		TemplateID:  templateID,
		BranchID:    branchID,
		Periodicity: prev.Periodicity,
		DueDate:     schedule.NextDueDate(prev.Periodicity, prev.FixedDayOrDefault(), prev.DueDate),
		Period:      schedule.NextPeriodStart(prev.Periodicity, prev.Period),
		FixedDay:    prev.FixedDay,
		Status:      models.StatusInProgress,
		IsClosed:    false,
		CreatedAt:   time.Now(),
	}

	prev.IsClosed = true
	if err := tx.Deadlines().Update(prev); err != nil {
		return fmt.Errorf("failed to close previous deadline %d: %w", prev.DeadlineID, err)
	}
	if err := tx.Deadlines().Create(successor); err != nil {
		return fmt.Errorf("failed to create successor deadline: %w", err)
	}
	return nil
}

// Delete removes a deadline row and, when a report is linked, requests
// deletion of the report's stored file. The report row itself is kept for
// archive reads. File deletion failures are logged, not fatal.
func (s *DeadlineService) Delete(deadlineID uint) error {
	deadline, err := s.store.Deadlines().FindByID(deadlineID)
	if err != nil {
		return err
	}
	if deadline == nil {
		return ErrDeadlineNotFound
	}

	if deadline.ReportID != nil {
		report, err := s.store.Reports().FindByID(*deadline.ReportID)
		if err != nil {
			return err
		}
		if report != nil && report.FilePath != "" {
			if err := s.files.Delete(report.FilePath); err != nil {
				log.Printf("failed to delete report file %s: %v", report.FilePath, err)
			}
		}
	}

	return s.store.Deadlines().Delete(deadlineID)
}

func (s *DeadlineService) GetByID(deadlineID uint) (*models.SubmissionDeadline, error) {
	return s.store.Deadlines().FindByID(deadlineID)
}

// OpenDeadlines returns every open deadline joined with template and branch.
func (s *DeadlineService) OpenDeadlines() ([]models.SubmissionDeadline, error) {
	return s.store.Deadlines().FindOpen()
}

// PendingDeadline is one open obligation with its comment ledger, newest
// entry first.
type PendingDeadline struct {
	Deadline models.SubmissionDeadline `json:"deadline"`
	History  []models.CommentHistory   `json:"history"`
}

// Pending returns a branch's open deadlines with their comment history.
func (s *DeadlineService) Pending(branchID uint) ([]PendingDeadline, error) {
	deadlines, err := s.store.Deadlines().FindOpenByBranch(branchID)
	if err != nil {
		return nil, err
	}

	pending := make([]PendingDeadline, 0, len(deadlines))
	for _, deadline := range deadlines {
		history, err := s.store.Comments().FindByDeadline(deadline.DeadlineID)
		if err != nil {
			return nil, err
		}
		pending = append(pending, PendingDeadline{Deadline: deadline, History: history})
	}
	return pending, nil
}
