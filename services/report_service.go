package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"stat-reports-api/models"
	"stat-reports-api/repository"
)

// ReportService orchestrates the review workflow: upload, acceptance,
// correction requests and reopening. Multi-record mutations run inside one
// transaction; any failure rolls the whole operation back.
type ReportService struct {
	store    repository.Store
	files    FileStore
	notifier NotificationSink
}

func NewReportService(store repository.Store, files FileStore, notifier NotificationSink) *ReportService {
	return &ReportService{store: store, files: files, notifier: notifier}
}

// Upload stores a report file against an open deadline. A re-upload against a
// deadline that already has a linked report deletes the old file and updates
// the same report row in place. The report's period is always copied from the
// deadline, never derived from the upload time.
func (s *ReportService) Upload(templateID, branchID, uploaderID uint, file *multipart.FileHeader, deadlineID uint) (*models.Report, error) {
	if file == nil || file.Size == 0 {
		return nil, ErrEmptyFile
	}

	var report *models.Report
	err := s.store.WithinTransaction(func(tx repository.Store) error {
		branch, err := tx.Branches().FindByID(branchID)
		if err != nil {
			return err
		}
		if branch == nil {
			return ErrBranchNotFound
		}
		template, err := tx.Templates().FindByID(templateID)
		if err != nil {
			return err
		}
		if template == nil {
			return ErrTemplateNotFound
		}
		deadline, err := tx.Deadlines().FindByID(deadlineID)
		if err != nil {
			return err
		}
		if deadline == nil {
			return ErrDeadlineNotFound
		}
		// Uploads against a closed or already accepted period are refused.
		if deadline.IsClosed || deadline.Status == models.StatusReviewed {
			return fmt.Errorf("%w: deadline %d is %s", ErrInvalidStatusTransition, deadlineID, deadline.Status)
		}

		if deadline.ReportID != nil {
			existing, err := tx.Reports().FindByID(*deadline.ReportID)
			if err != nil {
				return err
			}
			if existing != nil {
				report, err = s.replaceReport(tx, existing, deadline, branch, template, file, uploaderID)
				return err
			}
		}

		report, err = s.createReport(tx, deadline, branch, template, file, uploaderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) replaceReport(tx repository.Store, existing *models.Report, deadline *models.SubmissionDeadline, branch *models.Branch, template *models.ReportTemplate, file *multipart.FileHeader, uploaderID uint) (*models.Report, error) {
	if existing.FilePath != "" {
		if err := s.files.Delete(existing.FilePath); err != nil {
			return nil, fmt.Errorf("failed to delete replaced file: %w", err)
		}
	}
	path, err := s.files.Save(file, branch.Name, time.Now().Year(), template.Name)
	if err != nil {
		return nil, err
	}

	existing.Name = baseName(file.Filename)
	existing.FilePath = path
	existing.UploadedByID = &uploaderID
	existing.UploadDate = time.Now()
	existing.Period = deadline.Period
	existing.Category = template.Category
	if err := tx.Reports().Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update report %d: %w", existing.ReportID, err)
	}

	deadline.Status = models.StatusDraft
	deadline.ReportID = &existing.ReportID
	if err := tx.Deadlines().Update(deadline); err != nil {
		return nil, fmt.Errorf("failed to update deadline %d: %w", deadline.DeadlineID, err)
	}
	return existing, nil
}

func (s *ReportService) createReport(tx repository.Store, deadline *models.SubmissionDeadline, branch *models.Branch, template *models.ReportTemplate, file *multipart.FileHeader, uploaderID uint) (*models.Report, error) {
	path, err := s.files.Save(file, branch.Name, time.Now().Year(), template.Name)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		Name:         baseName(file.Filename),
		TemplateID:   template.TemplateID,
		BranchID:     branch.BranchID,
		UploadedByID: &uploaderID,
		FilePath:     path,
		UploadDate:   time.Now(),
		Period:       deadline.Period,
		Category:     template.Category,
	}
	if err := tx.Reports().Create(report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	deadline.Status = models.StatusDraft
	deadline.ReportID = &report.ReportID
	if err := tx.Deadlines().Update(deadline); err != nil {
		return nil, fmt.Errorf("failed to update deadline %d: %w", deadline.DeadlineID, err)
	}
	return report, nil
}

// Accept marks a draft as reviewed, closes the deadline and report, rolls the
// obligation over to the next period unless a reopen suppressed it, and
// notifies the uploader. The whole sequence is one transaction.
func (s *ReportService) Accept(deadlineID, reportID uint) error {
	return s.store.WithinTransaction(func(tx repository.Store) error {
		report, err := tx.Reports().FindByID(reportID)
		if err != nil {
			return err
		}
		if report == nil {
			return ErrReportNotFound
		}
		deadline, err := tx.Deadlines().FindByID(deadlineID)
		if err != nil {
			return err
		}
		if deadline == nil {
			return ErrDeadlineNotFound
		}
		if deadline.ReportID == nil {
			return ErrNoLinkedReport
		}
		if !deadline.Status.CanTransitionTo(models.StatusReviewed) {
			return fmt.Errorf("%w: cannot accept deadline %d in status %s", ErrInvalidStatusTransition, deadlineID, deadline.Status)
		}

		wasReopened := deadline.Reopened
		deadline.Status = models.StatusReviewed
		deadline.IsClosed = true
		deadline.ReportID = &reportID
		deadline.Reopened = false
		report.IsClosed = true

		if err := tx.Reports().Update(report); err != nil {
			return fmt.Errorf("failed to close report %d: %w", reportID, err)
		}
		if err := tx.Deadlines().Update(deadline); err != nil {
			return fmt.Errorf("failed to close deadline %d: %w", deadlineID, err)
		}

		if !wasReopened {
			if err := rollOver(tx, report.TemplateID, report.BranchID, reportID); err != nil {
				return err
			}
		}

		if report.UploadedByID != nil {
			message := fmt.Sprintf("Report '%s' for period %s was accepted.",
				report.Name, report.Period.Format("2006-01-02"))
			if err := s.notifier.Notify(tx, *report.UploadedByID, message); err != nil {
				return err
			}
		}
		return nil
	})
}

// RequestCorrection sends a draft back to the branch: the deadline moves to
// NeedsCorrection, one ledger entry is appended, and the uploader is notified
// with the reviewer's name and the comment text. The deadline stays open.
func (s *ReportService) RequestCorrection(deadlineID, reportID uint, comment string, authorID *uint) error {
	return s.store.WithinTransaction(func(tx repository.Store) error {
		report, err := tx.Reports().FindByID(reportID)
		if err != nil {
			return err
		}
		if report == nil {
			return ErrReportNotFound
		}
		deadline, err := tx.Deadlines().FindByID(deadlineID)
		if err != nil {
			return err
		}
		if deadline == nil {
			return ErrDeadlineNotFound
		}
		if deadline.IsClosed || !deadline.Status.CanTransitionTo(models.StatusNeedsCorrection) {
			return fmt.Errorf("%w: cannot request correction on deadline %d in status %s", ErrInvalidStatusTransition, deadlineID, deadline.Status)
		}

		deadline.Status = models.StatusNeedsCorrection
		if err := tx.Deadlines().Update(deadline); err != nil {
			return fmt.Errorf("failed to update deadline %d: %w", deadlineID, err)
		}

		if _, err := appendComment(tx, deadlineID, deadline.ReportID, comment, models.StatusNeedsCorrection, authorID); err != nil {
			return err
		}

		authorName := "Reviewer"
		if authorID != nil {
			author, err := tx.Users().FindByID(*authorID)
			if err != nil {
				return err
			}
			if author != nil {
				authorName = author.FullName
			}
		}
		if report.UploadedByID != nil {
			message := fmt.Sprintf("%s: %s: %s", authorName, report.Name, comment)
			if err := s.notifier.Notify(tx, *report.UploadedByID, message); err != nil {
				return err
			}
		}
		return nil
	})
}

// Reopen reverts an accepted report back into the correction cycle: report
// and deadline are un-closed, the deadline moves to NeedsCorrection, and the
// reopened flag suppresses a second roll-over on the next acceptance. The
// successor deadline created by the earlier roll-over is left alone. Returns
// (nil, nil) when either record is missing.
func (s *ReportService) Reopen(reportID uint) (*models.Report, error) {
	var reopened *models.Report
	err := s.store.WithinTransaction(func(tx repository.Store) error {
		report, err := tx.Reports().FindByID(reportID)
		if err != nil {
			return err
		}
		deadline, err := tx.Deadlines().FindByReportID(reportID)
		if err != nil {
			return err
		}
		if report == nil || deadline == nil {
			return nil
		}

		report.IsClosed = false
		deadline.IsClosed = false
		deadline.Status = models.StatusNeedsCorrection
		deadline.Reopened = true

		if err := tx.Reports().Update(report); err != nil {
			return fmt.Errorf("failed to reopen report %d: %w", reportID, err)
		}
		if err := tx.Deadlines().Update(deadline); err != nil {
			return fmt.Errorf("failed to reopen deadline %d: %w", deadline.DeadlineID, err)
		}
		reopened = report
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reopened, nil
}

// Delete removes a report row together with its stored file.
func (s *ReportService) Delete(reportID uint) error {
	report, err := s.store.Reports().FindByID(reportID)
	if err != nil {
		return err
	}
	if report == nil {
		return ErrReportNotFound
	}
	if report.FilePath != "" {
		if err := s.files.Delete(report.FilePath); err != nil {
			return fmt.Errorf("failed to delete report file: %w", err)
		}
	}
	return s.store.Reports().Delete(reportID)
}

func (s *ReportService) GetByID(reportID uint) (*models.Report, error) {
	return s.store.Reports().FindByID(reportID)
}

// File returns the stored file contents and its display name.
func (s *ReportService) File(reportID uint) ([]byte, string, error) {
	report, err := s.store.Reports().FindByID(reportID)
	if err != nil {
		return nil, "", err
	}
	if report == nil || report.FilePath == "" {
		return nil, "", ErrReportNotFound
	}
	data, err := s.files.Read(report.FilePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read report file: %w", err)
	}
	return data, filepath.Base(report.FilePath), nil
}

// ArchiveQuery filters the closed-report archive. The period window is
// derived from the selected template's periodicity: a month for monthly
// templates, a quarter for quarterly ones, and so on; absent selectors widen
// the window to the whole year.
type ArchiveQuery struct {
	Name       string
	TemplateID *uint
	BranchID   *uint
	Category   *models.ReportCategory
	Year       *int
	Month      *int
	Quarter    *int
	HalfYear   *int
}

func (s *ReportService) Archive(q ArchiveQuery) ([]models.Report, error) {
	filter := repository.ArchiveFilter{
		Name:       q.Name,
		TemplateID: q.TemplateID,
		BranchID:   q.BranchID,
		Category:   q.Category,
	}

	if q.TemplateID != nil && q.Year != nil {
		template, err := s.store.Templates().FindByID(*q.TemplateID)
		if err != nil {
			return nil, err
		}
		if template == nil {
			return nil, ErrTemplateNotFound
		}
		from, to := periodWindow(template.Periodicity, *q.Year, q.Month, q.Quarter, q.HalfYear)
		filter.PeriodFrom = &from
		filter.PeriodTo = &to
	}

	return s.store.Reports().FindClosed(filter)
}

func periodWindow(p models.Periodicity, year int, month, quarter, halfYear *int) (time.Time, time.Time) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	switch p {
	case models.PeriodicityMonthly:
		if month != nil && *month >= 1 && *month <= 12 {
			from = time.Date(year, time.Month(*month), 1, 0, 0, 0, 0, time.UTC)
			to = from.AddDate(0, 1, -1)
		}
	case models.PeriodicityQuarterly:
		if quarter != nil && *quarter >= 1 && *quarter <= 4 {
			startMonth := (*quarter-1)*3 + 1
			from = time.Date(year, time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC)
			to = from.AddDate(0, 3, -1)
		}
	case models.PeriodicityHalfYearly:
		if halfYear != nil && (*halfYear == 1 || *halfYear == 2) {
			startMonth := 1
			if *halfYear == 2 {
				startMonth = 7
			}
			from = time.Date(year, time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC)
			to = from.AddDate(0, 6, -1)
		}
	}
	return from, to
}

func baseName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
