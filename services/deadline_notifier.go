package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"stat-reports-api/models"
	"stat-reports-api/repository"
)

const (
	defaultSweepInterval = 24 * time.Hour
	dueSoonDays          = 10
)

// DeadlineNotifier is the background sweep that derives due-date alerts from
// the open deadlines once per interval. Thresholds are exact-day: a message
// is emitted only at 10 days before, on the due day, and once overdue.
type DeadlineNotifier struct {
	// stores yields a fresh store per iteration so the sweep never holds a
	// long-lived handle across sleeps.
	stores   func() repository.Store
	sink     NotificationSink
	interval time.Duration
	now      func() time.Time
}

func NewDeadlineNotifier(db *gorm.DB, sink NotificationSink, interval time.Duration) *DeadlineNotifier {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &DeadlineNotifier{
		stores:   func() repository.Store { return repository.NewStore(db) },
		sink:     sink,
		interval: interval,
		now:      time.Now,
	}
}

// Run loops until ctx is cancelled. Cancellation aborts the interval sleep
// promptly and may abandon an in-flight fan-out mid-list.
func (n *DeadlineNotifier) Run(ctx context.Context) {
	log.Printf("deadline notifier started (interval %s)", n.interval)
	for {
		if err := n.sweep(ctx); err != nil && ctx.Err() == nil {
			log.Printf("deadline sweep failed: %v", err)
		}
		select {
		case <-ctx.Done():
			log.Println("deadline notifier stopped")
			return
		case <-time.After(n.interval):
		}
	}
}

func (n *DeadlineNotifier) sweep(ctx context.Context) error {
	store := n.stores()
	deadlines, err := store.Deadlines().FindOpen()
	if err != nil {
		return fmt.Errorf("failed to load open deadlines: %w", err)
	}

	today := dateOnly(n.now())
	for i := range deadlines {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := n.notifyDeadline(store, &deadlines[i], today); err != nil {
			log.Printf("deadline %d: notification fan-out failed: %v", deadlines[i].DeadlineID, err)
		}
	}
	return nil
}

func (n *DeadlineNotifier) notifyDeadline(store repository.Store, deadline *models.SubmissionDeadline, today time.Time) error {
	if deadline.Template == nil || deadline.Branch == nil {
		log.Printf("deadline %d: missing template or branch join, skipping", deadline.DeadlineID)
		return nil
	}

	// The obligation may already be satisfied even though the deadline row
	// has not rolled over yet.
	existing, err := store.Reports().FindByPeriod(
		deadline.TemplateID, deadline.BranchID, deadline.Period.Year(), deadline.Period.Month())
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	daysLeft := daysBetween(today, dateOnly(deadline.DueDate))
	var message string
	switch {
	case daysLeft == dueSoonDays:
		message = fmt.Sprintf("Report '%s' is due in 10 days", deadline.Template.Name)
	case daysLeft == 0:
		message = fmt.Sprintf("Today is the last day to submit report '%s'", deadline.Template.Name)
	case daysLeft < 0:
		message = fmt.Sprintf("Report '%s' is overdue", deadline.Template.Name)
	default:
		return nil
	}

	branchUsers, err := store.Users().FindByBranch(deadline.BranchID)
	if err != nil {
		return err
	}
	for _, user := range branchUsers {
		if err := n.sink.Notify(store, user.UserID, message); err != nil {
			log.Printf("failed to notify user %d: %v", user.UserID, err)
		}
	}

	role := deadline.Template.Category.ReviewerRole()
	if role == "" {
		return nil
	}
	reviewers, err := store.Users().FindByRole(role)
	if err != nil {
		return err
	}
	roleMessage := fmt.Sprintf("%s (Branch: %s)", message, deadline.Branch.Name)
	for _, user := range reviewers {
		if err := n.sink.Notify(store, user.UserID, roleMessage); err != nil {
			log.Printf("failed to notify %s user %d: %v", role, user.UserID, err)
		}
	}
	return nil
}

// dateOnly drops the clock and location so day arithmetic is stable across
// time zones and DST.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
