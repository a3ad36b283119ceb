package services

import (
	"context"
	"testing"
	"time"

	"stat-reports-api/models"
	"stat-reports-api/repository"
)

func newTestNotifier(store *fakeStore, sink *fakeSink, now time.Time) *DeadlineNotifier {
	return &DeadlineNotifier{
		stores:   func() repository.Store { return store },
		sink:     sink,
		interval: time.Hour,
		now:      func() time.Time { return now },
	}
}

func addOpenDeadline(t *testing.T, store *fakeStore, template *models.ReportTemplate, branch *models.Branch, due time.Time) *models.SubmissionDeadline {
	t.Helper()
	deadline := &models.SubmissionDeadline{
		TemplateID:  template.TemplateID,
		BranchID:    branch.BranchID,
		Periodicity: template.Periodicity,
		DueDate:     due,
		Period:      time.Date(due.Year(), due.Month(), 1, 0, 0, 0, 0, time.UTC),
		Status:      models.StatusInProgress,
	}
	if err := store.Deadlines().Create(deadline); err != nil {
		t.Fatal(err)
	}
	return deadline
}

func TestSweepFiresOnExactThresholdsOnly(t *testing.T) {
	now := time.Date(2024, time.March, 1, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		due  time.Time
		want string
	}{
		{"ten days before", now.AddDate(0, 0, 10), "Report 'Form 4' is due in 10 days"},
		{"due today", now, "Today is the last day to submit report 'Form 4'"},
		{"overdue", now.AddDate(0, 0, -1), "Report 'Form 4' is overdue"},
		{"long overdue", now.AddDate(0, 0, -30), "Report 'Form 4' is overdue"},
		{"eleven days before", now.AddDate(0, 0, 11), ""},
		{"nine days before", now.AddDate(0, 0, 9), ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			branch := store.addBranch("Central")
			template := store.addTemplate("Form 4", models.PeriodicityMonthly, models.CategoryPlan)
			user := store.addUser("ivanov", models.RoleUser, &branch.BranchID)
			addOpenDeadline(t, store, template, branch, tc.due)

			sink := &fakeSink{}
			if err := newTestNotifier(store, sink, now).sweep(context.Background()); err != nil {
				t.Fatalf("sweep returned error: %v", err)
			}

			notes := sink.messagesFor(user.UserID)
			if tc.want == "" {
				if len(notes) != 0 {
					t.Fatalf("expected silence, got %v", notes)
				}
				return
			}
			if len(notes) != 1 || notes[0] != tc.want {
				t.Fatalf("notes = %v, want [%q]", notes, tc.want)
			}
		})
	}
}

func TestSweepSkipsSatisfiedObligations(t *testing.T) {
	now := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	store := newFakeStore()
	branch := store.addBranch("Central")
	template := store.addTemplate("Form 4", models.PeriodicityMonthly, models.CategoryPlan)
	store.addUser("ivanov", models.RoleUser, &branch.BranchID)
	deadline := addOpenDeadline(t, store, template, branch, now)

	// A report for the deadline's period exists even though the row has not
	// rolled over yet.
	report := &models.Report{
		TemplateID: template.TemplateID,
		BranchID:   branch.BranchID,
		Period:     deadline.Period,
	}
	if err := store.Reports().Create(report); err != nil {
		t.Fatal(err)
	}

	sink := &fakeSink{}
	if err := newTestNotifier(store, sink, now).sweep(context.Background()); err != nil {
		t.Fatalf("sweep returned error: %v", err)
	}
	if len(sink.notes) != 0 {
		t.Fatalf("satisfied obligation must stay silent, got %v", sink.notes)
	}
}

func TestSweepFansOutToReviewersWithBranchSuffix(t *testing.T) {
	now := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	store := newFakeStore()
	branch := store.addBranch("Northern")
	template := store.addTemplate("Balance", models.PeriodicityMonthly, models.CategoryAccounting)
	branchUser := store.addUser("ivanov", models.RoleUser, &branch.BranchID)
	accountant := store.addUser("sidorova", models.RoleOBUnF, nil)
	planner := store.addUser("petrov", models.RolePEB, nil)
	addOpenDeadline(t, store, template, branch, now)

	sink := &fakeSink{}
	if err := newTestNotifier(store, sink, now).sweep(context.Background()); err != nil {
		t.Fatalf("sweep returned error: %v", err)
	}

	base := "Today is the last day to submit report 'Balance'"
	if notes := sink.messagesFor(branchUser.UserID); len(notes) != 1 || notes[0] != base {
		t.Errorf("branch user notes = %v, want [%q]", notes, base)
	}

	withBranch := base + " (Branch: Northern)"
	if notes := sink.messagesFor(accountant.UserID); len(notes) != 1 || notes[0] != withBranch {
		t.Errorf("accounting reviewer notes = %v, want [%q]", notes, withBranch)
	}

	// The plan reviewer role is not responsible for accounting templates.
	if notes := sink.messagesFor(planner.UserID); len(notes) != 0 {
		t.Errorf("plan reviewer must not be notified, got %v", notes)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	store := newFakeStore()
	sink := &fakeSink{}
	n := newTestNotifier(store, sink, time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		n.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
