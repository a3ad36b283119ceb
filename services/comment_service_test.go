package services

import (
	"errors"
	"testing"

	"stat-reports-api/models"
)

func TestCommentLedgerAppend(t *testing.T) {
	store := newFakeStore()
	branch := store.addBranch("Central")
	template := store.addTemplate("Form 4", models.PeriodicityMonthly, models.CategoryPlan)
	author := store.addUser("petrov", models.RolePEB, nil)

	reportID := store.id()
	deadline := &models.SubmissionDeadline{
		TemplateID: template.TemplateID,
		BranchID:   branch.BranchID,
		ReportID:   &reportID,
		Status:     models.StatusDraft,
	}
	if err := store.Deadlines().Create(deadline); err != nil {
		t.Fatal(err)
	}

	svc := NewCommentService(store)
	entry, err := svc.Append(deadline.DeadlineID, "wrong totals", models.StatusNeedsCorrection, &author.UserID)
	if err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	if entry.ReportID == nil || *entry.ReportID != reportID {
		t.Error("ledger entry must carry the deadline's report link")
	}

	history, err := svc.History(deadline.DeadlineID)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].Comment != "wrong totals" {
		t.Fatalf("unexpected history: %+v", history)
	}

	if _, err := svc.Append(999, "orphan", models.StatusDraft, nil); !errors.Is(err, ErrDeadlineNotFound) {
		t.Fatalf("expected ErrDeadlineNotFound, got %v", err)
	}
}

func TestCommentDelete(t *testing.T) {
	store := newFakeStore()
	svc := NewCommentService(store)

	if err := svc.Delete(7); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}

	deadlineID := uint(1)
	entry := &models.CommentHistory{DeadlineID: &deadlineID, Comment: "note"}
	if err := store.Comments().Create(entry); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(entry.CommentID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if history, _ := svc.History(deadlineID); len(history) != 0 {
		t.Fatal("entry still present after delete")
	}
}
