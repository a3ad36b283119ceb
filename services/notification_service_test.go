package services

import (
	"errors"
	"testing"
)

func TestNotifyPersistsAndEmails(t *testing.T) {
	store := newFakeStore()
	email := "ivanov@example.com"
	user := store.addUser("ivanov", "User", nil)
	user.Email = &email

	var sentTo []string
	var sentBody string
	svc := &NotificationService{
		store: store,
		sendMail: func(to []string, subject, html string) error {
			sentTo = to
			sentBody = html
			return nil
		},
	}

	if err := svc.Notify(nil, user.UserID, "Report 'Form 4' is overdue"); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}

	unread, err := svc.Unread(user.UserID)
	if err != nil {
		t.Fatal(err)
	}
	if len(unread) != 1 || unread[0].Message != "Report 'Form 4' is overdue" {
		t.Fatalf("unexpected unread notifications: %+v", unread)
	}
	if len(sentTo) != 1 || sentTo[0] != email {
		t.Errorf("mail recipients = %v, want [%s]", sentTo, email)
	}
	if sentBody != "<p>Report &#39;Form 4&#39; is overdue</p>" {
		t.Errorf("mail body = %q", sentBody)
	}
}

func TestNotifySurvivesMailFailure(t *testing.T) {
	store := newFakeStore()
	email := "ivanov@example.com"
	user := store.addUser("ivanov", "User", nil)
	user.Email = &email

	svc := &NotificationService{
		store: store,
		sendMail: func(to []string, subject, html string) error {
			return errors.New("smtp unreachable")
		},
	}

	if err := svc.Notify(nil, user.UserID, "hello"); err != nil {
		t.Fatalf("mail failure must not fail Notify: %v", err)
	}
	if unread, _ := svc.Unread(user.UserID); len(unread) != 1 {
		t.Fatal("notification row must be persisted despite mail failure")
	}
}

func TestNotifySkipsMailWithoutAddress(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("ivanov", "User", nil)

	called := false
	svc := &NotificationService{
		store: store,
		sendMail: func(to []string, subject, html string) error {
			called = true
			return nil
		},
	}

	if err := svc.Notify(nil, user.UserID, "hello"); err != nil {
		t.Fatal(err)
	}
	if called {
		t.Error("no email must be sent for users without an address")
	}
}

func TestMarkAsReadAndDelete(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("ivanov", "User", nil)
	svc := &NotificationService{store: store}

	if err := svc.Notify(nil, user.UserID, "first"); err != nil {
		t.Fatal(err)
	}
	unread, _ := svc.Unread(user.UserID)
	if len(unread) != 1 {
		t.Fatalf("expected 1 unread, got %d", len(unread))
	}

	if err := svc.MarkAsRead(unread[0].NotificationID); err != nil {
		t.Fatal(err)
	}
	if after, _ := svc.Unread(user.UserID); len(after) != 0 {
		t.Fatal("read notification still reported unread")
	}

	deleted, err := svc.Delete(unread[0].NotificationID)
	if err != nil || !deleted {
		t.Fatalf("Delete = (%v, %v), want (true, nil)", deleted, err)
	}
	deleted, err = svc.Delete(unread[0].NotificationID)
	if err != nil || deleted {
		t.Fatalf("second Delete = (%v, %v), want (false, nil)", deleted, err)
	}
}
