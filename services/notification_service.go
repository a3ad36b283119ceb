package services

import (
	"fmt"
	"html"
	"log"
	"time"

	"stat-reports-api/config"
	"stat-reports-api/models"
	"stat-reports-api/repository"
)

const notificationMailSubject = "Stat reports notification"

// NotificationSink is the fire-and-forget alert target used by the review
// workflow and the deadline sweep. The store argument lets callers deliver
// inside their own transaction.
type NotificationSink interface {
	Notify(store repository.Store, userID uint, message string) error
}

// NotificationService persists in-app notifications and best-effort emails
// the recipient. Email failures are logged and never fail the caller.
type NotificationService struct {
	store    repository.Store
	sendMail func(to []string, subject, html string) error
}

func NewNotificationService(store repository.Store) *NotificationService {
	return &NotificationService{
		store:    store,
		sendMail: config.SendMail,
	}
}

func (s *NotificationService) Notify(store repository.Store, userID uint, message string) error {
	if store == nil {
		store = s.store
	}
	notification := &models.Notification{
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := store.Notifications().Create(notification); err != nil {
		return fmt.Errorf("failed to create notification for user %d: %w", userID, err)
	}
	s.emailUser(store, userID, message)
	return nil
}

func (s *NotificationService) emailUser(store repository.Store, userID uint, message string) {
	if s.sendMail == nil {
		return
	}
	user, err := store.Users().FindByID(userID)
	if err != nil || user == nil || user.Email == nil || *user.Email == "" {
		return
	}
	body := "<p>" + html.EscapeString(message) + "</p>"
	if err := s.sendMail([]string{*user.Email}, notificationMailSubject, body); err != nil {
		log.Printf("failed to email notification to user %d: %v", userID, err)
	}
}

// Unread returns a user's unread notifications, newest first.
func (s *NotificationService) Unread(userID uint) ([]models.Notification, error) {
	return s.store.Notifications().FindUnreadByUser(userID)
}

func (s *NotificationService) MarkAsRead(notificationID uint) error {
	notification, err := s.store.Notifications().FindByID(notificationID)
	if err != nil {
		return err
	}
	if notification == nil {
		return nil
	}
	notification.IsRead = true
	return s.store.Notifications().Update(notification)
}

func (s *NotificationService) Delete(notificationID uint) (bool, error) {
	notification, err := s.store.Notifications().FindByID(notificationID)
	if err != nil {
		return false, err
	}
	if notification == nil {
		return false, nil
	}
	if err := s.store.Notifications().Delete(notificationID); err != nil {
		return false, err
	}
	return true, nil
}
