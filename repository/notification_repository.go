package repository

import (
	"gorm.io/gorm"

	"stat-reports-api/models"
)

type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindByID(id uint) (*models.Notification, error)
	FindUnreadByUser(userID uint) ([]models.Notification, error)
	Update(notification *models.Notification) error
	Delete(id uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

func (r *notificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) FindByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.Where("notification_id = ?", id).First(&notification).Error
	if missing, err := notFound(err); missing || err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) FindUnreadByUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) Update(notification *models.Notification) error {
	return r.db.Save(notification).Error
}

func (r *notificationRepository) Delete(id uint) error {
	return r.db.Delete(&models.Notification{}, "notification_id = ?", id).Error
}
