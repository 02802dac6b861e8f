package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"crm-api/errs"
	"crm-api/models"
)

type GormNotificationStore struct {
	db *gorm.DB
}

func NewGormNotificationStore(db *gorm.DB) *GormNotificationStore {
	return &GormNotificationStore{db: db}
}

func (s *GormNotificationStore) Create(ctx context.Context, n *models.Notification) error {
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return errs.NewStorage("insert notification", err)
	}
	return nil
}

func (s *GormNotificationStore) ListByUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	items := make([]models.Notification, 0)
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("create_at DESC, notification_id DESC").
		Find(&items).Error; err != nil {
		return nil, errs.NewStorage("list notifications", err)
	}
	return items, nil
}

func (s *GormNotificationStore) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, errs.NewStorage("count unread notifications", err)
	}
	return count, nil
}

func (s *GormNotificationStore) MarkRead(ctx context.Context, userID, id uint, at time.Time) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("notification_id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"is_read": true, "update_at": at})
	if res.Error != nil {
		return errs.NewStorage("mark notification read", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("notification %d", id)
	}
	return nil
}

func (s *GormNotificationStore) MarkAllRead(ctx context.Context, userID uint, at time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "update_at": at})
	if res.Error != nil {
		return 0, errs.NewStorage("mark notifications read", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GormNotificationStore) Delete(ctx context.Context, userID, id uint) error {
	res := s.db.WithContext(ctx).
		Where("notification_id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{})
	if res.Error != nil {
		return errs.NewStorage("delete notification", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("notification %d", id)
	}
	return nil
}

func (s *GormNotificationStore) ExistsSince(ctx context.Context, userID uint, title string, since time.Time) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND title = ? AND create_at >= ?", userID, title, since).
		Count(&count).Error; err != nil {
		return false, errs.NewStorage("count notifications", err)
	}
	return count > 0, nil
}
