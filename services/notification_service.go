package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"crm-api/errs"
	"crm-api/metrics"
	"crm-api/models"
	"crm-api/store"
)

type NotificationService struct {
	store  store.NotificationStore
	logger *zap.Logger
	now    func() time.Time
}

func NewNotificationService(st store.NotificationStore, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{store: st, logger: logger, now: time.Now}
}

// NotificationFeed is the grouped notification list returned to clients.
type NotificationFeed struct {
	Sections    []NotificationSection `json:"sections"`
	UnreadCount int64                 `json:"unread_count"`
}

// Push records a new notification for userID.
func (s *NotificationService) Push(ctx context.Context, userID uint, typ models.NotificationType, title, subtitle string, enquiryID *uint) (*models.Notification, error) {
	ve := &errs.ValidationError{}
	if userID == 0 {
		ve.Add("user_id", "is required")
	}
	if !typ.Valid() {
		ve.Add("type", "must be one of success, reminder, error")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		ve.Add("title", "is required")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	n := &models.Notification{
		UserID:           userID,
		Type:             typ,
		Title:            title,
		Subtitle:         strings.TrimSpace(subtitle),
		RelatedEnquiryID: enquiryID,
		CreateAt:         s.now(),
	}
	if err := s.store.Create(ctx, n); err != nil {
		return nil, err
	}
	metrics.NotificationsCreated.WithLabelValues(string(typ)).Inc()
	return n, nil
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint) ([]models.Notification, error) {
	return s.store.ListByUser(ctx, userID)
}

// Feed groups the user's notifications into display sections relative to now.
func (s *NotificationService) Feed(ctx context.Context, userID uint, now time.Time) (*NotificationFeed, error) {
	items, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	unread, err := s.store.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &NotificationFeed{
		Sections:    GroupNotifications(items, now),
		UnreadCount: unread,
	}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.store.CountUnread(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) error {
	return s.store.MarkRead(ctx, userID, id, s.now())
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.store.MarkAllRead(ctx, userID, s.now())
}

func (s *NotificationService) Delete(ctx context.Context, userID, id uint) error {
	return s.store.Delete(ctx, userID, id)
}

// AlreadySent reports whether userID got a notification titled title since the start
// of since's day.
func (s *NotificationService) AlreadySent(ctx context.Context, userID uint, title string, since time.Time) (bool, error) {
	return s.store.ExistsSince(ctx, userID, title, startOfDay(since, since.Location()))
}
