// Package store holds the persistence interfaces used by services, with a gorm (MySQL)
// implementation and an in-memory one.
package store

import (
	"context"
	"time"

	"crm-api/models"
)

type EnquiryStore interface {
	// Create inserts e and assigns its id. Returns errs.ErrConflict when the enquiry
	// number is taken.
	Create(ctx context.Context, e *models.Enquiry) error
	FindByID(ctx context.Context, id uint) (*models.Enquiry, error)
	NumberExists(ctx context.Context, number string) (bool, error)
	// ListByOwner returns the owner's enquiries, newest first. An empty status means all.
	ListByOwner(ctx context.Context, ownerID uint, status models.EnquiryStatus) ([]models.Enquiry, error)
	// ListFollowUps returns enquiries flagged for follow-up, earliest follow-up first.
	ListFollowUps(ctx context.Context, q FollowUpQuery) ([]models.Enquiry, error)
	// Update writes every mutable column of e. Returns errs.ErrNotFound when the row is gone.
	Update(ctx context.Context, e *models.Enquiry) error
	Delete(ctx context.Context, id uint) error
}

// FollowUpQuery selects enquiries with the follow-up flag set. Zero values disable a
// bound; OwnerID 0 means every owner.
type FollowUpQuery struct {
	OwnerID  uint
	From     time.Time
	Before   time.Time
	OnlyOpen bool
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID uint) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, userID, id uint, at time.Time) error
	MarkAllRead(ctx context.Context, userID uint, at time.Time) (int64, error)
	Delete(ctx context.Context, userID, id uint) error
	// ExistsSince reports whether the user already got a notification with this title
	// at or after since.
	ExistsSince(ctx context.Context, userID uint, title string, since time.Time) (bool, error)
}

type UserStore interface {
	// Create inserts u. Returns errs.ErrConflict when the email is taken.
	Create(ctx context.Context, u *models.User) error
	// FindByID and FindByEmail ignore soft-deleted users.
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string, at time.Time) error
}
