package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"crm-api/errs"
	"crm-api/models"
)

// MemoryEnquiryStore keeps enquiries in a map. Records are copied in and out so callers
// never share state with the store.
type MemoryEnquiryStore struct {
	mu     sync.RWMutex
	nextID uint
	rows   map[uint]models.Enquiry
}

func NewMemoryEnquiryStore() *MemoryEnquiryStore {
	return &MemoryEnquiryStore{rows: map[uint]models.Enquiry{}}
}

func (s *MemoryEnquiryStore) Create(_ context.Context, e *models.Enquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if row.EnquiryNumber == e.EnquiryNumber {
			return errs.NewConflict("enquiry number %s already exists", e.EnquiryNumber)
		}
	}
	s.nextID++
	e.EnquiryID = s.nextID
	s.rows[e.EnquiryID] = *e
	return nil
}

func (s *MemoryEnquiryStore) FindByID(_ context.Context, id uint) (*models.Enquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, errs.NewNotFound("enquiry %d", id)
	}
	return &row, nil
}

func (s *MemoryEnquiryStore) NumberExists(_ context.Context, number string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.rows {
		if row.EnquiryNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryEnquiryStore) ListByOwner(_ context.Context, ownerID uint, status models.EnquiryStatus) ([]models.Enquiry, error) {
	s.mu.RLock()
	items := make([]models.Enquiry, 0)
	for _, row := range s.rows {
		if row.UserID != ownerID {
			continue
		}
		if status != "" && row.Status != status {
			continue
		}
		items = append(items, row)
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].EnquiryID > items[j].EnquiryID
	})
	return items, nil
}

func (s *MemoryEnquiryStore) ListFollowUps(_ context.Context, q FollowUpQuery) ([]models.Enquiry, error) {
	s.mu.RLock()
	items := make([]models.Enquiry, 0)
	for _, row := range s.rows {
		if !row.FollowUp || row.FollowUpDate == nil {
			continue
		}
		if q.OwnerID != 0 && row.UserID != q.OwnerID {
			continue
		}
		if !q.From.IsZero() && row.FollowUpDate.Before(q.From) {
			continue
		}
		if !q.Before.IsZero() && !row.FollowUpDate.Before(q.Before) {
			continue
		}
		if q.OnlyOpen && !row.Status.Open() {
			continue
		}
		items = append(items, row)
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if !items[i].FollowUpDate.Equal(*items[j].FollowUpDate) {
			return items[i].FollowUpDate.Before(*items[j].FollowUpDate)
		}
		return items[i].EnquiryID < items[j].EnquiryID
	})
	return items, nil
}

func (s *MemoryEnquiryStore) Update(_ context.Context, e *models.Enquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[e.EnquiryID]
	if !ok {
		return errs.NewNotFound("enquiry %d", e.EnquiryID)
	}
	updated := *e
	updated.EnquiryNumber = row.EnquiryNumber
	updated.UserID = row.UserID
	updated.CreatedAt = row.CreatedAt
	s.rows[e.EnquiryID] = updated
	return nil
}

func (s *MemoryEnquiryStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return errs.NewNotFound("enquiry %d", id)
	}
	delete(s.rows, id)
	return nil
}

type MemoryNotificationStore struct {
	mu     sync.RWMutex
	nextID uint
	rows   []models.Notification
}

func NewMemoryNotificationStore() *MemoryNotificationStore {
	return &MemoryNotificationStore{}
}

func (s *MemoryNotificationStore) Create(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	n.NotificationID = s.nextID
	s.rows = append(s.rows, *n)
	return nil
}

func (s *MemoryNotificationStore) ListByUser(_ context.Context, userID uint) ([]models.Notification, error) {
	s.mu.RLock()
	items := make([]models.Notification, 0)
	for _, row := range s.rows {
		if row.UserID == userID {
			items = append(items, row)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreateAt.Equal(items[j].CreateAt) {
			return items[i].CreateAt.After(items[j].CreateAt)
		}
		return items[i].NotificationID > items[j].NotificationID
	})
	return items, nil
}

func (s *MemoryNotificationStore) CountUnread(_ context.Context, userID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, row := range s.rows {
		if row.UserID == userID && !row.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *MemoryNotificationStore) MarkRead(_ context.Context, userID, id uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rows {
		if s.rows[i].NotificationID == id && s.rows[i].UserID == userID {
			s.rows[i].IsRead = true
			s.rows[i].UpdateAt = &at
			return nil
		}
	}
	return errs.NewNotFound("notification %d", id)
}

func (s *MemoryNotificationStore) MarkAllRead(_ context.Context, userID uint, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for i := range s.rows {
		if s.rows[i].UserID == userID && !s.rows[i].IsRead {
			s.rows[i].IsRead = true
			s.rows[i].UpdateAt = &at
			n++
		}
	}
	return n, nil
}

func (s *MemoryNotificationStore) Delete(_ context.Context, userID, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rows {
		if s.rows[i].NotificationID == id && s.rows[i].UserID == userID {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return errs.NewNotFound("notification %d", id)
}

func (s *MemoryNotificationStore) ExistsSince(_ context.Context, userID uint, title string, since time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.rows {
		if row.UserID == userID && row.Title == title && !row.CreateAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

type MemoryUserStore struct {
	mu     sync.RWMutex
	nextID uint
	rows   map[uint]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{rows: map[uint]models.User{}}
}

func (s *MemoryUserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if strings.EqualFold(row.Email, u.Email) {
			return errs.NewConflict("email %s is already registered", u.Email)
		}
	}
	s.nextID++
	u.UserID = s.nextID
	s.rows[u.UserID] = *u
	return nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok || row.DeleteAt != nil {
		return nil, errs.NewNotFound("user %d", id)
	}
	return &row, nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.rows {
		if strings.EqualFold(row.Email, email) && row.DeleteAt == nil {
			return &row, nil
		}
	}
	return nil, errs.NewNotFound("user")
}

func (s *MemoryUserStore) UpdatePassword(_ context.Context, id uint, hash string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok || row.DeleteAt != nil {
		return errs.NewNotFound("user %d", id)
	}
	row.Password = hash
	row.UpdateAt = &at
	s.rows[id] = row
	return nil
}
