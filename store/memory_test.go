package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-api/errs"
	"crm-api/models"
)

func TestMemoryEnquiryStoreCopiesRecords(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryEnquiryStore()

	e := &models.Enquiry{EnquiryNumber: "ENQ-1", UserID: 1, CustomerName: "A", Status: models.EnquiryStatusNew}
	require.NoError(t, st.Create(ctx, e))
	assert.Equal(t, uint(1), e.EnquiryID)

	e.CustomerName = "mutated"
	got, err := st.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "A", got.CustomerName)

	got.CustomerName = "also mutated"
	again, _ := st.FindByID(ctx, 1)
	assert.Equal(t, "A", again.CustomerName)
}

func TestMemoryEnquiryStoreRejectsDuplicateNumber(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryEnquiryStore()

	require.NoError(t, st.Create(ctx, &models.Enquiry{EnquiryNumber: "ENQ-1", UserID: 1}))
	err := st.Create(ctx, &models.Enquiry{EnquiryNumber: "ENQ-1", UserID: 2})
	assert.True(t, errs.IsConflict(err))

	exists, err := st.NumberExists(ctx, "ENQ-1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryEnquiryStoreUpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryEnquiryStore()
	created := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	e := &models.Enquiry{EnquiryNumber: "ENQ-1", UserID: 1, CreatedAt: created, Status: models.EnquiryStatusNew}
	require.NoError(t, st.Create(ctx, e))

	require.NoError(t, st.Update(ctx, &models.Enquiry{
		EnquiryID:     e.EnquiryID,
		EnquiryNumber: "ENQ-OTHER",
		UserID:        99,
		Status:        models.EnquiryStatusClosed,
	}))

	got, err := st.FindByID(ctx, e.EnquiryID)
	require.NoError(t, err)
	assert.Equal(t, "ENQ-1", got.EnquiryNumber)
	assert.Equal(t, uint(1), got.UserID)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, models.EnquiryStatusClosed, got.Status)

	assert.True(t, errs.IsNotFound(st.Update(ctx, &models.Enquiry{EnquiryID: 42})))
}

func TestMemoryEnquiryStoreListFollowUps(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryEnquiryStore()
	day := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	at := func(h int) *time.Time {
		v := day.Add(time.Duration(h) * time.Hour)
		return &v
	}

	rows := []models.Enquiry{
		{EnquiryNumber: "ENQ-A", UserID: 1, FollowUp: true, FollowUpDate: at(15), Status: models.EnquiryStatusNew},
		{EnquiryNumber: "ENQ-B", UserID: 1, FollowUp: true, FollowUpDate: at(9), Status: models.EnquiryStatusInProgress},
		{EnquiryNumber: "ENQ-C", UserID: 1, FollowUp: true, FollowUpDate: at(10), Status: models.EnquiryStatusClosed},
		{EnquiryNumber: "ENQ-D", UserID: 2, FollowUp: true, FollowUpDate: at(11), Status: models.EnquiryStatusNew},
		{EnquiryNumber: "ENQ-E", UserID: 1, FollowUp: false, FollowUpDate: at(12), Status: models.EnquiryStatusNew},
		{EnquiryNumber: "ENQ-F", UserID: 1, FollowUp: true, FollowUpDate: at(30), Status: models.EnquiryStatusNew},
	}
	for i := range rows {
		require.NoError(t, st.Create(ctx, &rows[i]))
	}

	items, err := st.ListFollowUps(ctx, FollowUpQuery{OwnerID: 1, From: day, Before: day.Add(24 * time.Hour), OnlyOpen: true})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "ENQ-B", items[0].EnquiryNumber)
	assert.Equal(t, "ENQ-A", items[1].EnquiryNumber)

	all, err := st.ListFollowUps(ctx, FollowUpQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestMemoryNotificationStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryNotificationStore()
	base := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)

	for i, title := range []string{"first", "second", "third"} {
		require.NoError(t, st.Create(ctx, &models.Notification{
			UserID:   1,
			Type:     models.NotificationSuccess,
			Title:    title,
			CreateAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, st.Create(ctx, &models.Notification{UserID: 2, Title: "other", CreateAt: base}))

	items, err := st.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "third", items[0].Title)

	unread, _ := st.CountUnread(ctx, 1)
	assert.Equal(t, int64(3), unread)

	require.NoError(t, st.MarkRead(ctx, 1, items[0].NotificationID, base))
	assert.True(t, errs.IsNotFound(st.MarkRead(ctx, 2, items[0].NotificationID, base)))

	n, err := st.MarkAllRead(ctx, 1, base)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	unread, _ = st.CountUnread(ctx, 1)
	assert.Zero(t, unread)

	ok, _ := st.ExistsSince(ctx, 1, "second", base)
	assert.True(t, ok)
	ok, _ = st.ExistsSince(ctx, 1, "first", base.Add(time.Second))
	assert.False(t, ok)

	assert.True(t, errs.IsNotFound(st.Delete(ctx, 2, items[0].NotificationID)))
	require.NoError(t, st.Delete(ctx, 1, items[0].NotificationID))
	items, _ = st.ListByUser(ctx, 1)
	assert.Len(t, items, 2)
}

func TestMemoryUserStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryUserStore()

	require.NoError(t, st.Create(ctx, &models.User{Email: "Priya@Example.com", Name: "Priya"}))
	assert.True(t, errs.IsConflict(st.Create(ctx, &models.User{Email: "priya@example.com"})))

	u, err := st.FindByEmail(ctx, "priya@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Priya", u.Name)

	at := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	require.NoError(t, st.UpdatePassword(ctx, u.UserID, "hash", at))
	u, _ = st.FindByID(ctx, u.UserID)
	assert.Equal(t, "hash", u.Password)

	_, err = st.FindByID(ctx, 77)
	assert.True(t, errs.IsNotFound(err))
}
