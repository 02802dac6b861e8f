package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-api/errs"
	"crm-api/models"
	"crm-api/store"
)

// stepClock returns start and then advances by step on every call.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	current := start.Add(-step)
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}

func newTestEnquiryService(t *testing.T) (*EnquiryService, *NotificationService) {
	t.Helper()
	clock := stepClock(time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC), time.Minute)
	notifications := NewNotificationService(store.NewMemoryNotificationStore(), nil)
	notifications.now = clock
	svc := NewEnquiryService(store.NewMemoryEnquiryStore(), notifications, nil)
	svc.now = clock
	return svc, notifications
}

func validInput() EnquiryInput {
	return EnquiryInput{
		CustomerName: "Asha Rao",
		MobileNumber: "9876543210",
		ProductName:  "Solar Inverter",
		ProductCost:  "45999.50",
	}
}

func strPtr(s string) *string { return &s }

func TestCreateRequiresMandatoryFields(t *testing.T) {
	svc, _ := newTestEnquiryService(t)

	_, err := svc.Create(context.Background(), 1, EnquiryInput{CustomerName: "  ", ProductCost: "abc"})

	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	fields := errs.FieldErrors(err)
	assert.Equal(t, "is required", fields["customer_name"])
	assert.Equal(t, "is required", fields["mobile_number"])
	assert.Equal(t, "is required", fields["product_name"])
	assert.Equal(t, "must be a decimal number", fields["product_cost"])
}

func TestCreateRejectsUnknownStatusAndNegativeCost(t *testing.T) {
	svc, _ := newTestEnquiryService(t)
	in := validInput()
	in.Status = "Lost"
	in.ProductCost = "-1"

	_, err := svc.Create(context.Background(), 1, in)

	require.Error(t, err)
	fields := errs.FieldErrors(err)
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "product_cost")

	cases := map[string]string{
		"10.555":             "must have at most 2 decimal places",
		"123456789012345678": "must be less than 1000000000000",
		"1e20":               "must be less than 1000000000000",
	}
	for raw, want := range cases {
		in := validInput()
		in.ProductCost = raw
		_, err := svc.Create(context.Background(), 1, in)
		require.Error(t, err, raw)
		assert.Equal(t, want, errs.FieldErrors(err)["product_cost"], raw)
	}

	in = validInput()
	in.ProductCost = "999999999999.990"
	_, err = svc.Create(context.Background(), 1, in)
	assert.NoError(t, err)
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	svc, _ := newTestEnquiryService(t)
	ctx := context.Background()
	follow := time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC)
	in := validInput()
	in.EnquiryNumber = "ENQ-0001"
	in.Address = strPtr(" 12 MG Road ")
	in.FollowUpDate = &follow
	in.FollowUp = true
	in.Status = "in progress"

	created, err := svc.Create(ctx, 7, in)
	require.NoError(t, err)

	got, err := svc.Get(ctx, 7, created.EnquiryID)
	require.NoError(t, err)

	assert.Equal(t, "ENQ-0001", got.EnquiryNumber)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, "Asha Rao", got.CustomerName)
	assert.Equal(t, "9876543210", got.MobileNumber)
	assert.Equal(t, "Solar Inverter", got.ProductName)
	assert.True(t, decimal.RequireFromString("45999.50").Equal(got.ProductCost))
	assert.Equal(t, "12 MG Road", *got.Address)
	assert.True(t, follow.Equal(*got.FollowUpDate))
	assert.True(t, got.FollowUp)
	assert.Equal(t, models.EnquiryStatusInProgress, got.Status)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestCreateGeneratesNumberAndDefaultsStatus(t *testing.T) {
	svc, _ := newTestEnquiryService(t)

	e, err := svc.Create(context.Background(), 1, validInput())

	require.NoError(t, err)
	assert.Regexp(t, `^ENQ-20240612-[0-9A-F]{8}$`, e.EnquiryNumber)
	assert.Equal(t, models.EnquiryStatusNew, e.Status)
}

func TestCreateDuplicateNumberConflicts(t *testing.T) {
	svc, _ := newTestEnquiryService(t)
	ctx := context.Background()
	in := validInput()
	in.EnquiryNumber = "ENQ-DUP"

	_, err := svc.Create(ctx, 1, in)
	require.NoError(t, err)

	// A different owner cannot reuse the number either.
	_, err = svc.Create(ctx, 2, in)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}

func TestCreatedNumbersAreUnique(t *testing.T) {
	svc, _ := newTestEnquiryService(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		e, err := svc.Create(ctx, uint(i%3+1), validInput())
		require.NoError(t, err)
		assert.False(t, seen[e.EnquiryNumber], "duplicate number %s", e.EnquiryNumber)
		seen[e.EnquiryNumber] = true
	}
}

func TestCreateRecordsSuccessNotification(t *testing.T) {
	svc, notifications := newTestEnquiryService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, 3, validInput())
	require.NoError(t, err)

	items, err := notifications.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.NotificationSuccess, items[0].Type)
	assert.Equal(t, "Enquiry "+e.EnquiryNumber+" created", items[0].Title)
	require.NotNil(t, items[0].RelatedEnquiryID)
	assert.Equal(t, e.EnquiryID, *items[0].RelatedEnquiryID)
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc, _ := newTestEnquiryService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, 1, validInput())
	require.NoError(t, err)

	_, err = svc.Get(ctx, 2, e.EnquiryID)
	assert.True(t, errs.IsForbidden(err))

	_, err = svc.Get(ctx, 1, e.EnquiryID+100)
	assert.True(t, errs.IsNotFound(err))
}

func TestListByOwnerSortedNewestFirstWithStatusFilter(t *testing.T) {
	svc, _ := newTestEnquiryService(t)
	ctx := context.Background()

	var ids []uint
	for i := 0; i < 4; i++ {
		in := validInput()
		if i%2 == 1 {
			in.Status = "Converted"
		}
		e, err := svc.Create(ctx, 5, in)
		require.NoError(t, err)
		ids = append(ids, e.EnquiryID)
	}
	_, err := svc.Create(ctx, 6, validInput())
	require.NoError(t, err)

	all, err := svc.ListByOwner(ctx, 5, "")
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].CreatedAt.After(all[i].CreatedAt))
	}
	assert.Equal(t, ids[3], all[0].EnquiryID)

	converted, err := svc.ListByOwner(ctx, 5, "Converted")
	require.NoError(t, err)
	require.Len(t, converted, 2)
	assert.Equal(t, []uint{ids[3], ids[1]}, []uint{converted[0].EnquiryID, converted[1].EnquiryID})

	none, err := svc.ListByOwner(ctx, 99, "")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.ListByOwner(ctx, 5, "Archived")
	assert.True(t, errs.IsValidation(err))
}

func TestUpdateMergesPatchAndAdvancesUpdatedAt(t *testing.T) {
	svc, _ := newTestEnquiryService(t)
	ctx := context.Background()
	in := validInput()
	in.Remarks = strPtr("call after 5pm")

	e, err := svc.Create(ctx, 1, in)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, 1, e.EnquiryID, EnquiryPatch{
		Status:      strPtr("In Progress"),
		ProductCost: strPtr("41000"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.EnquiryStatusInProgress, updated.Status)
	assert.True(t, decimal.NewFromInt(41000).Equal(updated.ProductCost))
	assert.Equal(t, e.CustomerName, updated.CustomerName)
	assert.Equal(t, e.MobileNumber, updated.MobileNumber)
	assert.Equal(t, e.ProductName, updated.ProductName)
	assert.Equal(t, "call after 5pm", *updated.Remarks)
	assert.Equal(t, e.EnquiryNumber, updated.EnquiryNumber)
	assert.Equal(t, e.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(e.UpdatedAt))

	got, err := svc.Get(ctx, 1, e.EnquiryID)
	require.NoError(t, err)
	assert.Equal(t, updated.UpdatedAt, got.UpdatedAt)
	assert.Equal(t, "call after 5pm", *got.Remarks)
}

func TestUpdateAdvancesUpdatedAtWithFrozenClock(t *testing.T) {
	svc, _ := newTestEnquiryService(t)
	ctx := context.Background()
	frozen := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }

	e, err := svc.Create(ctx, 1, validInput())
	require.NoError(t, err)

	first, err := svc.Update(ctx, 1, e.EnquiryID, EnquiryPatch{})
	require.NoError(t, err)
	second, err := svc.Update(ctx, 1, e.EnquiryID, EnquiryPatch{})
	require.NoError(t, err)

	assert.True(t, first.UpdatedAt.After(e.UpdatedAt))
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestUpdatedAtIsMillisecondAligned(t *testing.T) {
	svc, _ := newTestEnquiryService(t)
	ctx := context.Background()
	frozen := time.Date(2024, 6, 12, 9, 0, 0, 400_600, time.UTC)
	svc.now = func() time.Time { return frozen }

	e, err := svc.Create(ctx, 1, validInput())
	require.NoError(t, err)
	assert.Equal(t, frozen.Truncate(time.Millisecond), e.CreatedAt)

	prev := e.UpdatedAt
	for i := 0; i < 3; i++ {
		got, err := svc.Update(ctx, 1, e.EnquiryID, EnquiryPatch{})
		require.NoError(t, err)
		assert.True(t, got.UpdatedAt.After(prev))
		assert.Zero(t, got.UpdatedAt.Nanosecond()%int(time.Millisecond))
		assert.Equal(t, prev.Add(time.Millisecond), got.UpdatedAt)
		prev = got.UpdatedAt
	}
}

func TestUpdateValidatesAndChecksOwnership(t *testing.T) {
	svc, _ := newTestEnquiryService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, 1, validInput())
	require.NoError(t, err)

	_, err = svc.Update(ctx, 1, e.EnquiryID, EnquiryPatch{CustomerName: strPtr("")})
	assert.True(t, errs.IsValidation(err))

	for _, raw := range []string{"10.555", "123456789012345678", "1e20"} {
		_, err = svc.Update(ctx, 1, e.EnquiryID, EnquiryPatch{ProductCost: strPtr(raw)})
		require.Error(t, err, raw)
		assert.True(t, errs.IsValidation(err), raw)
		assert.Contains(t, errs.FieldErrors(err), "product_cost", raw)
	}

	_, err = svc.Update(ctx, 2, e.EnquiryID, EnquiryPatch{CustomerName: strPtr("Other")})
	assert.True(t, errs.IsForbidden(err))

	_, err = svc.Update(ctx, 1, 404, EnquiryPatch{})
	assert.True(t, errs.IsNotFound(err))

	got, err := svc.Get(ctx, 1, e.EnquiryID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", got.CustomerName)
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	svc, _ := newTestEnquiryService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, 1, validInput())
	require.NoError(t, err)

	assert.True(t, errs.IsForbidden(svc.Delete(ctx, 2, e.EnquiryID)))
	require.NoError(t, svc.Delete(ctx, 1, e.EnquiryID))

	_, err = svc.Get(ctx, 1, e.EnquiryID)
	assert.True(t, errs.IsNotFound(err))
	assert.True(t, errs.IsNotFound(svc.Delete(ctx, 1, e.EnquiryID)))
}

func TestDueFollowUps(t *testing.T) {
	svc, _ := newTestEnquiryService(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

	mk := func(owner uint, follow time.Time, flag bool, status string) uint {
		in := validInput()
		in.FollowUpDate = &follow
		in.FollowUp = flag
		in.Status = status
		e, err := svc.Create(ctx, owner, in)
		require.NoError(t, err)
		return e.EnquiryID
	}

	overdue := mk(1, now.AddDate(0, 0, -2), true, "New")
	laterToday := mk(1, time.Date(2024, 6, 12, 22, 0, 0, 0, time.UTC), true, "In Progress")
	mk(1, now.AddDate(0, 0, 1), true, "New")        // tomorrow
	mk(1, now.AddDate(0, 0, -1), false, "New")      // flag off
	mk(1, now.AddDate(0, 0, -1), true, "Converted") // closed out
	mk(2, now.AddDate(0, 0, -1), true, "New")       // someone else's

	due, err := svc.DueFollowUps(ctx, 1, now)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, overdue, due[0].EnquiryID)
	assert.Equal(t, laterToday, due[1].EnquiryID)
}

func TestCreateRejectsMalformedMobile(t *testing.T) {
	svc, _ := newTestEnquiryService(t)
	in := validInput()
	in.MobileNumber = "98-76ab"

	_, err := svc.Create(context.Background(), 1, in)
	assert.Equal(t, "must be a valid mobile number", errs.FieldErrors(err)["mobile_number"])
}
