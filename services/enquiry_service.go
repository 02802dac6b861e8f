package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"crm-api/errs"
	"crm-api/metrics"
	"crm-api/models"
	"crm-api/store"
	"crm-api/utils"
)

// EnquiryInput carries the fields of a new enquiry.
type EnquiryInput struct {
	EnquiryNumber   string     `json:"enquiry_number"`
	CustomerName    string     `json:"customer_name"`
	MobileNumber    string     `json:"mobile_number" binding:"omitempty,mobile"`
	AlternateMobile *string    `json:"alternate_mobile" binding:"omitempty,mobile"`
	Address         *string    `json:"address"`
	ProductName     string     `json:"product_name"`
	ProductCost     string     `json:"product_cost"`
	PaymentMethod   *string    `json:"payment_method"`
	Remarks         *string    `json:"remarks"`
	FollowUpDate    *time.Time `json:"follow_up_date"`
	FollowUp        bool       `json:"follow_up"`
	LeadSourceID    *uint      `json:"lead_source_id"`
	Status          string     `json:"status"`
}

// EnquiryPatch lists the mutable fields of an enquiry. A nil field is left unchanged.
type EnquiryPatch struct {
	CustomerName    *string    `json:"customer_name"`
	MobileNumber    *string    `json:"mobile_number" binding:"omitempty,mobile"`
	AlternateMobile *string    `json:"alternate_mobile" binding:"omitempty,mobile"`
	Address         *string    `json:"address"`
	ProductName     *string    `json:"product_name"`
	ProductCost     *string    `json:"product_cost"`
	PaymentMethod   *string    `json:"payment_method"`
	Remarks         *string    `json:"remarks"`
	FollowUpDate    *time.Time `json:"follow_up_date"`
	FollowUp        *bool      `json:"follow_up"`
	LeadSourceID    *uint      `json:"lead_source_id"`
	Status          *string    `json:"status"`
}

type EnquiryService struct {
	store         store.EnquiryStore
	notifications *NotificationService
	logger        *zap.Logger
	now           func() time.Time
}

// NewEnquiryService wires the enquiry store. notifications may be nil, in which case no
// notification is recorded on creation.
func NewEnquiryService(st store.EnquiryStore, notifications *NotificationService, logger *zap.Logger) *EnquiryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnquiryService{store: st, notifications: notifications, logger: logger, now: time.Now}
}

func (s *EnquiryService) Create(ctx context.Context, ownerID uint, in EnquiryInput) (e *models.Enquiry, err error) {
	defer func() { metrics.EnquiryOperations.WithLabelValues("create", metrics.Outcome(err)).Inc() }()

	ve := &errs.ValidationError{}
	customer := requireText(ve, "customer_name", in.CustomerName)
	mobile := requireMobile(ve, "mobile_number", in.MobileNumber)
	product := requireText(ve, "product_name", in.ProductName)
	cost := parseCost(ve, in.ProductCost)
	status := models.EnquiryStatusNew
	if strings.TrimSpace(in.Status) != "" {
		status = parseStatus(ve, in.Status)
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	now := s.now().Truncate(time.Millisecond)
	number := utils.SanitizeInput(in.EnquiryNumber)
	if number == "" {
		number = utils.NewEnquiryNumber(now)
	}
	exists, err := s.store.NumberExists(ctx, number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewConflict("enquiry number %s already exists", number)
	}

	e = &models.Enquiry{
		EnquiryNumber:   number,
		UserID:          ownerID,
		CustomerName:    customer,
		MobileNumber:    mobile,
		AlternateMobile: utils.SanitizePtr(in.AlternateMobile),
		Address:         utils.SanitizePtr(in.Address),
		ProductName:     product,
		ProductCost:     cost,
		PaymentMethod:   utils.SanitizePtr(in.PaymentMethod),
		Remarks:         utils.SanitizePtr(in.Remarks),
		FollowUpDate:    in.FollowUpDate,
		FollowUp:        in.FollowUp,
		LeadSourceID:    in.LeadSourceID,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Create(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("enquiry created",
		zap.Uint("enquiry_id", e.EnquiryID),
		zap.String("enquiry_number", e.EnquiryNumber),
		zap.Uint("user_id", ownerID))
	s.notifyCreated(ctx, e)
	return e, nil
}

// Get returns the enquiry when ownerID owns it.
func (s *EnquiryService) Get(ctx context.Context, ownerID, id uint) (*models.Enquiry, error) {
	e, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.UserID != ownerID {
		s.logger.Warn("enquiry access denied", zap.Uint("enquiry_id", id), zap.Uint("user_id", ownerID))
		return nil, errs.NewForbidden("you do not have access to this enquiry")
	}
	return e, nil
}

// ListByOwner returns the owner's enquiries newest first, optionally filtered by status.
func (s *EnquiryService) ListByOwner(ctx context.Context, ownerID uint, status string) ([]models.Enquiry, error) {
	var filter models.EnquiryStatus
	if strings.TrimSpace(status) != "" {
		ve := &errs.ValidationError{}
		filter = parseStatus(ve, status)
		if err := ve.OrNil(); err != nil {
			return nil, err
		}
	}
	return s.store.ListByOwner(ctx, ownerID, filter)
}

func (s *EnquiryService) Update(ctx context.Context, ownerID, id uint, patch EnquiryPatch) (e *models.Enquiry, err error) {
	defer func() { metrics.EnquiryOperations.WithLabelValues("update", metrics.Outcome(err)).Inc() }()

	current, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	if err := applyPatch(&updated, patch); err != nil {
		return nil, err
	}
	updated.UpdatedAt = s.advance(current.UpdatedAt)

	if err := s.store.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *EnquiryService) Delete(ctx context.Context, ownerID, id uint) (err error) {
	defer func() { metrics.EnquiryOperations.WithLabelValues("delete", metrics.Outcome(err)).Inc() }()

	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("enquiry deleted", zap.Uint("enquiry_id", id), zap.Uint("user_id", ownerID))
	return nil
}

// DueFollowUps lists the owner's open enquiries whose follow-up date falls on or before
// the end of now's day.
func (s *EnquiryService) DueFollowUps(ctx context.Context, ownerID uint, now time.Time) ([]models.Enquiry, error) {
	return s.store.ListFollowUps(ctx, store.FollowUpQuery{
		OwnerID:  ownerID,
		Before:   startOfDay(now, now.Location()).AddDate(0, 0, 1),
		OnlyOpen: true,
	})
}

// advance returns the current time, or one millisecond past prev when the clock has not
// moved beyond it. Results are whole milliseconds so they survive the datetime(3) column.
func (s *EnquiryService) advance(prev time.Time) time.Time {
	now := s.now().Truncate(time.Millisecond)
	if !now.After(prev) {
		now = prev.Truncate(time.Millisecond).Add(time.Millisecond)
	}
	return now
}

func (s *EnquiryService) notifyCreated(ctx context.Context, e *models.Enquiry) {
	if s.notifications == nil {
		return
	}
	id := e.EnquiryID
	title := fmt.Sprintf("Enquiry %s created", e.EnquiryNumber)
	subtitle := fmt.Sprintf("%s · %s", e.CustomerName, e.ProductName)
	if _, err := s.notifications.Push(persistentContext(ctx), e.UserID, models.NotificationSuccess, title, subtitle, &id); err != nil {
		s.logger.Warn("failed to record enquiry notification",
			zap.Uint("enquiry_id", e.EnquiryID), zap.Error(err))
	}
}

func applyPatch(e *models.Enquiry, p EnquiryPatch) error {
	ve := &errs.ValidationError{}
	if p.CustomerName != nil {
		e.CustomerName = requireText(ve, "customer_name", *p.CustomerName)
	}
	if p.MobileNumber != nil {
		e.MobileNumber = requireMobile(ve, "mobile_number", *p.MobileNumber)
	}
	if p.ProductName != nil {
		e.ProductName = requireText(ve, "product_name", *p.ProductName)
	}
	if p.ProductCost != nil {
		e.ProductCost = parseCost(ve, *p.ProductCost)
	}
	if p.Status != nil {
		e.Status = parseStatus(ve, *p.Status)
	}
	if p.AlternateMobile != nil {
		e.AlternateMobile = utils.SanitizePtr(p.AlternateMobile)
	}
	if p.Address != nil {
		e.Address = utils.SanitizePtr(p.Address)
	}
	if p.PaymentMethod != nil {
		e.PaymentMethod = utils.SanitizePtr(p.PaymentMethod)
	}
	if p.Remarks != nil {
		e.Remarks = utils.SanitizePtr(p.Remarks)
	}
	if p.FollowUpDate != nil {
		d := *p.FollowUpDate
		e.FollowUpDate = &d
	}
	if p.FollowUp != nil {
		e.FollowUp = *p.FollowUp
	}
	if p.LeadSourceID != nil {
		id := *p.LeadSourceID
		e.LeadSourceID = &id
	}
	return ve.OrNil()
}

func requireText(ve *errs.ValidationError, field, value string) string {
	v := utils.SanitizeInput(value)
	if v == "" {
		ve.Add(field, "is required")
	}
	return v
}

func requireMobile(ve *errs.ValidationError, field, value string) string {
	v := requireText(ve, field, value)
	if v != "" && !utils.ValidateMobile(v) {
		ve.Add(field, "must be a valid mobile number")
	}
	return v
}

// maxProductCost is the first value that no longer fits the decimal(14,2) column.
var maxProductCost = decimal.New(1, 12)

func parseCost(ve *errs.ValidationError, raw string) decimal.Decimal {
	raw = utils.SanitizeInput(raw)
	if raw == "" {
		ve.Add("product_cost", "is required")
		return decimal.Zero
	}
	cost, err := decimal.NewFromString(raw)
	if err != nil {
		ve.Add("product_cost", "must be a decimal number")
		return decimal.Zero
	}
	switch {
	case cost.IsNegative():
		ve.Add("product_cost", "must not be negative")
	case !cost.Equal(cost.Truncate(2)):
		ve.Add("product_cost", "must have at most 2 decimal places")
	case cost.GreaterThanOrEqual(maxProductCost):
		ve.Add("product_cost", "must be less than "+maxProductCost.String())
	}
	return cost
}

func parseStatus(ve *errs.ValidationError, raw string) models.EnquiryStatus {
	raw = utils.SanitizeInput(raw)
	for _, st := range models.EnquiryStatuses() {
		if strings.EqualFold(raw, string(st)) {
			return st
		}
	}
	ve.Add("status", "must be one of New, In Progress, Converted, Closed")
	return ""
}
