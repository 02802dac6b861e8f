package store

import (
	"context"

	"gorm.io/gorm"

	"crm-api/errs"
	"crm-api/models"
)

type GormEnquiryStore struct {
	db *gorm.DB
}

func NewGormEnquiryStore(db *gorm.DB) *GormEnquiryStore {
	return &GormEnquiryStore{db: db}
}

func (s *GormEnquiryStore) Create(ctx context.Context, e *models.Enquiry) error {
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		if isDuplicateKey(err) {
			return errs.NewConflict("enquiry number %s already exists", e.EnquiryNumber)
		}
		return errs.NewStorage("insert enquiry", err)
	}
	return nil
}

func (s *GormEnquiryStore) FindByID(ctx context.Context, id uint) (*models.Enquiry, error) {
	var e models.Enquiry
	if err := s.db.WithContext(ctx).Where("enquiry_id = ?", id).First(&e).Error; err != nil {
		return nil, Translate("enquiry", err)
	}
	return &e, nil
}

func (s *GormEnquiryStore) NumberExists(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Enquiry{}).
		Where("enquiry_number = ?", number).
		Count(&count).Error; err != nil {
		return false, errs.NewStorage("count enquiry number", err)
	}
	return count > 0, nil
}

func (s *GormEnquiryStore) ListByOwner(ctx context.Context, ownerID uint, status models.EnquiryStatus) ([]models.Enquiry, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	items := make([]models.Enquiry, 0)
	if err := q.Order("create_at DESC, enquiry_id DESC").Find(&items).Error; err != nil {
		return nil, errs.NewStorage("list enquiries", err)
	}
	return items, nil
}

func (s *GormEnquiryStore) ListFollowUps(ctx context.Context, fq FollowUpQuery) ([]models.Enquiry, error) {
	q := s.db.WithContext(ctx).
		Where("follow_up = ? AND follow_up_date IS NOT NULL", true)
	if fq.OwnerID != 0 {
		q = q.Where("user_id = ?", fq.OwnerID)
	}
	if !fq.From.IsZero() {
		q = q.Where("follow_up_date >= ?", fq.From)
	}
	if !fq.Before.IsZero() {
		q = q.Where("follow_up_date < ?", fq.Before)
	}
	if fq.OnlyOpen {
		q = q.Where("status IN ?", []models.EnquiryStatus{models.EnquiryStatusNew, models.EnquiryStatusInProgress})
	}

	items := make([]models.Enquiry, 0)
	if err := q.Order("follow_up_date ASC, enquiry_id ASC").Find(&items).Error; err != nil {
		return nil, errs.NewStorage("list follow-ups", err)
	}
	return items, nil
}

func (s *GormEnquiryStore) Update(ctx context.Context, e *models.Enquiry) error {
	res := s.db.WithContext(ctx).Model(&models.Enquiry{}).
		Where("enquiry_id = ?", e.EnquiryID).
		Updates(map[string]interface{}{
			"customer_name":    e.CustomerName,
			"mobile_number":    e.MobileNumber,
			"alternate_mobile": e.AlternateMobile,
			"address":          e.Address,
			"product_name":     e.ProductName,
			"product_cost":     e.ProductCost,
			"payment_method":   e.PaymentMethod,
			"remarks":          e.Remarks,
			"follow_up_date":   e.FollowUpDate,
			"follow_up":        e.FollowUp,
			"lead_source_id":   e.LeadSourceID,
			"status":           e.Status,
			"update_at":        e.UpdatedAt,
		})
	if res.Error != nil {
		return errs.NewStorage("update enquiry", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("enquiry %d", e.EnquiryID)
	}
	return nil
}

func (s *GormEnquiryStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Where("enquiry_id = ?", id).Delete(&models.Enquiry{})
	if res.Error != nil {
		return errs.NewStorage("delete enquiry", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("enquiry %d", id)
	}
	return nil
}
