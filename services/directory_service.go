package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"crm-api/config"
	"crm-api/errs"
	"crm-api/models"
	"crm-api/store"
	"crm-api/utils"
)

type CompanyInput struct {
	Name    *string `json:"name" binding:"omitempty,max=191"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,mobile"`
	Address *string `json:"address"`
	Website *string `json:"website" binding:"omitempty,url"`
}

type LeadSourceInput struct {
	Name        *string `json:"name" binding:"omitempty,max=120"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type StaffInput struct {
	Name      *string `json:"name" binding:"omitempty,max=120"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Mobile    *string `json:"mobile" binding:"omitempty,mobile"`
	Role      *string `json:"role" binding:"omitempty,max=64"`
	CompanyID *uint   `json:"company_id"`
}

// DirectoryService manages the reference records around enquiries: companies, lead
// sources and staff. Companies and lead sources are shared; staff rows belong to the
// user who created them.
type DirectoryService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDirectoryService(db *gorm.DB) *DirectoryService {
	if db == nil {
		db = config.DB
	}
	return &DirectoryService{db: db, now: time.Now}
}

func dbError(op string, err error) error {
	return store.Translate(op, err)
}

/* ==========================
   Companies
   ========================== */

func (s *DirectoryService) ListCompanies(ctx context.Context) ([]models.Company, error) {
	items := make([]models.Company, 0)
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, dbError("companies", err)
	}
	return items, nil
}

func (s *DirectoryService) GetCompany(ctx context.Context, id uint) (*models.Company, error) {
	var c models.Company
	if err := s.db.WithContext(ctx).Where("company_id = ?", id).First(&c).Error; err != nil {
		return nil, dbError("company", err)
	}
	return &c, nil
}

func (s *DirectoryService) CreateCompany(ctx context.Context, userID uint, in CompanyInput) (*models.Company, error) {
	name := ""
	if in.Name != nil {
		name = utils.SanitizeInput(*in.Name)
	}
	if name == "" {
		return nil, errs.NewValidation("name", "is required")
	}

	c := &models.Company{
		Name:      name,
		Email:     utils.SanitizePtr(in.Email),
		Phone:     utils.SanitizePtr(in.Phone),
		Address:   utils.SanitizePtr(in.Address),
		Website:   utils.SanitizePtr(in.Website),
		CreatedBy: userID,
		CreateAt:  s.now(),
	}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, dbError("company", err)
	}
	return c, nil
}

func (s *DirectoryService) UpdateCompany(ctx context.Context, id uint, in CompanyInput) (*models.Company, error) {
	c, err := s.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		name := utils.SanitizeInput(*in.Name)
		if name == "" {
			return nil, errs.NewValidation("name", "is required")
		}
		updates["name"] = name
	}
	if in.Email != nil {
		updates["email"] = utils.SanitizePtr(in.Email)
	}
	if in.Phone != nil {
		updates["phone"] = utils.SanitizePtr(in.Phone)
	}
	if in.Address != nil {
		updates["address"] = utils.SanitizePtr(in.Address)
	}
	if in.Website != nil {
		updates["website"] = utils.SanitizePtr(in.Website)
	}
	updates["update_at"] = s.now()

	if err := s.db.WithContext(ctx).Model(&models.Company{}).
		Where("company_id = ?", id).Updates(updates).Error; err != nil {
		return nil, dbError("company", err)
	}
	return s.GetCompany(ctx, c.CompanyID)
}

func (s *DirectoryService) DeleteCompany(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Where("company_id = ?", id).Delete(&models.Company{})
	if res.Error != nil {
		return dbError("company", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("company %d", id)
	}
	return nil
}

/* ==========================
   Lead sources
   ========================== */

func (s *DirectoryService) ListLeadSources(ctx context.Context, activeOnly bool) ([]models.LeadSource, error) {
	q := s.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	items := make([]models.LeadSource, 0)
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		return nil, dbError("lead sources", err)
	}
	return items, nil
}

func (s *DirectoryService) GetLeadSource(ctx context.Context, id uint) (*models.LeadSource, error) {
	var ls models.LeadSource
	if err := s.db.WithContext(ctx).Where("lead_source_id = ?", id).First(&ls).Error; err != nil {
		return nil, dbError("lead source", err)
	}
	return &ls, nil
}

func (s *DirectoryService) CreateLeadSource(ctx context.Context, in LeadSourceInput) (*models.LeadSource, error) {
	name := ""
	if in.Name != nil {
		name = utils.SanitizeInput(*in.Name)
	}
	if name == "" {
		return nil, errs.NewValidation("name", "is required")
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	ls := &models.LeadSource{
		Name:        name,
		Description: utils.SanitizePtr(in.Description),
		IsActive:    active,
		CreateAt:    s.now(),
	}
	if err := s.db.WithContext(ctx).Create(ls).Error; err != nil {
		return nil, dbError("lead source", err)
	}
	return ls, nil
}

func (s *DirectoryService) UpdateLeadSource(ctx context.Context, id uint, in LeadSourceInput) (*models.LeadSource, error) {
	if _, err := s.GetLeadSource(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"update_at": s.now()}
	if in.Name != nil {
		name := utils.SanitizeInput(*in.Name)
		if name == "" {
			return nil, errs.NewValidation("name", "is required")
		}
		updates["name"] = name
	}
	if in.Description != nil {
		updates["description"] = utils.SanitizePtr(in.Description)
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}

	if err := s.db.WithContext(ctx).Model(&models.LeadSource{}).
		Where("lead_source_id = ?", id).Updates(updates).Error; err != nil {
		return nil, dbError("lead source", err)
	}
	return s.GetLeadSource(ctx, id)
}

func (s *DirectoryService) DeleteLeadSource(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Where("lead_source_id = ?", id).Delete(&models.LeadSource{})
	if res.Error != nil {
		return dbError("lead source", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("lead source %d", id)
	}
	return nil
}

/* ==========================
   Staff
   ========================== */

func (s *DirectoryService) ListStaff(ctx context.Context, userID uint, companyID *uint) ([]models.Staff, error) {
	q := s.db.WithContext(ctx).Preload("Company").Where("user_id = ?", userID)
	if companyID != nil {
		q = q.Where("company_id = ?", *companyID)
	}
	items := make([]models.Staff, 0)
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		return nil, dbError("staff", err)
	}
	return items, nil
}

// GetStaff returns the staff row when userID created it.
func (s *DirectoryService) GetStaff(ctx context.Context, userID, id uint) (*models.Staff, error) {
	var st models.Staff
	if err := s.db.WithContext(ctx).Where("staff_id = ?", id).First(&st).Error; err != nil {
		return nil, dbError("staff", err)
	}
	if st.UserID != userID {
		return nil, errs.NewForbidden("you do not have access to this staff record")
	}
	return &st, nil
}

func (s *DirectoryService) CreateStaff(ctx context.Context, userID uint, in StaffInput) (*models.Staff, error) {
	ve := &errs.ValidationError{}
	name, mobile := "", ""
	if in.Name != nil {
		name = utils.SanitizeInput(*in.Name)
	}
	if in.Mobile != nil {
		mobile = utils.SanitizeInput(*in.Mobile)
	}
	if name == "" {
		ve.Add("name", "is required")
	}
	if mobile == "" {
		ve.Add("mobile", "is required")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	st := &models.Staff{
		UserID:    userID,
		CompanyID: in.CompanyID,
		Name:      name,
		Email:     utils.SanitizePtr(in.Email),
		Mobile:    mobile,
		Role:      utils.SanitizePtr(in.Role),
		CreateAt:  s.now(),
	}
	if err := s.db.WithContext(ctx).Omit("Company").Create(st).Error; err != nil {
		return nil, dbError("staff", err)
	}
	return st, nil
}

func (s *DirectoryService) UpdateStaff(ctx context.Context, userID, id uint, in StaffInput) (*models.Staff, error) {
	if _, err := s.GetStaff(ctx, userID, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"update_at": s.now()}
	if in.Name != nil {
		name := utils.SanitizeInput(*in.Name)
		if name == "" {
			return nil, errs.NewValidation("name", "is required")
		}
		updates["name"] = name
	}
	if in.Mobile != nil {
		mobile := utils.SanitizeInput(*in.Mobile)
		if mobile == "" {
			return nil, errs.NewValidation("mobile", "is required")
		}
		updates["mobile"] = mobile
	}
	if in.Email != nil {
		updates["email"] = utils.SanitizePtr(in.Email)
	}
	if in.Role != nil {
		updates["role"] = utils.SanitizePtr(in.Role)
	}
	if in.CompanyID != nil {
		updates["company_id"] = *in.CompanyID
	}

	if err := s.db.WithContext(ctx).Model(&models.Staff{}).
		Where("staff_id = ? AND user_id = ?", id, userID).Updates(updates).Error; err != nil {
		return nil, dbError("staff", err)
	}
	return s.GetStaff(ctx, userID, id)
}

func (s *DirectoryService) DeleteStaff(ctx context.Context, userID, id uint) error {
	if _, err := s.GetStaff(ctx, userID, id); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Where("staff_id = ? AND user_id = ?", id, userID).Delete(&models.Staff{})
	if res.Error != nil {
		return dbError("staff", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("staff %d", id)
	}
	return nil
}
