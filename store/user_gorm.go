package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"crm-api/errs"
	"crm-api/models"
)

type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) Create(ctx context.Context, u *models.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateKey(err) {
			return errs.NewConflict("email %s is already registered", u.Email)
		}
		return errs.NewStorage("insert user", err)
	}
	return nil
}

func (s *GormUserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND delete_at IS NULL", id).
		First(&u).Error; err != nil {
		return nil, Translate("user", err)
	}
	return &u, nil
}

func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).
		Where("email = ? AND delete_at IS NULL", email).
		First(&u).Error; err != nil {
		return nil, Translate("user", err)
	}
	return &u, nil
}

func (s *GormUserStore) UpdatePassword(ctx context.Context, id uint, hash string, at time.Time) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("user_id = ? AND delete_at IS NULL", id).
		Updates(map[string]interface{}{"password": hash, "update_at": at})
	if res.Error != nil {
		return errs.NewStorage("update password", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("user %d", id)
	}
	return nil
}
