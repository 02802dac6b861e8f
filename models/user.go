package models

import (
	"time"
)

type User struct {
	UserID   uint       `gorm:"primaryKey;column:user_id" json:"user_id"`
	Name     string     `gorm:"column:name;size:120" json:"name"`
	Email    string     `gorm:"column:email;size:191;unique" json:"email"`
	Password string     `gorm:"column:password" json:"-"`
	Mobile   *string    `gorm:"column:mobile;size:20" json:"mobile,omitempty"`
	IsActive bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreateAt time.Time  `gorm:"column:create_at;autoCreateTime:false" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at;autoUpdateTime:false" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}
