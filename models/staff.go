package models

import "time"

// Staff is a team member recorded by a user. Only that user may manage the record.
type Staff struct {
	StaffID   uint       `gorm:"primaryKey;column:staff_id" json:"staff_id"`
	UserID    uint       `gorm:"column:user_id;index" json:"user_id"`
	CompanyID *uint      `gorm:"column:company_id" json:"company_id,omitempty"`
	Name      string     `gorm:"column:name;size:120" json:"name"`
	Email     *string    `gorm:"column:email;size:191" json:"email,omitempty"`
	Mobile    string     `gorm:"column:mobile;size:20" json:"mobile"`
	Role      *string    `gorm:"column:role;size:64" json:"role,omitempty"`
	CreateAt  time.Time  `gorm:"column:create_at;autoCreateTime:false" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at;autoUpdateTime:false" json:"update_at"`

	Company *Company `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company,omitempty"`
}

func (Staff) TableName() string { return "staff" }
