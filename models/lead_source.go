package models

import "time"

// LeadSource is where an enquiry came from (walk-in, referral, ad campaign...).
type LeadSource struct {
	LeadSourceID uint       `gorm:"primaryKey;column:lead_source_id" json:"lead_source_id"`
	Name         string     `gorm:"column:name;size:120;uniqueIndex" json:"name"`
	Description  *string    `gorm:"column:description;type:text" json:"description,omitempty"`
	IsActive     bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt     time.Time  `gorm:"column:create_at;autoCreateTime:false" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at;autoUpdateTime:false" json:"update_at"`
}

func (LeadSource) TableName() string { return "lead_sources" }
