package models

import "time"

type Company struct {
	CompanyID uint       `gorm:"primaryKey;column:company_id" json:"company_id"`
	Name      string     `gorm:"column:name;size:191" json:"name"`
	Email     *string    `gorm:"column:email;size:191" json:"email,omitempty"`
	Phone     *string    `gorm:"column:phone;size:20" json:"phone,omitempty"`
	Address   *string    `gorm:"column:address;type:text" json:"address,omitempty"`
	Website   *string    `gorm:"column:website;size:191" json:"website,omitempty"`
	CreatedBy uint       `gorm:"column:created_by" json:"created_by"`
	CreateAt  time.Time  `gorm:"column:create_at;autoCreateTime:false" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at;autoUpdateTime:false" json:"update_at"`
}

func (Company) TableName() string { return "companies" }
