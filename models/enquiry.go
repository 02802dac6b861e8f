package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EnquiryStatus string

const (
	EnquiryStatusNew        EnquiryStatus = "New"
	EnquiryStatusInProgress EnquiryStatus = "In Progress"
	EnquiryStatusConverted  EnquiryStatus = "Converted"
	EnquiryStatusClosed     EnquiryStatus = "Closed"
)

// EnquiryStatuses lists the accepted statuses in lifecycle order.
func EnquiryStatuses() []EnquiryStatus {
	return []EnquiryStatus{
		EnquiryStatusNew,
		EnquiryStatusInProgress,
		EnquiryStatusConverted,
		EnquiryStatusClosed,
	}
}

func (s EnquiryStatus) Valid() bool {
	for _, v := range EnquiryStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

// Open reports whether the enquiry still needs follow-up work.
func (s EnquiryStatus) Open() bool {
	return s == EnquiryStatusNew || s == EnquiryStatusInProgress
}

// Enquiry is one customer sales inquiry, owned by the user who recorded it.
type Enquiry struct {
	EnquiryID       uint            `gorm:"primaryKey;column:enquiry_id" json:"enquiry_id"`
	EnquiryNumber   string          `gorm:"column:enquiry_number;size:64;uniqueIndex" json:"enquiry_number"`
	UserID          uint            `gorm:"column:user_id;index" json:"user_id"`
	CustomerName    string          `gorm:"column:customer_name;size:191" json:"customer_name"`
	MobileNumber    string          `gorm:"column:mobile_number;size:20" json:"mobile_number"`
	AlternateMobile *string         `gorm:"column:alternate_mobile;size:20" json:"alternate_mobile,omitempty"`
	Address         *string         `gorm:"column:address;type:text" json:"address,omitempty"`
	ProductName     string          `gorm:"column:product_name;size:191" json:"product_name"`
	ProductCost     decimal.Decimal `gorm:"column:product_cost;type:decimal(14,2)" json:"product_cost"`
	PaymentMethod   *string         `gorm:"column:payment_method;size:64" json:"payment_method,omitempty"`
	Remarks         *string         `gorm:"column:remarks;type:text" json:"remarks,omitempty"`
	FollowUpDate    *time.Time      `gorm:"column:follow_up_date;index" json:"follow_up_date,omitempty"`
	FollowUp        bool            `gorm:"column:follow_up" json:"follow_up"`
	LeadSourceID    *uint           `gorm:"column:lead_source_id" json:"lead_source_id,omitempty"`
	Status          EnquiryStatus   `gorm:"column:status;size:32;index" json:"status"`
	CreatedAt       time.Time       `gorm:"column:create_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:update_at;autoUpdateTime:false" json:"updated_at"`
}

func (Enquiry) TableName() string { return "enquiries" }
