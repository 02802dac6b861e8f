package models

import "time"

type NotificationType string

const (
	NotificationSuccess  NotificationType = "success"
	NotificationReminder NotificationType = "reminder"
	NotificationError    NotificationType = "error"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationSuccess, NotificationReminder, NotificationError:
		return true
	}
	return false
}

type Notification struct {
	NotificationID   uint             `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	UserID           uint             `gorm:"column:user_id;index" json:"user_id"`
	Type             NotificationType `gorm:"column:type;size:16" json:"type"` // success|reminder|error
	Title            string           `gorm:"column:title;size:191" json:"title"`
	Subtitle         string           `gorm:"column:subtitle;type:text" json:"subtitle"`
	RelatedEnquiryID *uint            `gorm:"column:related_enquiry_id" json:"related_enquiry_id,omitempty"`
	IsRead           bool             `gorm:"column:is_read" json:"is_read"`
	CreateAt         time.Time        `gorm:"column:create_at;autoCreateTime:false;<-:create" json:"created_at"`
	UpdateAt         *time.Time       `gorm:"column:update_at;autoUpdateTime:false" json:"-"`
}

func (Notification) TableName() string { return "notifications" }
