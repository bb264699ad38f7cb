package models

import "time"

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint   `gorm:"index;not null" json:"user_id"`
	Type   string `gorm:"size:50;not null" json:"type"`

	Title   string `gorm:"size:255;not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`

	AppointmentID *uint `gorm:"index" json:"appointment_id"`
	IsRead        bool  `gorm:"default:false;index" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
