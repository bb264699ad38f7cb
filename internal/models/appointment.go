package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MasterID uint `gorm:"index;not null" json:"master_id"`
	Master   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ClientID *uint `gorm:"index" json:"client_id"`
	SalonID  *uint `gorm:"index" json:"salon_id"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20;not null" json:"client_phone"`

	Service         string    `gorm:"size:255;not null" json:"service"`
	AppointmentTime time.Time `gorm:"index;not null" json:"appointment_time"`
	Duration        int       `gorm:"default:60" json:"duration"`
	Comment         *string   `gorm:"type:text" json:"comment"`
	Type            string    `gorm:"size:20;default:'personal'" json:"type"`
	Status          string    `gorm:"size:20;default:'upcoming';index" json:"status"`

	// Minutes before AppointmentTime; [-1] selects the default reminder set.
	ReminderMinutes JSONList `gorm:"type:jsonb;default:'[-1]'" json:"reminder_minutes"`
	// Offsets already delivered. Written only by the reminder dispatcher.
	RemindersSent JSONList `gorm:"type:jsonb;default:'[]'" json:"reminders_sent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
