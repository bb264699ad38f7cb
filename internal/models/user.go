package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Username     string `gorm:"size:20;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	City         string `gorm:"size:100" json:"city"`

	IsMaster     bool `gorm:"default:false" json:"is_master"`
	IsSalonOwner bool `gorm:"default:false" json:"is_salon_owner"`
	IsAdmin      bool `gorm:"default:false" json:"is_admin"`
	IsBlocked    bool `gorm:"default:false" json:"is_blocked"`

	// Services offered by a master; a non-empty list makes the user a master.
	Services JSONList `gorm:"type:jsonb;default:'[]'" json:"services"`

	SubscribedSalonID *uint      `gorm:"index" json:"subscribed_salon_id"`
	LastLogin         *time.Time `json:"last_login"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
