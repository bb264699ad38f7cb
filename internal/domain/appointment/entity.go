package appointment

import (
	"time"

	"github.com/BruksfildServices01/beauty-scheduler/internal/domain/reminder"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httperr"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

const DefaultDuration = 60

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	ClientName      *string
	ClientPhone     *string
	Service         *string
	AppointmentTime *time.Time
	Duration        *int
	Comment         **string
	ReminderMinutes []int
	Status          *string
}

// ===============================
// Domain Actions
// ===============================

// ValidateReminderMinutes accepts the default sentinel and offsets up to
// reminder.MaxOffsetMinutes. Zero and other non-positive values are stored
// but never fire.
func ValidateReminderMinutes(minutes []int) error {
	for _, m := range minutes {
		if m > reminder.MaxOffsetMinutes {
			return httperr.ErrBusiness("invalid_reminder_minutes")
		}
	}
	return nil
}

// ReminderColumn encodes configured offsets, falling back to the default
// sentinel when none are given.
func ReminderColumn(minutes []int) models.JSONList {
	if len(minutes) == 0 {
		minutes = []int{reminder.DefaultSentinel}
	}
	return models.IntList(minutes)
}

// Apply writes p onto ap and returns the columns that changed.
// reminders_sent is never among them.
func Apply(ap *models.Appointment, p Patch) ([]string, error) {
	var cols []string

	if p.ClientName != nil && *p.ClientName != "" {
		ap.ClientName = *p.ClientName
		cols = append(cols, "client_name")
	}
	if p.ClientPhone != nil && *p.ClientPhone != "" {
		ap.ClientPhone = *p.ClientPhone
		cols = append(cols, "client_phone")
	}
	if p.Service != nil && *p.Service != "" {
		ap.Service = *p.Service
		cols = append(cols, "service")
	}
	if p.AppointmentTime != nil && !p.AppointmentTime.IsZero() {
		ap.AppointmentTime = *p.AppointmentTime
		cols = append(cols, "appointment_time")
	}
	if p.Duration != nil && *p.Duration > 0 {
		ap.Duration = *p.Duration
		cols = append(cols, "duration")
	}
	if p.Comment != nil {
		ap.Comment = *p.Comment
		cols = append(cols, "comment")
	}
	if len(p.ReminderMinutes) > 0 {
		if err := ValidateReminderMinutes(p.ReminderMinutes); err != nil {
			return nil, err
		}
		ap.ReminderMinutes = models.IntList(p.ReminderMinutes)
		cols = append(cols, "reminder_minutes")
	}
	if p.Status != nil && *p.Status != "" {
		if err := CheckStatus(*p.Status); err != nil {
			return nil, err
		}
		ap.Status = *p.Status
		cols = append(cols, "status")
	}

	if len(cols) == 0 {
		return nil, httperr.ErrBusiness("nothing_to_update")
	}
	return cols, nil
}

func CanView(ap *models.Appointment, userID uint) bool {
	if ap.MasterID == userID {
		return true
	}
	return ap.ClientID != nil && *ap.ClientID == userID
}

func CanModify(ap *models.Appointment, userID uint) bool {
	return ap.MasterID == userID
}
