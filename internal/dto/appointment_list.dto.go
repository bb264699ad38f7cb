package dto

import (
	"time"

	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

// AppointmentView is an appointment with the display names of the users
// it references.
type AppointmentView struct {
	models.Appointment
	ClientUserName *string `json:"client_user_name"`
	MasterName     *string `json:"master_name"`
}

// NotificationView is a notification with the appointment it points at.
type NotificationView struct {
	models.Notification
	AppointmentTime    *time.Time `json:"appointment_time"`
	AppointmentService *string    `json:"appointment_service"`
}
