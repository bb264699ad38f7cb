package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/beauty-scheduler/internal/dto"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httperr"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

var (
	ErrNotFound     = httperr.ErrBusiness("appointment_not_found")
	ErrUserNotFound = httperr.ErrBusiness("user_not_found")
)

// ListFilter narrows a master's appointment list. Window is "upcoming",
// "past" or empty, evaluated against Now.
type ListFilter struct {
	Type   string
	Status string
	Window string
	Now    time.Time
}

type Repository interface {
	// -------- Users --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentView(
		ctx context.Context,
		id uint,
	) (*dto.AppointmentView, error)

	ListForMaster(
		ctx context.Context,
		masterID uint,
		filter ListFilter,
	) ([]dto.AppointmentView, error)

	ListForSalon(
		ctx context.Context,
		salonID uint,
	) ([]dto.AppointmentView, error)

	// -------- Appointment (write) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		columns []string,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error
}
