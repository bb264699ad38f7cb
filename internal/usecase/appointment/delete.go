package appointment

import (
	"context"

	"github.com/BruksfildServices01/beauty-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httperr"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) error {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	if !domain.CanModify(ap, userID) {
		return httperr.ErrBusiness("forbidden")
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
		Metadata: map[string]any{"service": ap.Service, "appointment_time": ap.AppointmentTime},
	})

	return nil
}
