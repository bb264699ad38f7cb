package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/beauty-scheduler/internal/dto"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httperr"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

// Execute returns the appointment if userID is its master or its client.
func (uc *GetAppointment) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*dto.AppointmentView, error) {

	view, err := uc.repo.GetAppointmentView(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if !domain.CanView(&view.Appointment, userID) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	return view, nil
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	masterID uint,
	typ string,
	status string,
	window string,
	now time.Time,
) ([]dto.AppointmentView, error) {

	if window != "" && window != "upcoming" && window != "past" {
		return nil, httperr.ErrBusiness("invalid_filter")
	}
	if status != "" {
		if err := domain.CheckStatus(status); err != nil {
			return nil, err
		}
	}

	return uc.repo.ListForMaster(ctx, masterID, domain.ListFilter{
		Type:   typ,
		Status: status,
		Window: window,
		Now:    now,
	})
}
