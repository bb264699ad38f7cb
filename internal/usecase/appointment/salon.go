package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/beauty-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/beauty-scheduler/internal/dto"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httperr"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

func requireSalonOwner(ctx context.Context, repo domain.Repository, userID uint) error {
	owner, err := repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !owner.IsSalonOwner {
		return httperr.ErrBusiness("forbidden")
	}
	return nil
}

// ======================================================
// LIST
// ======================================================

type ListSalonAppointments struct {
	repo domain.Repository
}

func NewListSalonAppointments(repo domain.Repository) *ListSalonAppointments {
	return &ListSalonAppointments{repo: repo}
}

func (uc *ListSalonAppointments) Execute(
	ctx context.Context,
	ownerID uint,
) ([]dto.AppointmentView, error) {

	if err := requireSalonOwner(ctx, uc.repo, ownerID); err != nil {
		return nil, err
	}
	return uc.repo.ListForSalon(ctx, ownerID)
}

// ======================================================
// CREATE FOR CLIENT
// ======================================================

type SalonClientAppointmentInput struct {
	OwnerID         uint
	ClientID        uint
	MasterID        uint
	Service         string
	AppointmentTime time.Time
	Duration        int
	Comment         *string
}

type CreateSalonClientAppointment struct {
	repo   domain.Repository
	create *CreateAppointment
}

func NewCreateSalonClientAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateSalonClientAppointment {
	return &CreateSalonClientAppointment{
		repo:   repo,
		create: NewCreateAppointment(repo, audit),
	}
}

// Execute books clientID with masterID on behalf of the salon. Client
// name and phone are copied from the client's profile.
func (uc *CreateSalonClientAppointment) Execute(
	ctx context.Context,
	in SalonClientAppointmentInput,
) (*models.Appointment, error) {

	if err := requireSalonOwner(ctx, uc.repo, in.OwnerID); err != nil {
		return nil, err
	}

	if in.ClientID == 0 || in.MasterID == 0 {
		return nil, httperr.ErrBusiness("missing_required_fields")
	}

	client, err := uc.repo.GetUser(ctx, in.ClientID)
	if err != nil {
		if httperr.IsBusiness(err, "user_not_found") {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		return nil, err
	}

	clientID, salonID := client.ID, in.OwnerID
	return uc.create.Execute(ctx, CreateAppointmentInput{
		MasterID:        in.MasterID,
		ClientID:        &clientID,
		SalonID:         &salonID,
		ClientName:      client.Name,
		ClientPhone:     client.Phone,
		Service:         in.Service,
		AppointmentTime: in.AppointmentTime,
		Duration:        in.Duration,
		Comment:         in.Comment,
		Type:            domain.TypeSalon,
	})
}
