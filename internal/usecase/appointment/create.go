package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/beauty-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httperr"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	MasterID uint
	ClientID *uint
	SalonID  *uint

	ClientName  string
	ClientPhone string
	Service     string

	AppointmentTime time.Time
	Duration        int
	Comment         *string
	Type            string

	// Empty means the default reminder set.
	ReminderMinutes []int
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Required fields
	// --------------------------------------------------
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
	in.Service = strings.TrimSpace(in.Service)

	if in.ClientName == "" || in.ClientPhone == "" || in.Service == "" || in.AppointmentTime.IsZero() {
		return nil, httperr.ErrBusiness("missing_required_fields")
	}

	// --------------------------------------------------
	// 2️⃣ Defaults
	// --------------------------------------------------
	if in.Type == "" {
		in.Type = domain.TypePersonal
	}
	if !domain.ValidType(in.Type) {
		return nil, httperr.ErrBusiness("invalid_type")
	}

	if in.Duration <= 0 {
		in.Duration = domain.DefaultDuration
	}

	if err := domain.ValidateReminderMinutes(in.ReminderMinutes); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Persist
	// --------------------------------------------------
	ap := &models.Appointment{
		MasterID:        in.MasterID,
		ClientID:        in.ClientID,
		SalonID:         in.SalonID,
		ClientName:      in.ClientName,
		ClientPhone:     in.ClientPhone,
		Service:         in.Service,
		AppointmentTime: in.AppointmentTime,
		Duration:        in.Duration,
		Comment:         in.Comment,
		Type:            in.Type,
		Status:          string(domain.InitialStatus()),
		ReminderMinutes: domain.ReminderColumn(in.ReminderMinutes),
		RemindersSent:   models.IntList(nil),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.MasterID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
