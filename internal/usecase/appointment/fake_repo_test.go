package appointment

import (
	"context"
	"sort"

	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/beauty-scheduler/internal/dto"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

type fakeRepo struct {
	users        map[uint]*models.User
	appointments map[uint]*models.Appointment
	nextID       uint
	lastColumns  []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:        map[uint]*models.User{},
		appointments: map[uint]*models.Appointment{},
	}
}

func (r *fakeRepo) GetUser(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ap
	return &cp, nil
}

func (r *fakeRepo) GetAppointmentView(ctx context.Context, id uint) (*dto.AppointmentView, error) {
	ap, err := r.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.AppointmentView{Appointment: *ap}, nil
}

func (r *fakeRepo) ListForMaster(_ context.Context, masterID uint, f domain.ListFilter) ([]dto.AppointmentView, error) {
	var out []dto.AppointmentView
	for _, ap := range r.appointments {
		if ap.MasterID != masterID {
			continue
		}
		if f.Type != "" && ap.Type != f.Type {
			continue
		}
		if f.Status != "" && ap.Status != f.Status {
			continue
		}
		if f.Window == "upcoming" && ap.AppointmentTime.Before(f.Now) {
			continue
		}
		if f.Window == "past" && !ap.AppointmentTime.Before(f.Now) {
			continue
		}
		out = append(out, dto.AppointmentView{Appointment: *ap})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AppointmentTime.After(out[j].AppointmentTime)
	})
	return out, nil
}

func (r *fakeRepo) ListForSalon(_ context.Context, salonID uint) ([]dto.AppointmentView, error) {
	var out []dto.AppointmentView
	for _, ap := range r.appointments {
		if ap.SalonID != nil && *ap.SalonID == salonID {
			out = append(out, dto.AppointmentView{Appointment: *ap})
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.nextID++
	ap.ID = r.nextID
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment, columns []string) error {
	r.lastColumns = columns
	stored := r.appointments[ap.ID]
	sent := stored.RemindersSent
	*stored = *ap
	for _, c := range columns {
		if c == "reminders_sent" {
			return nil
		}
	}
	stored.RemindersSent = sent
	return nil
}

func (r *fakeRepo) DeleteAppointment(_ context.Context, id uint) error {
	delete(r.appointments, id)
	return nil
}
