package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/beauty-scheduler/internal/dto"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)

const appointmentViewColumns = `a.*, c.name AS client_user_name, m.name AS master_name`

func (r *AppointmentGormRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("appointments AS a").
		Select(appointmentViewColumns).
		Joins("LEFT JOIN users c ON a.client_id = c.id").
		Joins("LEFT JOIN users m ON a.master_id = m.id")
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentView(
	ctx context.Context,
	id uint,
) (*dto.AppointmentView, error) {

	var views []dto.AppointmentView
	if err := r.viewQuery(ctx).
		Where("a.id = ?", id).
		Limit(1).
		Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrNotFound
	}
	return &views[0], nil
}

func (r *AppointmentGormRepository) ListForMaster(
	ctx context.Context,
	masterID uint,
	f domain.ListFilter,
) ([]dto.AppointmentView, error) {

	q := r.viewQuery(ctx).Where("a.master_id = ?", masterID)

	if f.Type != "" {
		q = q.Where("a.type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("a.status = ?", f.Status)
	}
	switch f.Window {
	case "upcoming":
		q = q.Where("a.appointment_time >= ?", f.Now)
	case "past":
		q = q.Where("a.appointment_time < ?", f.Now)
	}

	views := []dto.AppointmentView{}
	if err := q.Order("a.appointment_time DESC").Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *AppointmentGormRepository) ListForSalon(
	ctx context.Context,
	salonID uint,
) ([]dto.AppointmentView, error) {

	views := []dto.AppointmentView{}
	if err := r.viewQuery(ctx).
		Where("a.salon_id = ?", salonID).
		Order("a.appointment_time DESC").
		Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

// UpdateAppointment writes only columns. reminders_sent is always omitted.
func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	columns []string,
) error {
	return r.db.WithContext(ctx).
		Model(ap).
		Select(columns).
		Omit("reminders_sent").
		Updates(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error
}
