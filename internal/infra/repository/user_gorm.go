package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/beauty-scheduler/internal/httperr"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

var (
	ErrUserNotFound = httperr.ErrBusiness("user_not_found")
	ErrUserTaken    = httperr.ErrBusiness("email_or_username_taken")
)

// Subscriber audiences of a salon.
const (
	AudienceClients = "clients"
	AudienceMasters = "masters"
	AudienceAll     = "all"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrUserTaken
		}
		return err
	}
	return nil
}

func (r *UserGormRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ? AND id <> ?", username, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserGormRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

// Update writes the given columns of u.
func (r *UserGormRepository) Update(ctx context.Context, u *models.User, columns []string) error {
	if err := r.db.WithContext(ctx).Model(u).Select(columns).Updates(u).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrUserTaken
		}
		return err
	}
	return nil
}

func (r *UserGormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

func (r *UserGormRepository) SearchSalons(ctx context.Context, query string, limit int) ([]models.User, error) {
	pattern := "%" + query + "%"
	salons := []models.User{}
	err := r.db.WithContext(ctx).
		Where("is_salon_owner = ?", true).
		Where("username ILIKE ? OR name ILIKE ?", pattern, pattern).
		Limit(limit).
		Find(&salons).Error
	return salons, err
}

func (r *UserGormRepository) SetSubscription(ctx context.Context, userID uint, salonID *uint) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("subscribed_salon_id", salonID).Error
}

func (r *UserGormRepository) subscribers(ctx context.Context, salonID uint, audience string) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("subscribed_salon_id = ?", salonID)

	switch audience {
	case AudienceMasters:
		q = q.Where("is_master = ?", true)
	case AudienceClients:
		q = q.Where("is_master = ? AND is_salon_owner = ?", false, false)
	}
	return q
}

func (r *UserGormRepository) Subscribers(ctx context.Context, salonID uint, audience string) ([]models.User, error) {
	users := []models.User{}
	err := r.subscribers(ctx, salonID, audience).Order("name").Find(&users).Error
	return users, err
}

func (r *UserGormRepository) SubscriberIDs(ctx context.Context, salonID uint, audience string) ([]uint, error) {
	var ids []uint
	err := r.subscribers(ctx, salonID, audience).Pluck("id", &ids).Error
	return ids, err
}
