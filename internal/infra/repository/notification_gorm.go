package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/beauty-scheduler/internal/dto"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httperr"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

var ErrNotificationNotFound = httperr.ErrBusiness("notification_not_found")

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

// List returns the newest notifications of userID, joined with the
// appointment each one refers to.
func (r *NotificationGormRepository) List(
	ctx context.Context,
	userID uint,
	isRead *bool,
	limit int,
) ([]dto.NotificationView, error) {

	q := r.db.WithContext(ctx).
		Table("notifications AS n").
		Select("n.*, a.appointment_time, a.service AS appointment_service").
		Joins("LEFT JOIN appointments a ON n.appointment_id = a.id").
		Where("n.user_id = ?", userID)

	if isRead != nil {
		q = q.Where("n.is_read = ?", *isRead)
	}

	views := []dto.NotificationView{}
	if err := q.Order("n.created_at DESC").Limit(limit).Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *NotificationGormRepository) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// owned loads a notification and checks it belongs to userID.
func (r *NotificationGormRepository) owned(ctx context.Context, userID, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	if n.UserID != userID {
		return nil, httperr.ErrBusiness("forbidden")
	}
	return &n, nil
}

func (r *NotificationGormRepository) MarkRead(ctx context.Context, userID, id uint) error {
	n, err := r.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(n).Update("is_read", true).Error
}

func (r *NotificationGormRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *NotificationGormRepository) Delete(ctx context.Context, userID, id uint) error {
	n, err := r.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(n).Error
}

// CreateBatch inserts one broadcast notification per recipient.
func (r *NotificationGormRepository) CreateBatch(
	ctx context.Context,
	recipients []uint,
	kind string,
	title string,
	message string,
) ([]models.Notification, error) {

	batch := make([]models.Notification, 0, len(recipients))
	for _, id := range recipients {
		batch = append(batch, models.Notification{
			UserID:  id,
			Type:    kind,
			Title:   title,
			Message: message,
		})
	}
	if len(batch) == 0 {
		return batch, nil
	}

	if err := r.db.WithContext(ctx).CreateInBatches(&batch, 500).Error; err != nil {
		return nil, err
	}
	return batch, nil
}
