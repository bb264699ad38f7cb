package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

// AuditLogFilter narrows one user's audit trail. Zero values are ignored;
// To is exclusive.
type AuditLogFilter struct {
	UserID        uint
	Action        string
	Entity        string
	AppointmentID uint
	From          time.Time
	To            time.Time
	Limit         int
	Offset        int
}

type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

func auditLogQuery(tx *gorm.DB, f AuditLogFilter) *gorm.DB {
	q := tx.Model(&models.AuditLog{}).Where("user_id = ?", f.UserID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.AppointmentID != 0 {
		q = q.Where("entity = ? AND entity_id = ?", "appointment", f.AppointmentID)
	} else if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}
	return q
}

// List returns one page of matching entries, newest first, and the total
// number of matches.
func (r *AuditLogGormRepository) List(ctx context.Context, f AuditLogFilter) ([]models.AuditLog, int64, error) {
	var total int64
	if err := auditLogQuery(r.db.WithContext(ctx), f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := []models.AuditLog{}
	if err := auditLogQuery(r.db.WithContext(ctx), f).
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
