package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/beauty-scheduler/internal/domain/reminder"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

// ReminderGormRepository is the reminder dispatcher's view of appointments
// and notifications.
type ReminderGormRepository struct {
	db *gorm.DB
}

func NewReminderGormRepository(db *gorm.DB) *ReminderGormRepository {
	return &ReminderGormRepository{db: db}
}

var (
	_ reminder.AppointmentStore  = (*ReminderGormRepository)(nil)
	_ reminder.NotificationStore = (*ReminderGormRepository)(nil)
)

type candidateRecord struct {
	AppointmentID   uint
	MasterID        uint
	MasterEmail     string
	MasterName      string
	AppointmentTime time.Time
	Service         string
	Comment         *string
	ClientName      string
	ClientPhone     string
	ReminderMinutes []byte
	RemindersSent   []byte
}

// candidatesQuery selects upcoming appointments in (now, now+LookaheadWindow]
// whose master can receive email.
func candidatesQuery(tx *gorm.DB, now time.Time) *gorm.DB {
	return tx.
		Table("appointments AS a").
		Select(`a.id AS appointment_id, a.master_id, u.email AS master_email, u.name AS master_name,
			a.appointment_time, a.service, a.comment, a.client_name, a.client_phone,
			a.reminder_minutes, a.reminders_sent`).
		Joins("JOIN users u ON a.master_id = u.id").
		Where("a.status = ?", "upcoming").
		Where("a.appointment_time > ? AND a.appointment_time <= ?", now, now.Add(reminder.LookaheadWindow)).
		Where("u.email IS NOT NULL AND u.email <> ''").
		Order("a.appointment_time ASC")
}

func (r *ReminderGormRepository) FetchCandidates(
	ctx context.Context,
	now time.Time,
) ([]reminder.CandidateRow, error) {

	var records []candidateRecord
	if err := candidatesQuery(r.db.WithContext(ctx), now).Scan(&records).Error; err != nil {
		return nil, err
	}

	rows := make([]reminder.CandidateRow, 0, len(records))
	for _, rec := range records {
		comment := ""
		if rec.Comment != nil {
			comment = *rec.Comment
		}
		rows = append(rows, reminder.CandidateRow{
			Candidate: reminder.Candidate{
				AppointmentID: rec.AppointmentID,
				MasterID:      rec.MasterID,
				MasterEmail:   rec.MasterEmail,
				MasterName:    rec.MasterName,
				ScheduledAt:   rec.AppointmentTime,
				Service:       rec.Service,
				Comment:       comment,
				ClientName:    rec.ClientName,
				ClientPhone:   rec.ClientPhone,
			},
			RawOffsets: rec.ReminderMinutes,
			RawSent:    rec.RemindersSent,
		})
	}
	return rows, nil
}

// lockSentQuery reads an appointment's sent offsets under FOR UPDATE.
func lockSentQuery(tx *gorm.DB, appointmentID uint, dest *models.Appointment) *gorm.DB {
	return tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "reminders_sent").
		First(dest, appointmentID)
}

func writeSentQuery(tx *gorm.DB, appointmentID uint, sent models.JSONList) *gorm.DB {
	return tx.Model(&models.Appointment{}).
		Where("id = ?", appointmentID).
		Update("reminders_sent", sent)
}

// unionSent merges offsets into the stored column value. Unreadable
// history is replaced rather than blocking delivery.
func unionSent(stored []byte, offsets []int) models.JSONList {
	current, err := reminder.ParseOffsets(stored)
	if err != nil {
		current = nil
	}
	return models.IntList(reminder.MergeOffsets(current, offsets))
}

// UpdateSentOffsets locks the row and stores the union of offsets and the
// stored list, so concurrent writers never drop each other's offsets.
func (r *ReminderGormRepository) UpdateSentOffsets(
	ctx context.Context,
	appointmentID uint,
	offsets []int,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ap models.Appointment
		if err := lockSentQuery(tx, appointmentID, &ap).Error; err != nil {
			return err
		}
		return writeSentQuery(tx, appointmentID, unionSent(ap.RemindersSent, offsets)).Error
	})
}

func (r *ReminderGormRepository) CreateNotification(
	ctx context.Context,
	recipientID uint,
	kind string,
	title string,
	body string,
	appointmentID *uint,
) (uint, error) {

	n := models.Notification{
		UserID:        recipientID,
		Type:          kind,
		Title:         title,
		Message:       body,
		AppointmentID: appointmentID,
	}
	if err := r.db.WithContext(ctx).Create(&n).Error; err != nil {
		return 0, err
	}
	return n.ID, nil
}
