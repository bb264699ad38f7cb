package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/BruksfildServices01/beauty-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/reminder"
	"github.com/BruksfildServices01/beauty-scheduler/internal/timezone"
)

// Pusher delivers live events to connected users. Best effort only.
type Pusher interface {
	Push(userID uint, event string, payload any) int
}

type DispatchConfig struct {
	Concurrency int
	SendTimeout time.Duration
	Location    *time.Location
	FrontendURL string
}

// ScanReport summarises one reminder scan.
type ScanReport struct {
	Candidates          int
	Due                 int
	Delivered           int
	TransportFailures   int
	PersistenceFailures int
	ConfigErrors        int
}

// ======================================================
// USE CASE
// ======================================================

type DispatchReminders struct {
	store         domain.AppointmentStore
	notifications domain.NotificationStore
	mailer        domain.Mailer
	pusher        Pusher
	audit         *audit.Dispatcher
	logger        *slog.Logger
	cfg           DispatchConfig
}

func NewDispatchReminders(
	store domain.AppointmentStore,
	notifications domain.NotificationStore,
	mailer domain.Mailer,
	pusher Pusher,
	audit *audit.Dispatcher,
	logger *slog.Logger,
	cfg DispatchConfig,
) *DispatchReminders {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 10 * time.Second
	}
	if cfg.Location == nil {
		cfg.Location = timezone.Location("")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DispatchReminders{
		store:         store,
		notifications: notifications,
		mailer:        mailer,
		pusher:        pusher,
		audit:         audit,
		logger:        logger,
		cfg:           cfg,
	}
}

// Execute runs one scan at now. Only a failure to load candidates is
// returned; per-appointment failures are logged and counted in the report.
func (uc *DispatchReminders) Execute(ctx context.Context, now time.Time) (ScanReport, error) {
	rows, err := uc.store.FetchCandidates(ctx, now)
	if err != nil {
		return ScanReport{}, &domain.PersistenceError{Op: "fetch candidates", Err: err}
	}

	report := ScanReport{Candidates: len(rows)}
	if len(rows) == 0 {
		return report, nil
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, uc.cfg.Concurrency)
	)

	// One goroutine per appointment, so writes to one appointment never race.
	for _, row := range rows {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(row domain.CandidateRow) {
			defer wg.Done()
			defer func() { <-sem }()

			res := uc.safeProcess(ctx, row, now)

			mu.Lock()
			report.merge(res)
			mu.Unlock()
		}(row)
	}
	wg.Wait()

	return report, nil
}

type appointmentResult struct {
	due               int
	delivered         int
	transportFailures int
	err               error
}

func (r *ScanReport) merge(res appointmentResult) {
	r.Due += res.due
	r.Delivered += res.delivered
	r.TransportFailures += res.transportFailures
	switch {
	case res.err == nil:
	case domain.IsConfiguration(res.err):
		r.ConfigErrors++
	default:
		r.PersistenceFailures++
	}
}

func (uc *DispatchReminders) safeProcess(ctx context.Context, row domain.CandidateRow, now time.Time) (res appointmentResult) {
	defer func() {
		if p := recover(); p != nil {
			uc.logger.Error("reminder processing panicked",
				"appointment_id", row.AppointmentID,
				"panic", fmt.Sprint(p),
			)
			res.err = &domain.PersistenceError{
				AppointmentID: row.AppointmentID,
				Op:            "process",
				Err:           fmt.Errorf("panic: %v", p),
			}
		}
	}()
	return uc.processAppointment(ctx, row, now)
}

func (uc *DispatchReminders) processAppointment(ctx context.Context, row domain.CandidateRow, now time.Time) appointmentResult {
	var res appointmentResult

	c, err := row.Decode()
	if err != nil {
		res.err = err
		if domain.IsConfiguration(err) {
			uc.logger.Warn("invalid reminder offsets, skipping", "appointment_id", c.AppointmentID, "err", err)
		} else {
			uc.logger.Error("cannot decode appointment reminders", "appointment_id", c.AppointmentID, "err", err)
		}
		return res
	}

	due := c.Due(now)
	res.due = len(due)
	if len(due) == 0 {
		return res
	}

	sent := append([]int(nil), c.Sent...)

	for _, offset := range due {
		if err := ctx.Err(); err != nil {
			res.err = &domain.PersistenceError{AppointmentID: c.AppointmentID, Op: "scan cancelled", Err: err}
			return res
		}

		uc.logger.Info("sending reminder", "appointment_id", c.AppointmentID, "offset", offset)

		// --------------------------------------------------
		// 1️⃣ Durable notification
		// --------------------------------------------------
		body := NotificationBody(c, offset)
		notificationID, err := uc.notifications.CreateNotification(
			ctx,
			c.MasterID,
			NotificationKind,
			NotificationTitle,
			body,
			&c.AppointmentID,
		)
		if err != nil {
			res.err = &domain.PersistenceError{AppointmentID: c.AppointmentID, Op: "create notification", Err: err}
			uc.logger.Error("reminder notification not stored", "appointment_id", c.AppointmentID, "offset", offset, "err", err)
			return res
		}

		uc.push(c, notificationID, body, now)

		// --------------------------------------------------
		// 2️⃣ Email
		// --------------------------------------------------
		if err := uc.deliver(ctx, c, offset); err != nil {
			res.transportFailures++
			uc.logger.Warn("reminder email failed, will retry", "appointment_id", c.AppointmentID, "offset", offset, "err", err)
			continue
		}

		// --------------------------------------------------
		// 3️⃣ Mark delivered
		// --------------------------------------------------
		sent = domain.MergeOffsets(sent, []int{offset})
		if err := uc.store.UpdateSentOffsets(ctx, c.AppointmentID, sent); err != nil {
			res.err = &domain.PersistenceError{AppointmentID: c.AppointmentID, Op: "update sent offsets", Err: err}
			uc.logger.Error("reminder sent but not recorded", "appointment_id", c.AppointmentID, "offset", offset, "err", err)
			return res
		}
		res.delivered++

		masterID, appointmentID := c.MasterID, c.AppointmentID
		uc.audit.Dispatch(audit.Event{
			UserID:   &masterID,
			Action:   "reminder_sent",
			Entity:   "appointment",
			EntityID: &appointmentID,
			Metadata: map[string]any{"offset": offset},
		})
	}

	return res
}

func (uc *DispatchReminders) deliver(ctx context.Context, c domain.Candidate, offset int) error {
	html, err := RenderEmail(c, offset, uc.cfg.Location, uc.cfg.FrontendURL)
	if err != nil {
		return &domain.TransportError{AppointmentID: c.AppointmentID, Offset: offset, Err: err}
	}

	sendCtx, cancel := context.WithTimeout(ctx, uc.cfg.SendTimeout)
	defer cancel()

	if err := uc.mailer.Send(sendCtx, c.MasterEmail, EmailSubject(c), html); err != nil {
		return &domain.TransportError{AppointmentID: c.AppointmentID, Offset: offset, Err: err}
	}
	return nil
}

func (uc *DispatchReminders) push(c domain.Candidate, notificationID uint, body string, now time.Time) {
	if uc.pusher == nil {
		return
	}
	uc.pusher.Push(c.MasterID, "notification:new", map[string]any{
		"id":             notificationID,
		"type":           NotificationKind,
		"title":          NotificationTitle,
		"message":        body,
		"appointment_id": c.AppointmentID,
		"created_at":     now.UTC(),
	})
}

// Scan is the scheduler job: it runs Execute and logs the outcome.
func (uc *DispatchReminders) Scan(ctx context.Context, now time.Time) {
	report, err := uc.Execute(ctx, now)
	if err != nil {
		uc.logger.Error("reminder scan failed", "err", err)
		return
	}
	if report.Candidates == 0 {
		uc.logger.Debug("reminder scan: no candidates")
		return
	}
	uc.logger.Info("reminder scan finished",
		"candidates", report.Candidates,
		"due", report.Due,
		"delivered", report.Delivered,
		"transport_failures", report.TransportFailures,
		"persistence_failures", report.PersistenceFailures,
		"config_errors", report.ConfigErrors,
	)
}
