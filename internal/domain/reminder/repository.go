package reminder

import (
	"context"
	"time"
)

// LookaheadWindow bounds which appointments a scan considers.
const LookaheadWindow = 24 * time.Hour

// CandidateRow is a raw candidate as loaded from storage, before the offset
// columns are decoded.
type CandidateRow struct {
	Candidate
	RawOffsets []byte
	RawSent    []byte
}

type AppointmentStore interface {
	// FetchCandidates returns upcoming appointments scheduled in
	// (now, now+LookaheadWindow] whose master has an email address.
	FetchCandidates(ctx context.Context, now time.Time) ([]CandidateRow, error)

	// UpdateSentOffsets stores the union of offsets and whatever is already
	// stored for the appointment.
	UpdateSentOffsets(ctx context.Context, appointmentID uint, offsets []int) error
}

type NotificationStore interface {
	CreateNotification(
		ctx context.Context,
		recipientID uint,
		kind string,
		title string,
		body string,
		appointmentID *uint,
	) (uint, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Decode turns a CandidateRow into a Candidate. Malformed configured offsets
// yield a ConfigurationError. Malformed sent offsets are a PersistenceError,
// since firing again could duplicate a delivered reminder.
func (r CandidateRow) Decode() (Candidate, error) {
	c := r.Candidate

	sent, err := ParseOffsets(r.RawSent)
	if err != nil {
		return c, &PersistenceError{AppointmentID: c.AppointmentID, Op: "decode sent offsets", Err: err}
	}
	c.Sent = sent

	offsets, err := ParseOffsets(r.RawOffsets)
	if err != nil {
		c.Offsets = nil
		return c, &ConfigurationError{AppointmentID: c.AppointmentID, Err: err}
	}
	c.Offsets = offsets

	return c, nil
}
