package reminder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/reminder"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

type storedAppointment struct {
	candidate  domain.Candidate
	rawOffsets []byte
	sent       []int
}

type fakeStore struct {
	mu           sync.Mutex
	appointments map[uint]*storedAppointment
	order        []uint
	fetchErr     error
	updateErr    map[uint]error
	updates      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		appointments: map[uint]*storedAppointment{},
		updateErr:    map[uint]error{},
	}
}

func (s *fakeStore) add(c domain.Candidate, rawOffsets string, sent ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments[c.AppointmentID] = &storedAppointment{
		candidate:  c,
		rawOffsets: []byte(rawOffsets),
		sent:       sent,
	}
	s.order = append(s.order, c.AppointmentID)
}

func (s *fakeStore) sentFor(id uint) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.appointments[id].sent...)
}

func (s *fakeStore) FetchCandidates(_ context.Context, now time.Time) ([]domain.CandidateRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}

	var rows []domain.CandidateRow
	for _, id := range s.order {
		a := s.appointments[id]
		if !a.candidate.ScheduledAt.After(now) || a.candidate.ScheduledAt.After(now.Add(domain.LookaheadWindow)) {
			continue
		}
		rows = append(rows, domain.CandidateRow{
			Candidate:  a.candidate,
			RawOffsets: a.rawOffsets,
			RawSent:    models.IntList(a.sent),
		})
	}
	return rows, nil
}

func (s *fakeStore) UpdateSentOffsets(_ context.Context, id uint, offsets []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.updateErr[id]; err != nil {
		return err
	}
	s.updates++
	a := s.appointments[id]
	a.sent = domain.MergeOffsets(a.sent, offsets)
	return nil
}

type createdNotification struct {
	recipient     uint
	kind          string
	title         string
	body          string
	appointmentID uint
}

type fakeNotifications struct {
	mu      sync.Mutex
	created []createdNotification
	failFor map[uint]bool
}

func (n *fakeNotifications) CreateNotification(_ context.Context, recipient uint, kind, title, body string, appointmentID *uint) (uint, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failFor[*appointmentID] {
		return 0, errors.New("insert failed")
	}
	n.created = append(n.created, createdNotification{
		recipient:     recipient,
		kind:          kind,
		title:         title,
		body:          body,
		appointmentID: *appointmentID,
	})
	return uint(len(n.created)), nil
}

func (n *fakeNotifications) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.created)
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	fail bool
	sent []sentMail
	wait time.Duration
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.wait > 0 {
		select {
		case <-time.After(m.wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp: 451 temporary failure")
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type recordedPush struct {
	userID uint
	event  string
}

type fakePusher struct {
	mu     sync.Mutex
	pushes []recordedPush
}

func (p *fakePusher) Push(userID uint, event string, _ any) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes = append(p.pushes, recordedPush{userID: userID, event: event})
	return 1
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
