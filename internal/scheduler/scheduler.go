package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/beauty-scheduler/internal/lock"
)

// Job is one scan. It reports its own errors.
type Job func(ctx context.Context, now time.Time)

// Locker guards a scan across processes. The returned context is done
// when the lock is lost or released.
type Locker interface {
	Acquire(ctx context.Context) (held context.Context, release func(), err error)
}

type Scheduler struct {
	job      Job
	interval time.Duration
	locker   Locker
	logger   *slog.Logger
	now      func() time.Time

	running  atomic.Bool
	wg       sync.WaitGroup
	notifyCh chan struct{}
}

func New(job Job, interval time.Duration, locker Locker, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		job:      job,
		interval: interval,
		locker:   locker,
		logger:   logger,
		now:      time.Now,
		notifyCh: make(chan struct{}, 1),
	}
}

// Notify requests an immediate scan. Non-blocking.
func (s *Scheduler) Notify() {
	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

// Start scans once immediately, then every interval until ctx is done.
// It returns after the in-flight scan, if any, has finished.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("scheduler started", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.trigger(ctx)

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.trigger(ctx)
		case <-s.notifyCh:
			s.trigger(ctx)
		}
	}
}

func (s *Scheduler) trigger(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("previous scan still running, tick skipped")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.running.Store(false)
		s.run(ctx)
	}()
}

// RunOnce runs a scan synchronously. It returns false when another scan
// in this process is already running.
func (s *Scheduler) RunOnce(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		return false
	}
	defer s.running.Store(false)
	s.run(ctx)
	return true
}

func (s *Scheduler) run(ctx context.Context) {
	logger := s.logger.With("scan_id", uuid.NewString())

	defer func() {
		if p := recover(); p != nil {
			logger.Error("scan panicked", "panic", p)
		}
	}()

	jobCtx := ctx
	if s.locker != nil {
		held, release, err := s.locker.Acquire(ctx)
		if errors.Is(err, lock.ErrNotAcquired) {
			logger.Debug("scan lock held elsewhere, skipping")
			return
		}
		if err != nil {
			logger.Error("scan lock unavailable, skipping", "err", err)
			return
		}
		defer release()
		jobCtx = held
	}

	start := time.Now()
	s.job(jobCtx, s.now())

	if jobCtx.Err() != nil && ctx.Err() == nil {
		logger.Warn("scan lock lost, scan cut short", "duration", time.Since(start).String())
		return
	}
	logger.Debug("scan completed", "duration", time.Since(start).String())
}
