package service

import (
	"context"
	"fmt"
	"time"

	"aquascape/internal/lock"
	"aquascape/internal/logger"
	"aquascape/internal/metrics"
	"aquascape/internal/models"
	"aquascape/internal/repository"
)

const (
	DefaultSchedulerInterval = 60 * time.Second
	DefaultStorageTimeout    = 5 * time.Second
)

type SchedulerConfig struct {
	Locker         lock.Locker    // lock.Noop{} if nil
	LockID         int64          // lock.DefaultID if zero
	StorageTimeout time.Duration  // per storage call
	Location       *time.Location // daily_times zone, UTC if nil
}

// CycleReport summarizes one scheduler cycle.
type CycleReport struct {
	Started   time.Time
	Acquired  bool // false: another instance held the lock and nothing was done
	Evaluated int
	Emitted   int
	Failed    int
}

// SchedulerService evaluates enabled schedules and writes CMD_FEED alerts.
type SchedulerService struct {
	schedules repository.ScheduleRepo
	feedings  repository.FeedingLogRepo
	alerts    repository.AlertRepo

	locker  lock.Locker
	lockID  int64
	timeout time.Duration
	eval    *Evaluator
	log     *logger.Logger
	now     func() time.Time
}

func NewSchedulerService(repos *repository.Repository, cfg SchedulerConfig, log *logger.Logger) *SchedulerService {
	s := &SchedulerService{
		schedules: repos.Schedules,
		feedings:  repos.Feedings,
		alerts:    repos.Alerts,
		locker:    cfg.Locker,
		lockID:    cfg.LockID,
		timeout:   cfg.StorageTimeout,
		eval:      NewEvaluator(cfg.Location),
		log:       log,
		now:       time.Now,
	}
	if s.locker == nil {
		s.locker = lock.Noop{}
	}
	if s.lockID == 0 {
		s.lockID = lock.DefaultID
	}
	if s.timeout <= 0 {
		s.timeout = DefaultStorageTimeout
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

// Run runs one cycle immediately and then one per tick until ctx is canceled.
// Cycle failures are logged and never stop the loop.
func (s *SchedulerService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSchedulerInterval
	}
	s.log.Infow("scheduler_started", "interval", interval.String(), "lock_id", s.lockID)

	s.safeRunOnce(ctx)

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Infow("scheduler_stopped")
			return
		case <-t.C:
			s.safeRunOnce(ctx)
		}
	}
}

// RunOnce performs a single cycle under the scheduler lock. Contention is not
// an error: the report has Acquired=false and nothing is written. The cycle is
// detached from ctx cancellation so a shutdown never interrupts it halfway.
func (s *SchedulerService) RunOnce(ctx context.Context) (CycleReport, error) {
	ctx = context.WithoutCancel(ctx)
	now := s.now().UTC()
	report := CycleReport{Started: now}

	acquired, err := lock.With(ctx, s.locker, s.lockID, func(ctx context.Context) error {
		report.Acquired = true
		return s.cycle(ctx, now, &report)
	})

	switch {
	case err != nil:
		metrics.IncSchedulerCycle("error")
		s.log.Errorw("scheduler_cycle_failed", "err", err, "evaluated", report.Evaluated, "emitted", report.Emitted)
	case !acquired:
		metrics.IncSchedulerCycle("skipped")
		s.log.Debugw("scheduler_cycle_skipped", "reason", "lock_held", "lock_id", s.lockID)
	default:
		metrics.IncSchedulerCycle("ok")
		s.log.Infow("scheduler_cycle_done",
			"evaluated", report.Evaluated,
			"emitted", report.Emitted,
			"failed", report.Failed,
			"took", time.Since(report.Started).String(),
		)
	}
	return report, err
}

func (s *SchedulerService) safeRunOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			metrics.IncSchedulerCycle("error")
			s.log.Errorw("scheduler_cycle_panic", "panic", r)
		}
	}()
	_, _ = s.RunOnce(ctx)
}

func (s *SchedulerService) cycle(ctx context.Context, now time.Time, r *CycleReport) error {
	var list []models.ScheduleWithAquarium
	err := s.withTimeout(ctx, func(ctx context.Context) (err error) {
		list, err = s.schedules.ListEnabledWithAquarium(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("load enabled schedules: %w", err)
	}

	for _, sa := range list {
		r.Evaluated++
		emitted, err := s.evaluateOne(ctx, sa, now)
		if err != nil {
			r.Failed++
			metrics.IncScheduleError()
			s.log.Warnw("schedule_skipped", "schedule_id", sa.ID, "aquarium_id", sa.AquariumID, "err", err)
			continue
		}
		if emitted {
			r.Emitted++
		}
	}
	return nil
}

func (s *SchedulerService) evaluateOne(ctx context.Context, sa models.ScheduleWithAquarium, now time.Time) (bool, error) {
	var ev Evidence
	err := s.withTimeout(ctx, func(ctx context.Context) (err error) {
		if ev.LastFeeding, err = s.feedings.Latest(ctx, sa.AquariumID); err != nil {
			return err
		}
		ev.LastCommand, err = s.alerts.LatestOfType(ctx, sa.AquariumID, models.AlertTypeFeedCommand)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("load feeding evidence: %w", err)
	}

	d, err := s.eval.Evaluate(sa, now, ev)
	if err != nil {
		return false, err
	}
	if !d.Due {
		s.log.Debugw("schedule_not_due", "schedule_id", sa.ID, "aquarium_id", sa.AquariumID, "reason", d.Reason)
		return false, nil
	}

	var id int64
	err = s.withTimeout(ctx, func(ctx context.Context) (err error) {
		id, err = s.alerts.Create(ctx, *d.Command)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("write feed command: %w", err)
	}

	metrics.IncFeedCommand(sa.Type)
	s.log.Infow("feed_command_emitted",
		"schedule_id", sa.ID,
		"aquarium_id", sa.AquariumID,
		"alert_id", id,
		"message", d.Command.Message,
	)
	return true, nil
}

func (s *SchedulerService) withTimeout(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return fn(ctx)
}
