package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"aquascape/internal/lock"
	"aquascape/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingLocker struct{ err error }

func (f failingLocker) TryAcquire(context.Context, int64) (lock.Lease, bool, error) {
	return nil, false, f.err
}

func newTestScheduler(m *memStore, locker lock.Locker, now time.Time) *SchedulerService {
	s := NewSchedulerService(m.repos(), SchedulerConfig{Locker: locker}, nil)
	s.now = func() time.Time { return now }
	return s
}

func seedIntervalSchedule(m *memStore) (models.Aquarium, models.Schedule) {
	aq := m.addAquarium(models.Aquarium{UserID: 1, Name: "reef", FeedingVolumeGrams: grams("1")})
	s := m.addSchedule(models.Schedule{
		AquariumID:      aq.ID,
		Type:            models.ScheduleTypeInterval,
		IntervalHours:   intPtr(24),
		FeedVolumeGrams: grams("2.5"),
		Enabled:         true,
	})
	return aq, s
}

func TestRunOnce_EmitsOnceAndIsIdempotent(t *testing.T) {
	m := newMemStore()
	aq, _ := seedIntervalSchedule(m)
	s := newTestScheduler(m, lock.NewLocal(), evalNow)

	r, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, r.Acquired)
	assert.Equal(t, 1, r.Evaluated)
	assert.Equal(t, 1, r.Emitted)

	cmds := m.alertsOf(aq.ID, models.AlertTypeFeedCommand)
	require.Len(t, cmds, 1)
	assert.Equal(t, "Scheduled feed: 2.5g", cmds[0].Message)

	r, err = s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, r.Emitted)
	assert.Len(t, m.alertsOf(aq.ID, models.AlertTypeFeedCommand), 1)
}

func TestRunOnce_RecentFeedingSuppresses(t *testing.T) {
	m := newMemStore()
	aq, _ := seedIntervalSchedule(m)
	m.feedings = append(m.feedings, models.FeedingLog{AquariumID: aq.ID, TS: evalNow.Add(-time.Hour), Mode: models.FeedModeManual})
	s := newTestScheduler(m, nil, evalNow)

	r, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, r.Emitted)
	assert.Empty(t, m.alertsOf(aq.ID, models.AlertTypeFeedCommand))
}

func TestRunOnce_DisabledScheduleNotLoaded(t *testing.T) {
	m := newMemStore()
	_, sched := seedIntervalSchedule(m)
	sched.Enabled = false
	m.schedules[sched.ID] = sched
	s := newTestScheduler(m, nil, evalNow)

	r, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, r.Evaluated)
	assert.Empty(t, m.alerts)
}

func TestRunOnce_LockHeldWritesNothing(t *testing.T) {
	m := newMemStore()
	seedIntervalSchedule(m)
	locker := lock.NewLocal()

	lease, ok, err := locker.TryAcquire(context.Background(), lock.DefaultID)
	require.NoError(t, err)
	require.True(t, ok)
	defer lease.Release(context.Background())

	r, err := newTestScheduler(m, locker, evalNow).RunOnce(context.Background())
	require.NoError(t, err)
	assert.False(t, r.Acquired)
	assert.Equal(t, 0, r.Evaluated)
	assert.Empty(t, m.alerts)
}

func TestRunOnce_ConcurrentCyclesSerialize(t *testing.T) {
	m := newMemStore()
	aq, _ := seedIntervalSchedule(m)
	locker := lock.NewLocal()

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	m.onList = func() {
		once.Do(func() {
			entered <- struct{}{}
			<-release
		})
	}

	first := newTestScheduler(m, locker, evalNow)
	second := newTestScheduler(m, locker, evalNow)

	done := make(chan CycleReport)
	go func() {
		r, _ := first.RunOnce(context.Background())
		done <- r
	}()
	<-entered

	r, err := second.RunOnce(context.Background())
	require.NoError(t, err)
	assert.False(t, r.Acquired)

	close(release)
	r = <-done
	assert.True(t, r.Acquired)
	assert.Equal(t, 1, r.Emitted)
	assert.Len(t, m.alertsOf(aq.ID, models.AlertTypeFeedCommand), 1)
}

func TestRunOnce_BadScheduleIsSkipped(t *testing.T) {
	m := newMemStore()
	aq, _ := seedIntervalSchedule(m)
	m.addSchedule(models.Schedule{AquariumID: aq.ID, Type: models.ScheduleTypeInterval, Enabled: true})

	other := m.addAquarium(models.Aquarium{UserID: 1, Name: "shrimp"})
	m.addSchedule(models.Schedule{AquariumID: other.ID, Type: models.ScheduleTypeInterval, IntervalHours: intPtr(12), Enabled: true})
	m.latestErr[other.ID] = errors.New("connection reset")

	r, err := newTestScheduler(m, nil, evalNow).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, r.Evaluated)
	assert.Equal(t, 1, r.Emitted)
	assert.Equal(t, 2, r.Failed)
	assert.Len(t, m.alertsOf(aq.ID, models.AlertTypeFeedCommand), 1)
}

func TestRunOnce_WriteFailureCountsAsFailed(t *testing.T) {
	m := newMemStore()
	seedIntervalSchedule(m)
	m.createErr = errors.New("disk full")

	r, err := newTestScheduler(m, nil, evalNow).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, 0, r.Emitted)
}

func TestRunOnce_ListFailureFailsCycle(t *testing.T) {
	m := newMemStore()
	m.listErr = errors.New("db down")

	r, err := newTestScheduler(m, lock.NewLocal(), evalNow).RunOnce(context.Background())
	require.Error(t, err)
	assert.True(t, r.Acquired)
	assert.ErrorIs(t, err, m.listErr)
}

func TestRunOnce_AcquireFailure(t *testing.T) {
	m := newMemStore()
	seedIntervalSchedule(m)
	boom := errors.New("lock backend down")

	r, err := newTestScheduler(m, failingLocker{err: boom}, evalNow).RunOnce(context.Background())
	require.ErrorIs(t, err, boom)
	assert.False(t, r.Acquired)
	assert.Empty(t, m.alerts)
}

func TestRunOnce_IgnoresCanceledContext(t *testing.T) {
	m := newMemStore()
	seedIntervalSchedule(m)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := newTestScheduler(m, nil, evalNow).RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Emitted)
}

func TestRunOnce_ReleasesLockAfterCycle(t *testing.T) {
	m := newMemStore()
	m.listErr = errors.New("db down")
	locker := lock.NewLocal()

	_, err := newTestScheduler(m, locker, evalNow).RunOnce(context.Background())
	require.Error(t, err)

	lease, ok, err := locker.TryAcquire(context.Background(), lock.DefaultID)
	require.NoError(t, err)
	require.True(t, ok, "lock must be free after a failed cycle")
	require.NoError(t, lease.Release(context.Background()))
}

func TestRun_SurvivesFailingCyclesUntilCanceled(t *testing.T) {
	m := newMemStore()
	m.listErr = errors.New("db down")
	s := newTestScheduler(m, nil, evalNow)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	finished := make(chan struct{})
	go func() {
		s.Run(ctx, 5*time.Millisecond)
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSafeRunOnce_RecoversPanic(t *testing.T) {
	m := newMemStore()
	m.onList = func() { panic("boom") }
	s := newTestScheduler(m, lock.NewLocal(), evalNow)

	assert.NotPanics(t, func() { s.safeRunOnce(context.Background()) })
}
