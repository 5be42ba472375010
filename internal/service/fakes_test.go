package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"aquascape/internal/models"
	"aquascape/internal/repository"
)

// memStore is an in-memory stand-in for the repositories the services use.
type memStore struct {
	mu        sync.Mutex
	nextID    int64
	aquariums map[int64]models.Aquarium
	schedules map[int64]models.Schedule
	feedings  []models.FeedingLog
	alerts    map[int64]models.Alert
	readings  []models.SensorReading

	// failures injected by tests
	listErr   error
	latestErr map[int64]error
	createErr error
	onList    func()
}

func newMemStore() *memStore {
	return &memStore{
		aquariums: map[int64]models.Aquarium{},
		schedules: map[int64]models.Schedule{},
		alerts:    map[int64]models.Alert{},
		latestErr: map[int64]error{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) repos() *repository.Repository {
	return &repository.Repository{
		Aquariums: memAquariums{m},
		Sensors:   memSensors{m},
		Feedings:  memFeedings{m},
		Schedules: memSchedules{m},
		Alerts:    memAlerts{m},
	}
}

func (m *memStore) addAquarium(a models.Aquarium) models.Aquarium {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.id()
	m.aquariums[a.ID] = a
	return a
}

func (m *memStore) addSchedule(s models.Schedule) models.Schedule {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.id()
	m.schedules[s.ID] = s
	return s
}

func (m *memStore) alertsOf(aquariumID int64, typ string) []models.Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Alert
	for _, a := range m.alerts {
		if a.AquariumID == aquariumID && (typ == "" || a.Type == typ) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type memAquariums struct{ m *memStore }

func (r memAquariums) Create(_ context.Context, a models.Aquarium) (int64, error) {
	return r.m.addAquarium(a).ID, nil
}

func (r memAquariums) Get(_ context.Context, id int64) (*models.Aquarium, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.aquariums[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r memAquariums) ListByUser(_ context.Context, userID int64) ([]models.Aquarium, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.Aquarium
	for _, a := range r.m.aquariums {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memAquariums) Update(_ context.Context, a models.Aquarium) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.aquariums[a.ID] = a
	return nil
}

func (r memAquariums) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.aquariums, id)
	return nil
}

type memSensors struct{ m *memStore }

func (r memSensors) Create(_ context.Context, s models.SensorReading) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s.ID = r.m.id()
	r.m.readings = append(r.m.readings, s)
	return s.ID, nil
}

func (r memSensors) List(_ context.Context, aquariumID int64, since time.Time, limit int) ([]models.SensorReading, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.SensorReading
	for i := len(r.m.readings) - 1; i >= 0 && len(out) < limit; i-- {
		s := r.m.readings[i]
		if s.AquariumID == aquariumID && !s.TS.Before(since) {
			out = append(out, s)
		}
	}
	return out, nil
}

type memFeedings struct{ m *memStore }

func (r memFeedings) Append(_ context.Context, l models.FeedingLog) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	l.ID = r.m.id()
	r.m.feedings = append(r.m.feedings, l)
	return l.ID, nil
}

func (r memFeedings) List(_ context.Context, aquariumID int64, since time.Time) ([]models.FeedingLog, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.FeedingLog
	for _, l := range r.m.feedings {
		if l.AquariumID == aquariumID && !l.TS.Before(since) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r memFeedings) Latest(_ context.Context, aquariumID int64) (*models.FeedingLog, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.latestErr[aquariumID]; err != nil {
		return nil, err
	}
	var latest *models.FeedingLog
	for i := range r.m.feedings {
		l := r.m.feedings[i]
		if l.AquariumID == aquariumID && (latest == nil || l.TS.After(latest.TS)) {
			latest = &l
		}
	}
	return latest, nil
}

type memSchedules struct{ m *memStore }

func (r memSchedules) Create(_ context.Context, s models.Schedule) (int64, error) {
	return r.m.addSchedule(s).ID, nil
}

func (r memSchedules) Get(_ context.Context, id int64) (*models.Schedule, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.schedules[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r memSchedules) ListByAquarium(_ context.Context, aquariumID int64) ([]models.Schedule, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.Schedule
	for _, s := range r.m.schedules {
		if s.AquariumID == aquariumID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memSchedules) Update(_ context.Context, s models.Schedule) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.schedules[s.ID] = s
	return nil
}

func (r memSchedules) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.schedules, id)
	return nil
}

func (r memSchedules) ListEnabledWithAquarium(_ context.Context) ([]models.ScheduleWithAquarium, error) {
	if r.m.onList != nil {
		r.m.onList()
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.listErr != nil {
		return nil, r.m.listErr
	}
	var out []models.ScheduleWithAquarium
	for _, s := range r.m.schedules {
		if !s.Enabled {
			continue
		}
		out = append(out, models.ScheduleWithAquarium{Schedule: s, Aquarium: r.m.aquariums[s.AquariumID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memAlerts struct{ m *memStore }

func (r memAlerts) Create(_ context.Context, a models.Alert) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.createErr != nil {
		return 0, r.m.createErr
	}
	a.ID = r.m.id()
	r.m.alerts[a.ID] = a
	return a.ID, nil
}

func (r memAlerts) Get(_ context.Context, id int64) (*models.Alert, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.alerts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r memAlerts) List(_ context.Context, f repository.AlertFilter) ([]models.Alert, error) {
	var out []models.Alert
	for _, a := range r.m.alertsOf(f.AquariumID, f.Type) {
		if f.Resolved == nil || a.Resolved == *f.Resolved {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memAlerts) LatestOfType(_ context.Context, aquariumID int64, typ string) (*models.Alert, error) {
	var latest *models.Alert
	for _, a := range r.m.alertsOf(aquariumID, typ) {
		a := a
		if latest == nil || !a.TS.Before(latest.TS) {
			latest = &a
		}
	}
	return latest, nil
}

func (r memAlerts) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.alerts, id)
	return nil
}

func (r memAlerts) Resolve(_ context.Context, id int64, at time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a := r.m.alerts[id]
	a.Resolved = true
	a.ResolvedAt = &at
	r.m.alerts[id] = a
	return nil
}

func intPtr(v int) *int { return &v }
func boolPtr(v bool) *bool { return &v }
