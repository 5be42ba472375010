package device

import (
	"context"
	"fmt"
	"sync"

	"aquascape/internal/models"
	"aquascape/internal/service"
)

var errNotFound = fmt.Errorf("aquarium: %w", service.ErrNotFound)

// fakeAPI keeps server state in memory and records device calls.
type fakeAPI struct {
	mu        sync.Mutex
	aquarium  models.Aquarium
	alerts    []models.Alert
	feedings  []service.FeedingInput
	readings  []service.SensorInput
	updates   []service.AquariumInput
	nextID    int64
	feedErr   error
	deleteErr error
	listErr   error
}

func newFakeAPI(aq models.Aquarium) *fakeAPI {
	return &fakeAPI{aquarium: aq, nextID: 100}
}

func (f *fakeAPI) GetAquarium(_ context.Context, id int64) (models.Aquarium, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id != f.aquarium.ID {
		return models.Aquarium{}, errNotFound
	}
	return f.aquarium, nil
}

func (f *fakeAPI) UpdateAquarium(_ context.Context, id int64, in service.AquariumInput) (models.Aquarium, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, in)
	f.aquarium.Name = in.Name
	f.aquarium.SizeLitres = in.SizeLitres
	f.aquarium.FeedingVolumeGrams = in.FeedingVolumeGrams
	f.aquarium.FeedingPeriodHours = in.FeedingPeriodHours
	return f.aquarium, nil
}

func (f *fakeAPI) ListAlerts(_ context.Context, aquariumID int64) ([]models.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Alert
	for _, a := range f.alerts {
		if a.AquariumID == aquariumID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateAlert(_ context.Context, in service.AlertInput) (models.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	a := models.Alert{ID: f.nextID, AquariumID: in.AquariumID, Type: in.Type, Message: in.Message}
	f.alerts = append(f.alerts, a)
	return a, nil
}

func (f *fakeAPI) DeleteAlert(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, a := range f.alerts {
		if a.ID == id {
			f.alerts = append(f.alerts[:i], f.alerts[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (f *fakeAPI) RecordFeeding(_ context.Context, in service.FeedingInput) (models.FeedingLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.feedErr != nil {
		return models.FeedingLog{}, f.feedErr
	}
	f.nextID++
	f.feedings = append(f.feedings, in)
	return models.FeedingLog{ID: f.nextID, AquariumID: in.AquariumID, Mode: in.Mode, VolumeGrams: in.VolumeGrams, Actor: in.Actor}, nil
}

func (f *fakeAPI) PostReading(_ context.Context, in service.SensorInput) (models.SensorReading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.readings = append(f.readings, in)
	return models.SensorReading{ID: f.nextID, AquariumID: in.AquariumID}, nil
}

func (f *fakeAPI) addAlert(typ, msg string) models.Alert {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	a := models.Alert{ID: f.nextID, AquariumID: f.aquarium.ID, Type: typ, Message: msg}
	f.alerts = append(f.alerts, a)
	return a
}
