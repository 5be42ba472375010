package service

import (
	"context"
	"time"

	"aquascape/internal/models"
	"aquascape/internal/repository"
)

const (
	defaultSensorPage = 100
	maxSensorPage     = 1000
)

type SensorService struct {
	aquariums repository.AquariumRepo
	sensors   repository.SensorRepo
	now       func() time.Time
}

func NewSensorService(aquariums repository.AquariumRepo, sensors repository.SensorRepo) *SensorService {
	return &SensorService{aquariums: aquariums, sensors: sensors, now: time.Now}
}

// Record stores one reading. Danger thresholds are evaluated by the device.
func (s *SensorService) Record(ctx context.Context, userID int64, in SensorInput) (models.SensorReading, error) {
	if _, err := ownedAquarium(ctx, s.aquariums, userID, in.AquariumID); err != nil {
		return models.SensorReading{}, err
	}
	if in.PH != nil && (*in.PH < 0 || *in.PH > 14) {
		return models.SensorReading{}, invalidf("ph must be within 0..14")
	}

	r := models.SensorReading{
		AquariumID:   in.AquariumID,
		TS:           s.now().UTC(),
		TemperatureC: in.TemperatureC,
		PH:           in.PH,
	}
	if in.TS != nil {
		r.TS = in.TS.UTC()
	}

	id, err := s.sensors.Create(ctx, r)
	if err != nil {
		return models.SensorReading{}, err
	}
	r.ID = id
	return r, nil
}

// List returns the newest readings first.
func (s *SensorService) List(ctx context.Context, userID int64, f HistoryFilter) ([]models.SensorReading, error) {
	if _, err := ownedAquarium(ctx, s.aquariums, userID, f.AquariumID); err != nil {
		return nil, err
	}
	limit := f.Limit
	switch {
	case limit <= 0:
		limit = defaultSensorPage
	case limit > maxSensorPage:
		limit = maxSensorPage
	}
	return s.sensors.List(ctx, f.AquariumID, normalizeToUTC(f.From), limit)
}
