package device

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"aquascape/internal/logger"
	"aquascape/internal/metrics"
	"aquascape/internal/models"
	"aquascape/internal/service"
)

// ----------- Simulation constants -----------
const (
	BaseTempC = 25.0 // starting water temperature °C
	BasePH    = 7.2  // starting pH

	tempStepC  = 0.2  // per-publish drift bound
	phStep     = 0.05 // per-publish drift bound
	tempJumpC  = 2.0  // extra drift bound once warmed up
	phJump     = 2.0
	warmupRuns = 3 // publishes before jumps start
)

// Thresholds mark a reading as dangerous.
type Thresholds struct {
	TempMax float64 // temperature >= TempMax
	PHMin   float64 // ph <= PHMin
	PHMax   float64 // ph >= PHMax
}

// DefaultThresholds are used when none are configured.
var DefaultThresholds = Thresholds{TempMax: 28.0, PHMin: 6.0, PHMax: 8.5}

// Dangerous reports whether a reading crosses any threshold. Missing values never do.
func (t Thresholds) Dangerous(r models.SensorReading) bool {
	if r.TemperatureC != nil && *r.TemperatureC >= t.TempMax {
		return true
	}
	if r.PH != nil && (*r.PH <= t.PHMin || *r.PH >= t.PHMax) {
		return true
	}
	return false
}

// DangerMessage is the message of a DANGER_SENSOR alert.
func DangerMessage(r models.SensorReading) string {
	return fmt.Sprintf("Dangerous reading: temp=%s, ph=%s", optFloat(r.TemperatureC), optFloat(r.PH))
}

func optFloat(v *float64) string {
	if v == nil {
		return "None"
	}
	return fmt.Sprintf("%g", *v)
}

// Simulator produces random-walk sensor readings for one aquarium.
type Simulator struct {
	api        API
	aquariumID int64
	thresholds Thresholds
	log        *logger.Logger

	mu   sync.Mutex
	rnd  *rand.Rand
	temp float64
	ph   float64
	runs int
	now  func() time.Time
}

func NewSimulator(api API, aquariumID int64, th Thresholds, log *logger.Logger) *Simulator {
	if log == nil {
		log = logger.Nop()
	}
	return &Simulator{
		api:        api,
		aquariumID: aquariumID,
		thresholds: th,
		log:        log,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
		temp:       BaseTempC,
		ph:         BasePH,
		now:        time.Now,
	}
}

// Next advances the random walk and returns the new reading, rounded to 2 decimals.
func (s *Simulator) Next() models.SensorReading {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.temp += s.uniform(tempStepC)
	s.ph += s.uniform(phStep)
	if s.runs >= warmupRuns {
		s.temp += s.uniform(tempJumpC)
		s.ph += s.uniform(phJump)
	}
	s.runs++

	temp, ph := round2(s.temp), round2(s.ph)
	return models.SensorReading{
		AquariumID:   s.aquariumID,
		TS:           s.now().UTC(),
		TemperatureC: &temp,
		PH:           &ph,
	}
}

// Publish posts the next reading and, when it is dangerous, a DANGER_SENSOR
// alert. Every dangerous reading raises its own alert.
func (s *Simulator) Publish(ctx context.Context) (models.SensorReading, error) {
	r := s.Next()
	return r, s.Report(ctx, r)
}

// Report posts r and raises a danger alert if needed.
func (s *Simulator) Report(ctx context.Context, r models.SensorReading) error {
	ts := r.TS
	stored, err := s.api.PostReading(ctx, service.SensorInput{
		AquariumID:   r.AquariumID,
		TS:           &ts,
		TemperatureC: r.TemperatureC,
		PH:           r.PH,
	})
	if err != nil {
		return fmt.Errorf("post sensor reading: %w", err)
	}
	s.log.Debugw("device_reading_posted", "sensor_id", stored.ID, "temperature_c", optFloat(r.TemperatureC), "ph", optFloat(r.PH))

	if !s.thresholds.Dangerous(r) {
		return nil
	}
	a, err := s.api.CreateAlert(ctx, service.AlertInput{
		AquariumID: r.AquariumID,
		Type:       models.AlertTypeDangerSensor,
		Message:    DangerMessage(r),
	})
	if err != nil {
		return fmt.Errorf("raise danger alert: %w", err)
	}
	metrics.IncDangerAlert()
	s.log.Warnw("device_danger_reading", "alert_id", a.ID, "aquarium_id", r.AquariumID, "message", a.Message)
	return nil
}

func (s *Simulator) uniform(bound float64) float64 {
	return (s.rnd.Float64()*2 - 1) * bound
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
