package service

import (
	"context"
	"time"

	"aquascape/internal/command"
	"aquascape/internal/logger"
	"aquascape/internal/models"
	"aquascape/internal/repository"

	"github.com/shopspring/decimal"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int64, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(ctx context.Context, accessToken string) (int64, error)
}

// Aquariums is owner-scoped: every call checks that userID owns the aquarium.
type Aquariums interface {
	Create(ctx context.Context, userID int64, in AquariumInput) (models.Aquarium, error)
	Get(ctx context.Context, userID, id int64) (models.Aquarium, error)
	List(ctx context.Context, userID int64) ([]models.Aquarium, error)
	Update(ctx context.Context, userID, id int64, in AquariumInput) (models.Aquarium, error)
	Delete(ctx context.Context, userID, id int64) error
}

type Sensors interface {
	Record(ctx context.Context, userID int64, in SensorInput) (models.SensorReading, error)
	List(ctx context.Context, userID int64, f HistoryFilter) ([]models.SensorReading, error)
}

type Feedings interface {
	Record(ctx context.Context, userID int64, in FeedingInput) (models.FeedingLog, error)
	List(ctx context.Context, userID int64, f HistoryFilter) ([]models.FeedingLog, error)
}

type Schedules interface {
	Create(ctx context.Context, userID int64, in ScheduleInput) (models.Schedule, error)
	Get(ctx context.Context, userID, id int64) (models.Schedule, error)
	List(ctx context.Context, userID, aquariumID int64) ([]models.Schedule, error)
	Update(ctx context.Context, userID, id int64, in ScheduleInput) (models.Schedule, error)
	Delete(ctx context.Context, userID, id int64) error
}

// Alerts carries both notifications and device commands.
type Alerts interface {
	Create(ctx context.Context, userID int64, in AlertInput) (models.Alert, error)
	List(ctx context.Context, userID int64, f AlertFilter) ([]models.Alert, error)
	Delete(ctx context.Context, userID, id int64) error
	Resolve(ctx context.Context, userID, id int64) (models.Alert, error)
	FeedNow(ctx context.Context, userID, aquariumID int64, volume decimal.NullDecimal) (models.Alert, error)
	UpdateSettings(ctx context.Context, userID, aquariumID int64, u command.UpdateSettings) (models.Alert, error)
}

// Scheduler runs the background loop that turns due schedules into feed commands.
// Stop via context cancellation in main() for graceful shutdown.
type Scheduler interface {
	RunOnce(ctx context.Context) (CycleReport, error)
	Run(ctx context.Context, interval time.Duration)
}

// Root Service aggregates all sub-services.
type Service struct {
	Authorization
	Aquariums Aquariums
	Sensors   Sensors
	Feedings  Feedings
	Schedules Schedules
	Alerts    Alerts
	Scheduler Scheduler
}

type Options struct {
	Auth      AuthConfig
	Scheduler SchedulerConfig
	Log       *logger.Logger
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, opts.Auth),
		Aquariums:     NewAquariumService(repos.Aquariums),
		Sensors:       NewSensorService(repos.Aquariums, repos.Sensors),
		Feedings:      NewFeedingService(repos.Aquariums, repos.Feedings),
		Schedules:     NewScheduleService(repos.Aquariums, repos.Schedules),
		Alerts:        NewAlertService(repos.Aquariums, repos.Alerts),
		Scheduler:     NewSchedulerService(repos, opts.Scheduler, opts.Log),
	}
}
