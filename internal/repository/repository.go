package repository

import (
	"context"
	"database/sql"
	"time"

	"aquascape/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type AquariumRepo interface {
	Create(ctx context.Context, a models.Aquarium) (int64, error)
	Get(ctx context.Context, id int64) (*models.Aquarium, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Aquarium, error)
	Update(ctx context.Context, a models.Aquarium) error
	Delete(ctx context.Context, id int64) error
}

type SensorRepo interface {
	Create(ctx context.Context, r models.SensorReading) (int64, error)
	List(ctx context.Context, aquariumID int64, since time.Time, limit int) ([]models.SensorReading, error)
}

// FeedingLogRepo is append-only.
type FeedingLogRepo interface {
	Append(ctx context.Context, l models.FeedingLog) (int64, error)
	List(ctx context.Context, aquariumID int64, since time.Time) ([]models.FeedingLog, error)
	Latest(ctx context.Context, aquariumID int64) (*models.FeedingLog, error)
}

type ScheduleRepo interface {
	Create(ctx context.Context, s models.Schedule) (int64, error)
	Get(ctx context.Context, id int64) (*models.Schedule, error)
	ListByAquarium(ctx context.Context, aquariumID int64) ([]models.Schedule, error)
	Update(ctx context.Context, s models.Schedule) error
	Delete(ctx context.Context, id int64) error
	// ListEnabledWithAquarium returns every enabled schedule joined with its
	// aquarium, ordered by schedule id.
	ListEnabledWithAquarium(ctx context.Context) ([]models.ScheduleWithAquarium, error)
}

// AlertFilter narrows AlertRepo.List. Zero values mean "any".
type AlertFilter struct {
	AquariumID int64
	Type       string
	Resolved   *bool
	Limit      int
}

type AlertRepo interface {
	Create(ctx context.Context, a models.Alert) (int64, error)
	Get(ctx context.Context, id int64) (*models.Alert, error)
	List(ctx context.Context, f AlertFilter) ([]models.Alert, error)
	LatestOfType(ctx context.Context, aquariumID int64, typ string) (*models.Alert, error)
	Delete(ctx context.Context, id int64) error
	Resolve(ctx context.Context, id int64, at time.Time) error
}

type Repository struct {
	Auth      Authorization
	Aquariums AquariumRepo
	Sensors   SensorRepo
	Feedings  FeedingLogRepo
	Schedules ScheduleRepo
	Alerts    AlertRepo
}

func NewRepository(db *sql.DB, d Dialect) *Repository {
	return &Repository{
		Auth:      NewUserRepository(db, d),
		Aquariums: NewAquariumRepository(db, d),
		Sensors:   NewSensorRepository(db, d),
		Feedings:  NewFeedingLogRepository(db, d),
		Schedules: NewScheduleRepository(db, d),
		Alerts:    NewAlertRepository(db, d),
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
