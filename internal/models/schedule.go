package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ScheduleTypeInterval   = "interval"
	ScheduleTypeDailyTimes = "daily_times"
)

// Schedule describes when an aquarium should be fed.
// DailyTimes holds a JSON array of "HH:MM" strings as stored.
// StartDate/EndDate are persisted but not enforced by the evaluator.
type Schedule struct {
	ID              int64               `json:"id"`
	AquariumID      int64               `json:"aquarium_id"`
	Name            string              `json:"name,omitempty"`
	Type            string              `json:"type"` // interval | daily_times
	IntervalHours   *int                `json:"interval_hours,omitempty"`
	DailyTimes      string              `json:"daily_times,omitempty"`
	FeedVolumeGrams decimal.NullDecimal `json:"feed_volume_grams"`
	Enabled         bool                `json:"enabled"`
	StartDate       *time.Time          `json:"start_date,omitempty"`
	EndDate         *time.Time          `json:"end_date,omitempty"`
}

// ScheduleWithAquarium is an enabled schedule joined with its owning aquarium.
type ScheduleWithAquarium struct {
	Schedule
	Aquarium Aquarium `json:"aquarium"`
}
