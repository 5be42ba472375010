package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// AquariumInput is the writable part of an aquarium. Update replaces every field.
type AquariumInput struct {
	Name               string              `json:"name"`
	SizeLitres         decimal.NullDecimal `json:"size_litres"`
	DeviceUID          string              `json:"device_uid"`
	FeedingVolumeGrams decimal.NullDecimal `json:"feeding_volume_grams"`
	FeedingPeriodHours *int                `json:"feeding_period_hours"`
	ActiveSince        *time.Time          `json:"active_since"` // defaults to now on create
}

type SensorInput struct {
	AquariumID   int64      `json:"aquarium_id"`
	TS           *time.Time `json:"ts"` // defaults to now
	TemperatureC *float64   `json:"temperature_c"`
	PH           *float64   `json:"ph"`
}

type FeedingInput struct {
	AquariumID  int64               `json:"aquarium_id"`
	TS          *time.Time          `json:"ts"`   // defaults to now
	Mode        string              `json:"mode"` // "AUTO" | "MANUAL"
	VolumeGrams decimal.NullDecimal `json:"volume_grams"`
	Actor       string              `json:"actor"` // defaults to the caller's user id
}

type ScheduleInput struct {
	AquariumID      int64               `json:"aquarium_id"`
	Name            string              `json:"name"`
	Type            string              `json:"type"` // "interval" | "daily_times"
	IntervalHours   *int                `json:"interval_hours"`
	DailyTimes      []string            `json:"daily_times"` // "HH:MM"
	FeedVolumeGrams decimal.NullDecimal `json:"feed_volume_grams"`
	Enabled         *bool               `json:"enabled"` // defaults to true
	StartDate       *time.Time          `json:"start_date"`
	EndDate         *time.Time          `json:"end_date"`
}

type AlertInput struct {
	AquariumID int64  `json:"aquarium_id"`
	Type       string `json:"type"`
	Message    string `json:"message"`
}

// HistoryFilter narrows sensor and feeding history of one aquarium.
type HistoryFilter struct {
	AquariumID int64
	From       time.Time // inclusive; zero means no lower bound
	Limit      int       // sensor data only; 0 means the default page size
}

// AlertFilter narrows the alerts of one aquarium.
type AlertFilter struct {
	AquariumID int64
	Type       string // "" means any
	Resolved   *bool  // nil means any
}
