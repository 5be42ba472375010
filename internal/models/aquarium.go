package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Aquarium is a tank owned by a user and served by one device.
type Aquarium struct {
	ID                 int64               `json:"id"`
	UserID             int64               `json:"user_id"`
	Name               string              `json:"name"`
	SizeLitres         decimal.NullDecimal `json:"size_litres"`
	DeviceUID          string              `json:"device_uid,omitempty"`
	FeedingVolumeGrams decimal.NullDecimal `json:"feeding_volume_grams"`
	FeedingPeriodHours *int                `json:"feeding_period_hours,omitempty"`
	ActiveSince        time.Time           `json:"active_since"`
	CreatedAt          time.Time           `json:"created_at"`
}

// SensorReading is one temperature/pH sample posted by a device.
type SensorReading struct {
	ID           int64     `json:"id"`
	AquariumID   int64     `json:"aquarium_id"`
	TS           time.Time `json:"ts"`
	TemperatureC *float64  `json:"temperature_c,omitempty"` // °C
	PH           *float64  `json:"ph,omitempty"`
}
