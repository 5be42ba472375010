package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	FeedModeAuto   = "AUTO"
	FeedModeManual = "MANUAL"

	ActorSystem    = "system"
	ActorSimulator = "simulator"
)

// FeedingLog is an append-only record of a feeding event.
type FeedingLog struct {
	ID          int64               `json:"id"`
	AquariumID  int64               `json:"aquarium_id"`
	TS          time.Time           `json:"ts"`
	Mode        string              `json:"mode"` // AUTO | MANUAL
	VolumeGrams decimal.NullDecimal `json:"volume_grams"`
	Actor       string              `json:"actor"`
}
