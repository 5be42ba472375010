package models

import (
	"strings"
	"time"
)

// Alert types. CMD_* alerts are commands for the device and are deleted once
// executed; every other type is a notification that a human resolves.
const (
	AlertTypeFeedCommand     = "CMD_FEED"
	AlertTypeSettingsCommand = "CMD_UPDATE_SETTINGS"
	AlertTypeDangerSensor    = "DANGER_SENSOR"

	commandTypePrefix = "CMD"
)

// Alert is either a command envelope or a notification.
type Alert struct {
	ID         int64      `json:"id"`
	AquariumID int64      `json:"aquarium_id"`
	TS         time.Time  `json:"ts"`
	Type       string     `json:"type"`
	Message    string     `json:"message"`
	Resolved   bool       `json:"resolved"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// IsCommandType reports whether an alert type names a device command.
func IsCommandType(typ string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(typ)), commandTypePrefix)
}
