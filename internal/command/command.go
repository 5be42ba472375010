// Package command decodes device commands carried by alert rows into a closed
// set of variants, and builds the messages the scheduler writes.
package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"aquascape/internal/models"

	"github.com/shopspring/decimal"
)

const (
	cmdFeedNow        = "feed_now"
	cmdUpdateSettings = "update_settings"
)

var (
	// ErrNotCommand marks a notification alert that a device must leave alone.
	ErrNotCommand = errors.New("alert is not a command")
	// ErrUnknownCommand marks a command the device cannot execute.
	ErrUnknownCommand = errors.New("unknown command")
)

// volumeRe extracts "2.5" from messages like "Scheduled feed: 2.5g".
var volumeRe = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*g\b`)

// Command is one of Feed or UpdateSettings.
type Command interface {
	isCommand()
}

// Feed asks the device to dispense food. Manual feeds (feed_now) are logged
// with the requested volume; scheduled feeds use the aquarium's configured
// volume when it has one.
type Feed struct {
	Volume decimal.NullDecimal
	Manual bool
	Reason string
}

// UpdateSettings patches aquarium settings. Unset fields are left unchanged.
type UpdateSettings struct {
	FeedingVolumeGrams decimal.NullDecimal
	FeedingPeriodHours *int
	Name               *string
	SizeLitres         decimal.NullDecimal
}

func (Feed) isCommand()           {}
func (UpdateSettings) isCommand() {}

// Empty reports whether the update carries no known field.
func (u UpdateSettings) Empty() bool {
	return !u.FeedingVolumeGrams.Valid && u.FeedingPeriodHours == nil && u.Name == nil && !u.SizeLitres.Valid
}

// Apply copies the set fields onto a.
func (u UpdateSettings) Apply(a *models.Aquarium) {
	if u.FeedingVolumeGrams.Valid {
		a.FeedingVolumeGrams = u.FeedingVolumeGrams
	}
	if u.FeedingPeriodHours != nil {
		h := *u.FeedingPeriodHours
		a.FeedingPeriodHours = &h
	}
	if u.Name != nil {
		a.Name = *u.Name
	}
	if u.SizeLitres.Valid {
		a.SizeLitres = u.SizeLitres
	}
}

type payload struct {
	Cmd                string              `json:"cmd"`
	Volume             decimal.NullDecimal `json:"volume"`
	FeedingVolumeGrams decimal.NullDecimal `json:"feeding_volume_grams"`
	FeedingPeriodHours *int                `json:"feeding_period_hours"`
	Name               *string             `json:"name"`
	SizeLitres         decimal.NullDecimal `json:"size_litres"`
}

// Decode turns an alert into a command.
//
// A JSON message with a "cmd" key wins over the alert type. Otherwise any
// type starting with CMD_FEED is a feed whose volume, if any, is parsed from
// the message. Other CMD* types yield ErrUnknownCommand and everything else
// ErrNotCommand.
func Decode(a models.Alert) (Command, error) {
	if p, ok := parsePayload(a.Message); ok {
		switch p.Cmd {
		case cmdFeedNow:
			return Feed{Volume: p.Volume, Manual: true, Reason: a.Message}, nil
		case cmdUpdateSettings:
			return UpdateSettings{
				FeedingVolumeGrams: p.FeedingVolumeGrams,
				FeedingPeriodHours: p.FeedingPeriodHours,
				Name:               p.Name,
				SizeLitres:         p.SizeLitres,
			}, nil
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, p.Cmd)
		}
	}

	typ := strings.ToUpper(strings.TrimSpace(a.Type))
	switch {
	case strings.HasPrefix(typ, models.AlertTypeFeedCommand):
		return Feed{Volume: parseVolume(a.Message), Reason: a.Message}, nil
	case models.IsCommandType(typ):
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, a.Type)
	default:
		return nil, ErrNotCommand
	}
}

func parsePayload(msg string) (payload, bool) {
	msg = strings.TrimSpace(msg)
	if !strings.HasPrefix(msg, "{") {
		return payload{}, false
	}
	var p payload
	if err := json.Unmarshal([]byte(msg), &p); err != nil || p.Cmd == "" {
		return payload{}, false
	}
	return p, true
}

func parseVolume(msg string) decimal.NullDecimal {
	m := volumeRe.FindStringSubmatch(msg)
	if m == nil {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(m[1])
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ScheduledFeedMessage is the message of a CMD_FEED emitted by an interval
// schedule. An unknown volume renders as "Scheduled feed: g".
func ScheduledFeedMessage(volume decimal.NullDecimal) string {
	return "Scheduled feed: " + volumeText(volume) + "g"
}

// DailyFeedMessage is the message of a CMD_FEED emitted by a daily_times schedule.
func DailyFeedMessage(volume decimal.NullDecimal) string {
	return "Scheduled daily feed: " + volumeText(volume) + "g"
}

// outbound is the wire form written into alert messages; numbers stay numbers.
type outbound struct {
	Cmd                string      `json:"cmd"`
	Volume             json.Number `json:"volume,omitempty"`
	FeedingVolumeGrams json.Number `json:"feeding_volume_grams,omitempty"`
	FeedingPeriodHours *int        `json:"feeding_period_hours,omitempty"`
	Name               *string     `json:"name,omitempty"`
	SizeLitres         json.Number `json:"size_litres,omitempty"`
}

// FeedNowMessage encodes a manual feed request.
func FeedNowMessage(volume decimal.NullDecimal) string {
	b, _ := json.Marshal(outbound{Cmd: cmdFeedNow, Volume: json.Number(volumeText(volume))})
	return string(b)
}

// UpdateSettingsMessage encodes a settings update.
func UpdateSettingsMessage(u UpdateSettings) string {
	b, _ := json.Marshal(outbound{
		Cmd:                cmdUpdateSettings,
		FeedingVolumeGrams: json.Number(volumeText(u.FeedingVolumeGrams)),
		FeedingPeriodHours: u.FeedingPeriodHours,
		Name:               u.Name,
		SizeLitres:         json.Number(volumeText(u.SizeLitres)),
	})
	return string(b)
}

func volumeText(v decimal.NullDecimal) string {
	if !v.Valid {
		return ""
	}
	return v.Decimal.String()
}
