package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"aquascape/internal/command"
	"aquascape/internal/models"

	"github.com/shopspring/decimal"
)

// Reasons reported in a Decision.
const (
	ReasonDue            = "due"
	ReasonDisabled       = "disabled"
	ReasonFedRecently    = "fed_within_window"
	ReasonCommandPending = "command_within_window"
	ReasonNotThisMinute  = "not_a_scheduled_minute"
)

// MaxIntervalHours bounds interval_hours (ten years) so the window start
// stays representable as a time.Duration.
const MaxIntervalHours = 24 * 365 * 10

// Evidence is the latest feeding activity known for one aquarium.
type Evidence struct {
	LastFeeding *models.FeedingLog // newest feeding log, nil if never fed
	LastCommand *models.Alert      // newest CMD_FEED alert still stored, nil if none
}

// Decision is the outcome of evaluating one schedule at one instant.
type Decision struct {
	Due     bool
	Command *models.Alert // set when Due
	Reason  string
}

// Window is the dedup span of a schedule: evidence inside it suppresses a new command.
type Window struct {
	Start     time.Time
	Inclusive bool // true: ts >= Start counts; false: only ts > Start
}

// Contains reports whether ts falls inside the window.
func (w Window) Contains(ts time.Time) bool {
	if w.Inclusive {
		return !ts.Before(w.Start)
	}
	return ts.After(w.Start)
}

// Evaluator decides whether a schedule is due. It holds no state besides the
// location used for daily_times, so evaluating again is always safe.
type Evaluator struct {
	loc *time.Location
}

// NewEvaluator returns an evaluator interpreting daily_times in loc (UTC if nil).
func NewEvaluator(loc *time.Location) *Evaluator {
	if loc == nil {
		loc = time.UTC
	}
	return &Evaluator{loc: loc}
}

// Window returns the dedup window of s at now.
//   - interval: (now - interval_hours, now], exclusive lower bound.
//   - daily_times: [local midnight of now, now], inclusive lower bound.
func (e *Evaluator) Window(s models.Schedule, now time.Time) (Window, error) {
	switch s.Type {
	case models.ScheduleTypeInterval:
		if s.IntervalHours == nil {
			return Window{}, fmt.Errorf("%w: schedule %d: interval_hours is missing", ErrScheduleMisconfigured, s.ID)
		}
		if *s.IntervalHours < 0 {
			return Window{}, fmt.Errorf("%w: schedule %d: interval_hours is negative", ErrScheduleMisconfigured, s.ID)
		}
		if *s.IntervalHours > MaxIntervalHours {
			return Window{}, fmt.Errorf("%w: schedule %d: interval_hours exceeds %d", ErrScheduleMisconfigured, s.ID, MaxIntervalHours)
		}
		return Window{Start: now.Add(-time.Duration(*s.IntervalHours) * time.Hour)}, nil
	case models.ScheduleTypeDailyTimes:
		local := now.In(e.loc)
		midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, e.loc)
		return Window{Start: midnight, Inclusive: true}, nil
	default:
		return Window{}, fmt.Errorf("%w: schedule %d: unknown type %q", ErrScheduleMisconfigured, s.ID, s.Type)
	}
}

// Evaluate decides whether sa needs a feed command at now.
//
// A feeding log inside the window always suppresses the command; otherwise an
// existing CMD_FEED inside the window does. daily_times schedules are due only
// during a minute listed verbatim in daily_times: with a tick longer than one
// minute a slot can be skipped entirely.
func (e *Evaluator) Evaluate(sa models.ScheduleWithAquarium, now time.Time, ev Evidence) (Decision, error) {
	if !sa.Enabled {
		return Decision{Reason: ReasonDisabled}, nil
	}

	var message func(decimal.NullDecimal) string
	switch sa.Type {
	case models.ScheduleTypeInterval:
		message = command.ScheduledFeedMessage
	case models.ScheduleTypeDailyTimes:
		times, err := parseDailyTimes(sa.Schedule)
		if err != nil {
			return Decision{}, err
		}
		if !contains(times, now.In(e.loc).Format(dailyTimeLayout)) {
			return Decision{Reason: ReasonNotThisMinute}, nil
		}
		message = command.DailyFeedMessage
	}

	w, err := e.Window(sa.Schedule, now)
	if err != nil {
		return Decision{}, err
	}

	if ev.LastFeeding != nil && w.Contains(ev.LastFeeding.TS) {
		return Decision{Reason: ReasonFedRecently}, nil
	}
	if ev.LastCommand != nil && w.Contains(ev.LastCommand.TS) {
		return Decision{Reason: ReasonCommandPending}, nil
	}

	return Decision{
		Due:    true,
		Reason: ReasonDue,
		Command: &models.Alert{
			AquariumID: sa.AquariumID,
			TS:         now.UTC(),
			Type:       models.AlertTypeFeedCommand,
			Message:    message(feedVolume(sa)),
		},
	}, nil
}

// feedVolume prefers the schedule's volume over the aquarium's default.
func feedVolume(sa models.ScheduleWithAquarium) decimal.NullDecimal {
	if sa.FeedVolumeGrams.Valid {
		return sa.FeedVolumeGrams
	}
	return sa.Aquarium.FeedingVolumeGrams
}

func parseDailyTimes(s models.Schedule) ([]string, error) {
	raw := strings.TrimSpace(s.DailyTimes)
	if raw == "" {
		return nil, fmt.Errorf("%w: schedule %d: daily_times is empty", ErrScheduleMisconfigured, s.ID)
	}
	var times []string
	if err := json.Unmarshal([]byte(raw), &times); err != nil {
		return nil, fmt.Errorf("%w: schedule %d: daily_times is not a JSON array of strings: %v", ErrScheduleMisconfigured, s.ID, err)
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("%w: schedule %d: daily_times is empty", ErrScheduleMisconfigured, s.ID)
	}
	return times, nil
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if strings.TrimSpace(s) == want {
			return true
		}
	}
	return false
}
