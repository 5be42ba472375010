package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"aquascape/internal/models"
	"aquascape/internal/repository"
)

const dailyTimeLayout = "15:04"

type ScheduleService struct {
	aquariums repository.AquariumRepo
	schedules repository.ScheduleRepo
}

func NewScheduleService(aquariums repository.AquariumRepo, schedules repository.ScheduleRepo) *ScheduleService {
	return &ScheduleService{aquariums: aquariums, schedules: schedules}
}

func (s *ScheduleService) Create(ctx context.Context, userID int64, in ScheduleInput) (models.Schedule, error) {
	if _, err := ownedAquarium(ctx, s.aquariums, userID, in.AquariumID); err != nil {
		return models.Schedule{}, err
	}
	sch, err := scheduleFromInput(in)
	if err != nil {
		return models.Schedule{}, err
	}

	id, err := s.schedules.Create(ctx, sch)
	if err != nil {
		return models.Schedule{}, err
	}
	sch.ID = id
	return sch, nil
}

func (s *ScheduleService) Get(ctx context.Context, userID, id int64) (models.Schedule, error) {
	sch, err := s.ownedSchedule(ctx, userID, id)
	if err != nil {
		return models.Schedule{}, err
	}
	return *sch, nil
}

func (s *ScheduleService) List(ctx context.Context, userID, aquariumID int64) ([]models.Schedule, error) {
	if _, err := ownedAquarium(ctx, s.aquariums, userID, aquariumID); err != nil {
		return nil, err
	}
	return s.schedules.ListByAquarium(ctx, aquariumID)
}

// Update replaces the schedule. The aquarium cannot change.
func (s *ScheduleService) Update(ctx context.Context, userID, id int64, in ScheduleInput) (models.Schedule, error) {
	cur, err := s.ownedSchedule(ctx, userID, id)
	if err != nil {
		return models.Schedule{}, err
	}
	in.AquariumID = cur.AquariumID
	sch, err := scheduleFromInput(in)
	if err != nil {
		return models.Schedule{}, err
	}
	sch.ID = id

	if err := s.schedules.Update(ctx, sch); err != nil {
		return models.Schedule{}, err
	}
	return sch, nil
}

func (s *ScheduleService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.ownedSchedule(ctx, userID, id); err != nil {
		return err
	}
	return s.schedules.Delete(ctx, id)
}

func (s *ScheduleService) ownedSchedule(ctx context.Context, userID, id int64) (*models.Schedule, error) {
	sch, err := s.schedules.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sch == nil {
		return nil, fmt.Errorf("schedule %d: %w", id, ErrNotFound)
	}
	if _, err := ownedAquarium(ctx, s.aquariums, userID, sch.AquariumID); err != nil {
		return nil, err
	}
	return sch, nil
}

// scheduleFromInput validates the input and builds the stored form.
// start_date/end_date are stored as given; nothing enforces them yet.
func scheduleFromInput(in ScheduleInput) (models.Schedule, error) {
	sch := models.Schedule{
		AquariumID:      in.AquariumID,
		Name:            strings.TrimSpace(in.Name),
		Type:            strings.TrimSpace(strings.ToLower(in.Type)),
		FeedVolumeGrams: in.FeedVolumeGrams,
		Enabled:         true,
		StartDate:       utcOrNil(in.StartDate),
		EndDate:         utcOrNil(in.EndDate),
	}
	if in.Enabled != nil {
		sch.Enabled = *in.Enabled
	}
	if err := validateGrams("feed_volume_grams", in.FeedVolumeGrams); err != nil {
		return models.Schedule{}, err
	}
	if sch.StartDate != nil && sch.EndDate != nil && sch.StartDate.After(*sch.EndDate) {
		return models.Schedule{}, invalidf("start_date must be <= end_date")
	}

	switch sch.Type {
	case models.ScheduleTypeInterval:
		if in.IntervalHours == nil {
			return models.Schedule{}, invalidf("interval_hours is required for interval schedules")
		}
		if *in.IntervalHours < 0 || *in.IntervalHours > MaxIntervalHours {
			return models.Schedule{}, invalidf("interval_hours must be between 0 and %d", MaxIntervalHours)
		}
		h := *in.IntervalHours
		sch.IntervalHours = &h
	case models.ScheduleTypeDailyTimes:
		times, err := normalizeDailyTimes(in.DailyTimes)
		if err != nil {
			return models.Schedule{}, err
		}
		b, err := json.Marshal(times)
		if err != nil {
			return models.Schedule{}, fmt.Errorf("encode daily_times: %w", err)
		}
		sch.DailyTimes = string(b)
	default:
		return models.Schedule{}, invalidf("type must be %q or %q", models.ScheduleTypeInterval, models.ScheduleTypeDailyTimes)
	}
	return sch, nil
}

// normalizeDailyTimes accepts "H:MM" or "HH:MM" and returns canonical "HH:MM"
// values, since the evaluator compares them as strings.
func normalizeDailyTimes(in []string) ([]string, error) {
	if len(in) == 0 {
		return nil, invalidf("daily_times must list at least one HH:MM")
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, raw := range in {
		t, err := time.Parse(dailyTimeLayout, strings.TrimSpace(raw))
		if err != nil {
			return nil, invalidf("daily_times entry %q is not HH:MM", raw)
		}
		hm := t.Format(dailyTimeLayout)
		if seen[hm] {
			continue
		}
		seen[hm] = true
		out = append(out, hm)
	}
	return out, nil
}

func utcOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
