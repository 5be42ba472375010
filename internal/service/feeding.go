package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"aquascape/internal/models"
	"aquascape/internal/repository"
)

type FeedingService struct {
	aquariums repository.AquariumRepo
	feedings  repository.FeedingLogRepo
	now       func() time.Time
}

func NewFeedingService(aquariums repository.AquariumRepo, feedings repository.FeedingLogRepo) *FeedingService {
	return &FeedingService{aquariums: aquariums, feedings: feedings, now: time.Now}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeMode trims spaces and uppercases the feeding mode.
func normalizeMode(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// Record appends a feeding log. Devices call this when executing a feed command.
func (s *FeedingService) Record(ctx context.Context, userID int64, in FeedingInput) (models.FeedingLog, error) {
	if _, err := ownedAquarium(ctx, s.aquariums, userID, in.AquariumID); err != nil {
		return models.FeedingLog{}, err
	}

	mode := normalizeMode(in.Mode)
	if mode != models.FeedModeAuto && mode != models.FeedModeManual {
		return models.FeedingLog{}, invalidf("mode must be AUTO or MANUAL, got %q", in.Mode)
	}
	if err := validateGrams("volume_grams", in.VolumeGrams); err != nil {
		return models.FeedingLog{}, err
	}

	l := models.FeedingLog{
		AquariumID:  in.AquariumID,
		TS:          s.now().UTC(),
		Mode:        mode,
		VolumeGrams: in.VolumeGrams,
		Actor:       strings.TrimSpace(in.Actor),
	}
	if in.TS != nil {
		l.TS = in.TS.UTC()
	}
	if l.Actor == "" {
		l.Actor = strconv.FormatInt(userID, 10)
	}

	id, err := s.feedings.Append(ctx, l)
	if err != nil {
		return models.FeedingLog{}, err
	}
	l.ID = id
	return l, nil
}

// List returns feeding logs newest first.
func (s *FeedingService) List(ctx context.Context, userID int64, f HistoryFilter) ([]models.FeedingLog, error) {
	if _, err := ownedAquarium(ctx, s.aquariums, userID, f.AquariumID); err != nil {
		return nil, err
	}
	return s.feedings.List(ctx, f.AquariumID, normalizeToUTC(f.From))
}
