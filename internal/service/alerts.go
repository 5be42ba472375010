package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aquascape/internal/command"
	"aquascape/internal/models"
	"aquascape/internal/repository"

	"github.com/shopspring/decimal"
)

type AlertService struct {
	aquariums repository.AquariumRepo
	alerts    repository.AlertRepo
	now       func() time.Time
}

func NewAlertService(aquariums repository.AquariumRepo, alerts repository.AlertRepo) *AlertService {
	return &AlertService{aquariums: aquariums, alerts: alerts, now: time.Now}
}

// normalizeAlertType trims spaces and uppercases the alert type.
func normalizeAlertType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// Create stores a notification or a raw command alert.
func (s *AlertService) Create(ctx context.Context, userID int64, in AlertInput) (models.Alert, error) {
	if _, err := ownedAquarium(ctx, s.aquariums, userID, in.AquariumID); err != nil {
		return models.Alert{}, err
	}
	typ := normalizeAlertType(in.Type)
	if typ == "" {
		return models.Alert{}, invalidf("type is required")
	}
	return s.create(ctx, models.Alert{AquariumID: in.AquariumID, Type: typ, Message: in.Message})
}

// List returns the aquarium's alerts oldest first.
func (s *AlertService) List(ctx context.Context, userID int64, f AlertFilter) ([]models.Alert, error) {
	if _, err := ownedAquarium(ctx, s.aquariums, userID, f.AquariumID); err != nil {
		return nil, err
	}
	return s.alerts.List(ctx, repository.AlertFilter{
		AquariumID: f.AquariumID,
		Type:       normalizeAlertType(f.Type),
		Resolved:   f.Resolved,
	})
}

// Delete removes an alert. Devices acknowledge executed commands this way.
func (s *AlertService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.ownedAlert(ctx, userID, id); err != nil {
		return err
	}
	return s.alerts.Delete(ctx, id)
}

// Resolve flags a notification as handled. Resolving twice keeps the first
// resolved_at. Commands are acknowledged by deletion and cannot be resolved.
func (s *AlertService) Resolve(ctx context.Context, userID, id int64) (models.Alert, error) {
	a, err := s.ownedAlert(ctx, userID, id)
	if err != nil {
		return models.Alert{}, err
	}
	if models.IsCommandType(a.Type) {
		return models.Alert{}, invalidf("alert %d is a command; commands are acknowledged by deletion", id)
	}
	if a.Resolved {
		return *a, nil
	}

	at := s.now().UTC()
	if err := s.alerts.Resolve(ctx, id, at); err != nil {
		return models.Alert{}, err
	}
	a.Resolved = true
	a.ResolvedAt = &at
	return *a, nil
}

// FeedNow queues a manual feed for the aquarium's device.
func (s *AlertService) FeedNow(ctx context.Context, userID, aquariumID int64, volume decimal.NullDecimal) (models.Alert, error) {
	if _, err := ownedAquarium(ctx, s.aquariums, userID, aquariumID); err != nil {
		return models.Alert{}, err
	}
	if err := validateGrams("volume", volume); err != nil {
		return models.Alert{}, err
	}
	return s.create(ctx, models.Alert{
		AquariumID: aquariumID,
		Type:       models.AlertTypeFeedCommand,
		Message:    command.FeedNowMessage(volume),
	})
}

// UpdateSettings queues a settings change for the aquarium's device.
func (s *AlertService) UpdateSettings(ctx context.Context, userID, aquariumID int64, u command.UpdateSettings) (models.Alert, error) {
	if _, err := ownedAquarium(ctx, s.aquariums, userID, aquariumID); err != nil {
		return models.Alert{}, err
	}
	if u.Empty() {
		return models.Alert{}, invalidf("no settings to update")
	}
	if err := validateGrams("feeding_volume_grams", u.FeedingVolumeGrams); err != nil {
		return models.Alert{}, err
	}
	return s.create(ctx, models.Alert{
		AquariumID: aquariumID,
		Type:       models.AlertTypeSettingsCommand,
		Message:    command.UpdateSettingsMessage(u),
	})
}

func (s *AlertService) create(ctx context.Context, a models.Alert) (models.Alert, error) {
	a.TS = s.now().UTC()
	id, err := s.alerts.Create(ctx, a)
	if err != nil {
		return models.Alert{}, err
	}
	a.ID = id
	return a, nil
}

func (s *AlertService) ownedAlert(ctx context.Context, userID, id int64) (*models.Alert, error) {
	a, err := s.alerts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("alert %d: %w", id, ErrNotFound)
	}
	if _, err := ownedAquarium(ctx, s.aquariums, userID, a.AquariumID); err != nil {
		return nil, err
	}
	return a, nil
}
