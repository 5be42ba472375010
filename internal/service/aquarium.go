package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aquascape/internal/models"
	"aquascape/internal/repository"

	"github.com/shopspring/decimal"
)

type AquariumService struct {
	repo repository.AquariumRepo
	now  func() time.Time
}

func NewAquariumService(repo repository.AquariumRepo) *AquariumService {
	return &AquariumService{repo: repo, now: time.Now}
}

func (s *AquariumService) Create(ctx context.Context, userID int64, in AquariumInput) (models.Aquarium, error) {
	if err := validateAquarium(in); err != nil {
		return models.Aquarium{}, err
	}
	now := s.now().UTC()
	a := models.Aquarium{
		UserID:             userID,
		Name:               strings.TrimSpace(in.Name),
		SizeLitres:         in.SizeLitres,
		DeviceUID:          strings.TrimSpace(in.DeviceUID),
		FeedingVolumeGrams: in.FeedingVolumeGrams,
		FeedingPeriodHours: in.FeedingPeriodHours,
		ActiveSince:        now,
		CreatedAt:          now,
	}
	if in.ActiveSince != nil {
		a.ActiveSince = in.ActiveSince.UTC()
	}

	id, err := s.repo.Create(ctx, a)
	if err != nil {
		return models.Aquarium{}, err
	}
	a.ID = id
	return a, nil
}

func (s *AquariumService) Get(ctx context.Context, userID, id int64) (models.Aquarium, error) {
	a, err := ownedAquarium(ctx, s.repo, userID, id)
	if err != nil {
		return models.Aquarium{}, err
	}
	return *a, nil
}

func (s *AquariumService) List(ctx context.Context, userID int64) ([]models.Aquarium, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update replaces the writable fields. ActiveSince is kept unless given.
func (s *AquariumService) Update(ctx context.Context, userID, id int64, in AquariumInput) (models.Aquarium, error) {
	if err := validateAquarium(in); err != nil {
		return models.Aquarium{}, err
	}
	a, err := ownedAquarium(ctx, s.repo, userID, id)
	if err != nil {
		return models.Aquarium{}, err
	}

	a.Name = strings.TrimSpace(in.Name)
	a.SizeLitres = in.SizeLitres
	a.DeviceUID = strings.TrimSpace(in.DeviceUID)
	a.FeedingVolumeGrams = in.FeedingVolumeGrams
	a.FeedingPeriodHours = in.FeedingPeriodHours

	if err := s.repo.Update(ctx, *a); err != nil {
		return models.Aquarium{}, err
	}
	return *a, nil
}

func (s *AquariumService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := ownedAquarium(ctx, s.repo, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func validateAquarium(in AquariumInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalidf("name is required")
	}
	if in.SizeLitres.Valid && !in.SizeLitres.Decimal.IsPositive() {
		return invalidf("size_litres must be > 0")
	}
	if err := validateGrams("feeding_volume_grams", in.FeedingVolumeGrams); err != nil {
		return err
	}
	if in.FeedingPeriodHours != nil && *in.FeedingPeriodHours <= 0 {
		return invalidf("feeding_period_hours must be > 0")
	}
	return nil
}

func validateGrams(field string, v decimal.NullDecimal) error {
	if v.Valid && v.Decimal.IsNegative() {
		return invalidf("%s must be >= 0", field)
	}
	return nil
}

// ownedAquarium loads an aquarium and checks that userID owns it.
func ownedAquarium(ctx context.Context, repo repository.AquariumRepo, userID, aquariumID int64) (*models.Aquarium, error) {
	if aquariumID <= 0 {
		return nil, invalidf("aquarium_id is required")
	}
	a, err := repo.Get(ctx, aquariumID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("aquarium %d: %w", aquariumID, ErrNotFound)
	}
	if a.UserID != userID {
		return nil, fmt.Errorf("aquarium %d: %w", aquariumID, ErrForbidden)
	}
	return a, nil
}
