// Package device is the device-side actor: it publishes sensor readings,
// raises danger alerts and executes the commands queued for its aquarium.
// It talks to the server only through API.
package device

import (
	"context"

	"aquascape/internal/models"
	"aquascape/internal/service"
)

// API is the slice of the HTTP surface a device uses. A missing resource is
// reported as an error wrapping service.ErrNotFound.
type API interface {
	GetAquarium(ctx context.Context, id int64) (models.Aquarium, error)
	UpdateAquarium(ctx context.Context, id int64, in service.AquariumInput) (models.Aquarium, error)

	ListAlerts(ctx context.Context, aquariumID int64) ([]models.Alert, error)
	CreateAlert(ctx context.Context, in service.AlertInput) (models.Alert, error)
	DeleteAlert(ctx context.Context, id int64) error

	RecordFeeding(ctx context.Context, in service.FeedingInput) (models.FeedingLog, error)
	PostReading(ctx context.Context, in service.SensorInput) (models.SensorReading, error)
}

// aquariumInput turns a stored aquarium back into the full PUT body.
func aquariumInput(a models.Aquarium) service.AquariumInput {
	since := a.ActiveSince
	return service.AquariumInput{
		Name:               a.Name,
		SizeLitres:         a.SizeLitres,
		DeviceUID:          a.DeviceUID,
		FeedingVolumeGrams: a.FeedingVolumeGrams,
		FeedingPeriodHours: a.FeedingPeriodHours,
		ActiveSince:        &since,
	}
}
