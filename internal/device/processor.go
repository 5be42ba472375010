package device

import (
	"context"
	"errors"
	"fmt"

	"aquascape/internal/command"
	"aquascape/internal/logger"
	"aquascape/internal/metrics"
	"aquascape/internal/models"
	"aquascape/internal/service"

	"github.com/shopspring/decimal"
)

// defaultFeedGrams is dispensed when neither the aquarium nor the command names a volume.
var defaultFeedGrams = decimal.NewFromInt(1)

// PollReport counts what one Poll did.
type PollReport struct {
	Seen     int // alerts listed
	Executed int // commands executed and acknowledged
	Dropped  int // unknown or orphaned commands acknowledged without effect
	Failed   int // commands left pending for the next poll
	Skipped  int // notifications
}

// Processor executes the commands queued for one device.
//
// A command is acknowledged by deleting its alert, and only after its effect
// has been written. A crash in between leaves the command pending, so the
// worst case is one duplicate feeding log and never a lost feed.
type Processor struct {
	api      API
	identity string
	log      *logger.Logger
}

// NewProcessor returns a processor that writes feeding logs as identity.
func NewProcessor(api API, identity string, log *logger.Logger) *Processor {
	if identity == "" {
		identity = models.ActorSimulator
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Processor{api: api, identity: identity, log: log}
}

// Poll lists the aquarium's alerts and executes every command among them.
// Only a failure to list is returned; per-command failures are logged and the
// command stays pending.
func (p *Processor) Poll(ctx context.Context, aquariumID int64) (PollReport, error) {
	alerts, err := p.api.ListAlerts(ctx, aquariumID)
	if err != nil {
		return PollReport{}, fmt.Errorf("list alerts for aquarium %d: %w", aquariumID, err)
	}

	r := PollReport{Seen: len(alerts)}
	for _, a := range alerts {
		cmd, err := command.Decode(a)
		switch {
		case errors.Is(err, command.ErrNotCommand):
			r.Skipped++
			continue
		case errors.Is(err, command.ErrUnknownCommand):
			p.log.Warnw("device_command_unknown", "alert_id", a.ID, "type", a.Type, "err", err)
			if p.ack(ctx, a) {
				r.Dropped++
				metrics.IncDeviceCommand("unknown", "dropped")
			} else {
				r.Failed++
			}
			continue
		case err != nil:
			p.log.Warnw("device_command_undecodable", "alert_id", a.ID, "err", err)
			r.Failed++
			continue
		}

		kind := commandKind(cmd)
		if err := p.execute(ctx, a, cmd); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				// The aquarium is gone; retrying can never succeed.
				p.log.Warnw("device_command_target_gone", "alert_id", a.ID, "kind", kind, "err", err)
				if p.ack(ctx, a) {
					r.Dropped++
					metrics.IncDeviceCommand(kind, "dropped")
				} else {
					r.Failed++
				}
				continue
			}
			r.Failed++
			metrics.IncDeviceCommand(kind, "failed")
			p.log.Errorw("device_command_failed", "alert_id", a.ID, "kind", kind, "err", err)
			continue
		}
		if !p.ack(ctx, a) {
			r.Failed++
			metrics.IncDeviceCommand(kind, "failed")
			continue
		}
		r.Executed++
		metrics.IncDeviceCommand(kind, "ok")
	}
	return r, nil
}

func (p *Processor) execute(ctx context.Context, a models.Alert, cmd command.Command) error {
	switch c := cmd.(type) {
	case command.Feed:
		return p.feed(ctx, a, c)
	case command.UpdateSettings:
		return p.updateSettings(ctx, a, c)
	default:
		return fmt.Errorf("unhandled command %T", cmd)
	}
}

func (p *Processor) feed(ctx context.Context, a models.Alert, f command.Feed) error {
	in := service.FeedingInput{
		AquariumID: a.AquariumID,
		Mode:       models.FeedModeAuto,
		Actor:      p.identity,
	}

	if f.Manual {
		in.Mode = models.FeedModeManual
		in.VolumeGrams = f.Volume
		if !in.VolumeGrams.Valid {
			in.VolumeGrams = decimal.NewNullDecimal(defaultFeedGrams)
		}
	} else {
		aq, err := p.api.GetAquarium(ctx, a.AquariumID)
		if err != nil {
			return fmt.Errorf("load aquarium %d: %w", a.AquariumID, err)
		}
		in.VolumeGrams = firstValid(aq.FeedingVolumeGrams, f.Volume, decimal.NewNullDecimal(defaultFeedGrams))
	}

	l, err := p.api.RecordFeeding(ctx, in)
	if err != nil {
		return fmt.Errorf("record feeding: %w", err)
	}
	p.log.Infow("device_fed",
		"alert_id", a.ID,
		"aquarium_id", a.AquariumID,
		"feeding_log_id", l.ID,
		"mode", in.Mode,
		"volume_grams", in.VolumeGrams.Decimal.String(),
	)
	return nil
}

func (p *Processor) updateSettings(ctx context.Context, a models.Alert, u command.UpdateSettings) error {
	if u.Empty() {
		p.log.Warnw("device_settings_empty", "alert_id", a.ID, "message", a.Message)
		return nil
	}

	aq, err := p.api.GetAquarium(ctx, a.AquariumID)
	if err != nil {
		return fmt.Errorf("load aquarium %d: %w", a.AquariumID, err)
	}
	u.Apply(&aq)
	if _, err := p.api.UpdateAquarium(ctx, aq.ID, aquariumInput(aq)); err != nil {
		return fmt.Errorf("update aquarium %d: %w", aq.ID, err)
	}
	p.log.Infow("device_settings_updated", "alert_id", a.ID, "aquarium_id", aq.ID)
	return nil
}

// ack deletes the alert and reports whether it succeeded.
func (p *Processor) ack(ctx context.Context, a models.Alert) bool {
	if err := p.api.DeleteAlert(ctx, a.ID); err != nil {
		p.log.Errorw("device_ack_failed", "alert_id", a.ID, "err", err)
		return false
	}
	return true
}

func commandKind(cmd command.Command) string {
	switch c := cmd.(type) {
	case command.Feed:
		if c.Manual {
			return "feed_now"
		}
		return "feed"
	case command.UpdateSettings:
		return "update_settings"
	default:
		return "unknown"
	}
}

func firstValid(vs ...decimal.NullDecimal) decimal.NullDecimal {
	for _, v := range vs {
		if v.Valid {
			return v
		}
	}
	return decimal.NullDecimal{}
}
