package device

import (
	"context"
	"time"

	"aquascape/internal/logger"
)

const (
	DefaultPublishInterval = 20 * time.Second
	DefaultPollInterval    = 15 * time.Second
)

// RunnerConfig drives one simulated device.
type RunnerConfig struct {
	AquariumID      int64
	PublishInterval time.Duration
	PollInterval    time.Duration
	DisablePublish  bool // only execute commands
}

// Runner publishes readings and polls commands on independent tickers.
type Runner struct {
	cfg       RunnerConfig
	sim       *Simulator
	processor *Processor
	log       *logger.Logger
}

func NewRunner(cfg RunnerConfig, sim *Simulator, processor *Processor, log *logger.Logger) *Runner {
	if cfg.PublishInterval <= 0 {
		cfg.PublishInterval = DefaultPublishInterval
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{cfg: cfg, sim: sim, processor: processor, log: log}
}

// Run publishes and polls once right away, then on every tick until ctx is
// canceled. Failures are logged and retried on the next tick.
func (r *Runner) Run(ctx context.Context) {
	r.log.Infow("device_started",
		"aquarium_id", r.cfg.AquariumID,
		"publish_interval", r.cfg.PublishInterval.String(),
		"poll_interval", r.cfg.PollInterval.String(),
	)

	pub := time.NewTicker(r.cfg.PublishInterval)
	defer pub.Stop()
	poll := time.NewTicker(r.cfg.PollInterval)
	defer poll.Stop()

	r.publish(ctx)
	r.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			r.log.Infow("device_stopped", "aquarium_id", r.cfg.AquariumID)
			return
		case <-pub.C:
			r.publish(ctx)
		case <-poll.C:
			r.poll(ctx)
		}
	}
}

func (r *Runner) publish(ctx context.Context) {
	if r.cfg.DisablePublish || r.sim == nil {
		return
	}
	if _, err := r.sim.Publish(ctx); err != nil {
		r.log.Warnw("device_publish_failed", "aquarium_id", r.cfg.AquariumID, "err", err)
	}
}

func (r *Runner) poll(ctx context.Context) {
	rep, err := r.processor.Poll(ctx, r.cfg.AquariumID)
	if err != nil {
		r.log.Warnw("device_poll_failed", "aquarium_id", r.cfg.AquariumID, "err", err)
		return
	}
	if rep.Executed+rep.Failed+rep.Dropped > 0 {
		r.log.Infow("device_poll_done",
			"aquarium_id", r.cfg.AquariumID,
			"executed", rep.Executed,
			"dropped", rep.Dropped,
			"failed", rep.Failed,
		)
	}
}
