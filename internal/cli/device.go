package cli

import (
	"errors"
	"fmt"

	"aquascape/internal/client"
	"aquascape/internal/device"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newDeviceCmd(cfgPath func() string) *cobra.Command {
	var (
		aquariumID int64
		noPublish  bool
	)

	cmd := &cobra.Command{
		Use:   "device",
		Short: "Simulate an aquarium device against the HTTP API",
		Long: "device publishes random-walk sensor readings, raises danger alerts and\n" +
			"executes the feed and settings commands queued for its aquarium.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if aquariumID <= 0 {
				return errors.New("--aquarium-id is required")
			}
			cfg, log, err := loadConfig(cfgPath())
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			api := client.New(cfg.Device.APIURL, client.DefaultTimeout)
			switch {
			case cfg.Device.Token != "":
				api.WithToken(cfg.Device.Token)
			case cfg.Device.Username != "":
				if _, err := api.SignIn(cmd.Context(), cfg.Device.Username, cfg.Device.Password); err != nil {
					return fmt.Errorf("device sign-in: %w", err)
				}
			default:
				return errors.New("device.token or device.username/password must be set")
			}

			uid := cfg.Device.UID
			if uid == "" {
				uid = "sim-" + uuid.NewString()[:8]
			}
			log = log.With("device_uid", uid, "aquarium_id", aquariumID)

			th := device.Thresholds{TempMax: cfg.Danger.TempMax, PHMin: cfg.Danger.PHMin, PHMax: cfg.Danger.PHMax}
			runner := device.NewRunner(device.RunnerConfig{
				AquariumID:      aquariumID,
				PublishInterval: cfg.Device.PublishInterval,
				PollInterval:    cfg.Device.PollInterval,
				DisablePublish:  noPublish,
			},
				device.NewSimulator(api, aquariumID, th, log),
				device.NewProcessor(api, uid, log),
				log,
			)

			log.Infow("device_started", "api_url", cfg.Device.APIURL)
			runner.Run(cmd.Context())
			log.Infow("device_stopped")
			return nil
		},
	}
	cmd.Flags().Int64Var(&aquariumID, "aquarium-id", 0, "aquarium the device belongs to")
	cmd.Flags().BoolVar(&noPublish, "no-publish", false, "only execute commands, do not publish readings")
	return cmd
}
