package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSchedulerCmd(cfgPath func() string) *cobra.Command {
	var (
		once bool
		loop time.Duration
	)

	cmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Evaluate feeding schedules once or in a loop",
		Example: "  aquascape scheduler --once\n" +
			"  aquascape scheduler --loop 60s",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if once && loop > 0 {
				return fmt.Errorf("--once and --loop are mutually exclusive")
			}

			a, err := openApp(cfgPath())
			if err != nil {
				return err
			}
			defer a.Close()

			services, err := a.services()
			if err != nil {
				return err
			}

			if once {
				r, err := services.Scheduler.RunOnce(cmd.Context())
				if err != nil {
					return err
				}
				if !r.Acquired {
					fmt.Fprintln(cmd.OutOrStdout(), "lock held by another instance; nothing done")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "evaluated=%d emitted=%d failed=%d\n", r.Evaluated, r.Emitted, r.Failed)
				return nil
			}

			interval := loop
			if interval <= 0 {
				interval = a.cfg.Scheduler.Interval
			}
			services.Scheduler.Run(cmd.Context(), interval)
			return nil
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "run a single cycle and exit")
	cmd.Flags().DurationVar(&loop, "loop", 0, "cycle interval (default scheduler.interval)")
	return cmd
}
