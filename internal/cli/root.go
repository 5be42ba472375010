// Package cli holds the aquascape command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Subcommands read configuration lazily
// so --help works without a config file.
func NewRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "aquascape",
		Short:         "Aquarium telemetry and feeding scheduler",
		Long:          "aquascape serves the aquarium API, runs the feeding scheduler and simulates devices.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default configs/config.yml)")

	cfgPath := func() string { return configFile }
	root.AddCommand(
		newServeCmd(cfgPath),
		newSchedulerCmd(cfgPath),
		newDeviceCmd(cfgPath),
		newAlertsCmd(cfgPath),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
