package cli

import (
	"context"
	"errors"
	"sync"
	"time"

	"aquascape/internal/handlers"
	"aquascape/internal/server"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(cfgPath func() string) *cobra.Command {
	var noScheduler bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, optionally with the embedded scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cfgPath())
			if err != nil {
				return err
			}
			defer a.Close()

			services, err := a.services()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			var wg sync.WaitGroup
			if a.cfg.Scheduler.Embedded && !noScheduler {
				wg.Add(1)
				go func() {
					defer wg.Done()
					services.Scheduler.Run(ctx, a.cfg.Scheduler.Interval)
				}()
			}

			srv := &server.Server{}
			errCh := make(chan error, 1)
			go func() {
				a.log.Infow("http_listen", "port", a.cfg.Port)
				errCh <- srv.Run(a.cfg.Port, handlers.NewHandler(services, a.log).InitRoutes())
			}()

			var runErr error
			select {
			case <-ctx.Done():
				a.log.Infow("shutting down server...")
			case runErr = <-errCh:
				if runErr != nil {
					a.log.Errorw("http_server_failed", "err", runErr)
				}
			}

			// stop background goroutines
			cancel()

			// allow in-flight requests to complete
			sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer scancel()
			if err := srv.Shutdown(sctx); err != nil && !errors.Is(err, context.Canceled) {
				a.log.Errorw("server forced to shutdown", "err", err)
			}
			wg.Wait()
			return runErr
		},
	}
	cmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "do not run the embedded scheduler")
	return cmd
}
