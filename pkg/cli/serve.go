package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	httpctrl "github.com/secmon-lab/brolife/pkg/controller/http"
	"github.com/secmon-lab/brolife/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var rateLimit float64
	var rateBurst int
	var appCfg appConfig

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("BROLIFE_ADDR"),
			Destination: &addr,
		},
		&cli.FloatFlag{
			Name:        "rate-limit",
			Usage:       "Sustained AI-backed requests per second per client (0 disables limiting)",
			Value:       httpctrl.DefaultRateLimit,
			Sources:     cli.EnvVars("BROLIFE_RATE_LIMIT"),
			Destination: &rateLimit,
		},
		&cli.IntFlag{
			Name:        "rate-burst",
			Usage:       "AI-backed requests a client may send at once",
			Value:       httpctrl.DefaultRateBurst,
			Sources:     cli.EnvVars("BROLIFE_RATE_BURST"),
			Destination: &rateBurst,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := appCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeRepository(ctx, a.repo)

			server := &http.Server{
				Addr: addr,
				Handler: httpctrl.New(a.uc,
					httpctrl.WithVersion(version),
					httpctrl.WithRateLimit(rateLimit, rateBurst),
				),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "version", version)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "failed to start server", goerr.V("addr", addr))
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logging.Default().Info("Context canceled, shutting down")
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
