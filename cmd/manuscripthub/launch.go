package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/chislo/manuscripthub/internal/config"
	"github.com/chislo/manuscripthub/internal/launcher"
	"github.com/chislo/manuscripthub/internal/logger"
)

var launchForeground bool

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Start both apps and print their URLs",
	Long: `Starts the Journal Finder and the Manuscript Checker as background
processes, prints their URLs, and exits after a keypress. The apps
keep running after the launcher exits.

With --foreground, both apps run inside the launcher process instead
and the launcher blocks until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if launchForeground {
			return runForeground()
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logger.New(cfg, "manuscripthub-launcher")

		l := &launcher.Launcher{
			Out:    cmd.OutOrStdout(),
			In:     os.Stdin,
			Logger: log,
		}
		return l.Run()
	},
}

func init() {
	launchCmd.Flags().BoolVar(&launchForeground, "foreground", false,
		"run both apps inside this process instead of spawning children")
}

// runForeground runs both apps in one process, stopping both when
// either fails or a signal arrives.
func runForeground() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return runApp("finder") })
	g.Go(func() error { return runApp("checker") })
	return g.Wait()
}
