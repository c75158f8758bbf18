package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/lurespread/pkg/logger"
	"github.com/spf13/cobra"
)

const defaultCatalog = "configs/catalog.yaml"

func newRootCmd() *cobra.Command {
	var catalogPath, logLevel string

	root := &cobra.Command{
		Use:   "spreadctl",
		Short: "Recommend a trolling lure spread offline",
		Long: `spreadctl runs the spread engine against a YAML lure catalog without a server.

It prints the recommended lures, their positions and distances, and the boat speed.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logger.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			if err := logger.InitWithOptions(logger.WithWriter(cmd.ErrOrStderr()), logger.WithLevel(level)); err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&catalogPath, "catalog", defaultCatalog, "lure catalog YAML file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(recommendCmd(&catalogPath))
	root.AddCommand(luresCmd(&catalogPath))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
