package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/pullview/internal/app"
	"github.com/five82/pullview/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "pullview: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options
	var haptics bool

	cmd := &cobra.Command{
		Use:   "pullview [file|url]",
		Short: "Pull down to refresh a log file or HTTP feed in the terminal",
		Long: `pullview shows the tail of a file or the body of an HTTP endpoint.
Scroll past the top (k, up arrow or mouse wheel) beyond the threshold and let
go to refresh; r refreshes immediately.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Source = args[0]
			}
			if cmd.Flags().Changed("haptics") {
				opts.Haptics = &haptics
			}
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config path (default ~/.config/pullview/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "prefs path (default ~/.config/pullview/prefs.toml)")
	flags.Float64Var(&opts.Threshold, "threshold", 0, "pull distance that arms a refresh")
	flags.BoolVar(&haptics, "haptics", false, "ring the terminal bell on prime and finish")
	flags.StringVar(&opts.Indicator, "indicator", "", fmt.Sprintf("progress indicator: %s, %s or %s",
		config.IndicatorSpinner, config.IndicatorBar, config.IndicatorArrow))
	return cmd
}
