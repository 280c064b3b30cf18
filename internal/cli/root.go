// Package cli implements the digitpad command line: the drawing window
// by default, and an advertise subcommand that announces a predictor on
// the local network.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"DigitPad/internal/config"
	"DigitPad/internal/discovery"
	"DigitPad/internal/pad"
	"DigitPad/internal/predict"
	"DigitPad/internal/ui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const (
	browseTimeout = 3 * time.Second
	healthTimeout = 2 * time.Second
)

var version = "dev"

// SetVersion sets the string shown by --version.
func SetVersion(v string) { version = v }

type rootOptions struct {
	configPath string
	endpoint   string
	discover   bool
	verbose    bool
}

// Execute runs the command tree under ctx.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:          "digitpad",
		Short:        "Draw a digit and ask a model what it is",
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPad(cmd, opts)
		},
	}

	bindRootFlags(root, &opts)
	root.AddCommand(newAdvertiseCmd())
	return root
}

func bindRootFlags(cmd *cobra.Command, opts *rootOptions) {
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to a TOML config file")
	cmd.Flags().StringVarP(&opts.endpoint, "endpoint", "e", "", "prediction endpoint URL")
	cmd.Flags().BoolVar(&opts.discover, "discover", false, "find the predictor over mDNS")
}

// loadConfig reads the config file and applies flags set on cmd.
func loadConfig(cmd *cobra.Command, opts rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("endpoint") {
		cfg.Endpoint = opts.endpoint
	}
	if cmd.Flags().Changed("discover") {
		cfg.Discover = opts.discover
	}
	return cfg, cfg.Validate()
}

// resolveEndpoint prefers a discovered predictor when discovery is on and
// falls back to the configured endpoint.
func resolveEndpoint(ctx context.Context, cfg config.Config, logger *log.Logger) (string, error) {
	if !cfg.Discover {
		return cfg.Endpoint, nil
	}
	url, err := discovery.Browse(ctx, cfg.DiscoverService, browseTimeout)
	if err == nil {
		logger.Info("discovered predictor", "endpoint", url)
		return url, nil
	}
	if cfg.Endpoint == "" {
		return "", fmt.Errorf("discover %s: %w", cfg.DiscoverService, err)
	}
	logger.Warn("discovery failed, using configured endpoint", "err", err, "endpoint", cfg.Endpoint)
	return cfg.Endpoint, nil
}

func runPad(cmd *cobra.Command, opts rootOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	endpoint, err := resolveEndpoint(ctx, cfg, logger)
	if err != nil {
		return err
	}

	client := predict.NewClient(endpoint, cfg.RequestTimeout.Duration, logger)
	hctx, cancel := context.WithTimeout(ctx, healthTimeout)
	if err := client.Health(hctx); err != nil {
		logger.Warn("predictor not reachable yet", "endpoint", endpoint, "err", err)
	}
	cancel()

	ctrl := pad.NewController(client, pad.OptionsFromConfig(cfg, logger))
	logger.Info("starting", "endpoint", endpoint, "canvas", fmt.Sprintf("%dx%d", cfg.Canvas.Width, cfg.Canvas.Height))
	ui.RunApp(ctx, ctrl, cfg, logger)
	return nil
}
