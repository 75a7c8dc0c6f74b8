// Package cmd provides the CLI commands for cloud-fee.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cloud-fee/core/compare"
	"cloud-fee/core/output"
	"cloud-fee/internal/config"
	"cloud-fee/internal/logging"
)

// Version is overridden at build time with -ldflags
var Version = "0.1.0"

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	cfgFile string
	verbose bool
	format  string
	noColor bool
}

// newRootCmd builds the command tree. Each call returns a fresh tree so
// flag state never leaks between executions.
func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "cloud-fee",
		Short: "Estimate and compare cloud service fees",
		Long: `cloud-fee estimates monthly fees of managed cloud services from usage
figures and compares AWS with Cloudflare across a usage sweep.

Examples:
  cloud-fee fee queue --provider aws-sqs --messages 2000000 --message-per-batch 10 --message-size 10
  cloud-fee fee serverless --provider cloudflare-workers --requests 20000000 --elapsed 100
  cloud-fee compare storage --class-a 1000000 --class-b 10000000 --egress 100
  cloud-fee compare --file scenario.hcl --format json`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (json, yaml or toml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "", "output format (cli, json); defaults to output.default_format")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newFeeCmd(opts))
	rootCmd.AddCommand(newCompareCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	return newRootCmd().Execute()
}

func initConfig(opts *globalOptions) error {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	config.Set(cfg)

	level := cfg.Logging.Level
	if opts.verbose {
		level = "debug"
	}
	if err := logging.SetLevel(cfg.Logging, level); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}

	if opts.cfgFile != "" {
		if _, err := os.Stat(opts.cfgFile); errors.Is(err, fs.ErrNotExist) {
			logging.Warn("config file not found, using defaults", zap.String("config", opts.cfgFile))
		}
	}

	logging.Debug("configuration loaded",
		zap.String("config", opts.cfgFile),
		zap.String("format", cfg.Output.DefaultFormat),
	)
	return nil
}

// formatter resolves the output format from the flag or the config
func (o *globalOptions) formatter() (output.Formatter, error) {
	cfg := config.Get()
	format := o.format
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	return output.New(format, output.Options{
		ShowDetails: cfg.Output.ShowDetails,
		Color:       cfg.Output.Color && !o.noColor,
	})
}

// defaultSample is the sweep used when no sample flags are given
func defaultSample() compare.SampleFactor {
	cfg := config.Get()
	return compare.SampleFactor{Step: cfg.Sample.Step, Count: cfg.Sample.Count}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "cloud-fee version %s\n", Version)
}
