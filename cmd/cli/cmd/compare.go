// Package cmd - compare command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cloud-fee/adapters/hcl"
	"cloud-fee/core/compare"
	"cloud-fee/core/fees"
	"cloud-fee/internal/config"
	apperrors "cloud-fee/internal/errors"
	"cloud-fee/internal/logging"
)

type compareOptions struct {
	file  string
	step  float64
	count int
}

func newCompareCmd(opts *globalOptions) *cobra.Command {
	copts := &compareOptions{}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare providers across a usage sweep",
		Long: `Sweep the usage volume of a category and price every point with each
provider. Factors come from flags, from a scenario file, or both; flags
given explicitly override the file.

Without a subcommand, --file is required and every block in the file is
compared.

Examples:
  cloud-fee compare queue --message-per-batch 10 --message-size 10
  cloud-fee compare serverless --elapsed 100 --response-size 0.5 --step 5000000
  cloud-fee compare --file scenario.hcl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if copts.file == "" {
				return cmd.Help()
			}
			return runScenario(cmd, opts, copts)
		},
	}

	compareCmd.PersistentFlags().StringVar(&copts.file, "file", "", "scenario file (HCL)")
	compareCmd.PersistentFlags().Float64Var(&copts.step, "step", 0, "distance between sample points; defaults to sample.step")
	compareCmd.PersistentFlags().IntVar(&copts.count, "count", 0, "number of sample points; defaults to sample.count")

	compareCmd.AddCommand(newQueueCompareCmd(opts, copts))
	compareCmd.AddCommand(newServerlessCompareCmd(opts, copts))
	compareCmd.AddCommand(newStorageCompareCmd(opts, copts))

	return compareCmd
}

func newQueueCompareCmd(opts *globalOptions, copts *compareOptions) *cobra.Command {
	var flags compare.QueueFactors

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Compare AWS SQS with Cloudflare Queues by message volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := flags
			f.Sample = defaultSample()
			if copts.file != "" {
				scenario, err := copts.load()
				if err != nil {
					return err
				}
				if scenario.Queue == nil {
					return missingBlock(copts.file, fees.CategoryQueue)
				}
				f = *scenario.Queue
				overrideFloat(cmd, "message-per-batch", &f.MessagePerBatch, flags.MessagePerBatch)
				overrideFloat(cmd, "message-size", &f.SizeOfMessage, flags.SizeOfMessage)
			}
			f.Sample = copts.sample(cmd, f.Sample)
			if err := f.Sample.Validate(maxSamplePoints()); err != nil {
				return err
			}
			return renderComparison(cmd, opts, compare.Queue(f))
		},
	}

	cmd.Flags().Float64Var(&flags.MessagePerBatch, "message-per-batch", 1, "messages per batch (1-10, AWS SQS only)")
	cmd.Flags().Float64Var(&flags.SizeOfMessage, "message-size", 0, "message size in kB")

	return cmd
}

func newServerlessCompareCmd(opts *globalOptions, copts *compareOptions) *cobra.Command {
	var flags compare.ServerlessFactors

	cmd := &cobra.Command{
		Use:   "serverless",
		Short: "Compare AWS Lambda with Cloudflare Workers by request volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := flags
			f.Sample = defaultSample()
			if copts.file != "" {
				scenario, err := copts.load()
				if err != nil {
					return err
				}
				if scenario.Serverless == nil {
					return missingBlock(copts.file, fees.CategoryServerless)
				}
				f = *scenario.Serverless
				overrideFloat(cmd, "elapsed", &f.ElapsedTimePerRequest, flags.ElapsedTimePerRequest)
				overrideFloat(cmd, "response-size", &f.ResponseBodySize, flags.ResponseBodySize)
				overrideFloat(cmd, "memory", &f.MemorySize, flags.MemorySize)
			}
			f.Sample = copts.sample(cmd, f.Sample)
			if err := f.Sample.Validate(maxSamplePoints()); err != nil {
				return err
			}
			return renderComparison(cmd, opts, compare.Serverless(f))
		},
	}

	cmd.Flags().Float64Var(&flags.ElapsedTimePerRequest, "elapsed", 0, "elapsed time per request in ms")
	cmd.Flags().Float64Var(&flags.ResponseBodySize, "response-size", 0, "response body size in MB")
	cmd.Flags().Float64Var(&flags.MemorySize, "memory", 0, "Lambda memory in MB; defaults to 128")

	return cmd
}

func newStorageCompareCmd(opts *globalOptions, copts *compareOptions) *cobra.Command {
	var flags compare.StorageFactors

	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Compare AWS S3 with Cloudflare R2 by stored volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := flags
			f.Sample = defaultSample()
			if copts.file != "" {
				scenario, err := copts.load()
				if err != nil {
					return err
				}
				if scenario.Storage == nil {
					return missingBlock(copts.file, fees.CategoryStorage)
				}
				f = *scenario.Storage
				overrideFloat(cmd, "class-a", &f.ClassAOperations, flags.ClassAOperations)
				overrideFloat(cmd, "class-b", &f.ClassBOperations, flags.ClassBOperations)
				overrideFloat(cmd, "egress", &f.EgressUsage, flags.EgressUsage)
			}
			f.Sample = copts.sample(cmd, f.Sample)
			if err := f.Sample.Validate(maxSamplePoints()); err != nil {
				return err
			}
			return renderComparison(cmd, opts, compare.Storage(f))
		},
	}

	cmd.Flags().Float64Var(&flags.ClassAOperations, "class-a", 0, "class A operations per month")
	cmd.Flags().Float64Var(&flags.ClassBOperations, "class-b", 0, "class B operations per month")
	cmd.Flags().Float64Var(&flags.EgressUsage, "egress", 0, "outbound transfer in GB")

	return cmd
}

// runScenario compares every block of the scenario file
func runScenario(cmd *cobra.Command, opts *globalOptions, copts *compareOptions) error {
	scenario, err := copts.load()
	if err != nil {
		return err
	}

	var comparisons []compare.Comparison
	if f := scenario.Queue; f != nil {
		f.Sample = copts.sample(cmd, f.Sample)
		if err := f.Sample.Validate(maxSamplePoints()); err != nil {
			return err
		}
		comparisons = append(comparisons, compare.Queue(*f))
	}
	if f := scenario.Serverless; f != nil {
		f.Sample = copts.sample(cmd, f.Sample)
		if err := f.Sample.Validate(maxSamplePoints()); err != nil {
			return err
		}
		comparisons = append(comparisons, compare.Serverless(*f))
	}
	if f := scenario.Storage; f != nil {
		f.Sample = copts.sample(cmd, f.Sample)
		if err := f.Sample.Validate(maxSamplePoints()); err != nil {
			return err
		}
		comparisons = append(comparisons, compare.Storage(*f))
	}

	for i, c := range comparisons {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if err := renderComparison(cmd, opts, c); err != nil {
			return err
		}
	}
	return nil
}

func (o *compareOptions) load() (*hcl.Scenario, error) {
	logging.Debug("loading scenario", zap.String("file", o.file))
	return hcl.NewParser(defaultSample()).LoadFile(o.file)
}

// sample applies explicitly given --step and --count to base
func (o *compareOptions) sample(cmd *cobra.Command, base compare.SampleFactor) compare.SampleFactor {
	if cmd.Flags().Changed("step") {
		base.Step = o.step
	}
	if cmd.Flags().Changed("count") {
		base.Count = o.count
	}
	return base
}

// maxSamplePoints caps sweeps the same way the server does
func maxSamplePoints() int {
	return config.Get().Server.MaxSamplePoints
}

func overrideFloat(cmd *cobra.Command, flag string, dst *float64, value float64) {
	if cmd.Flags().Changed(flag) {
		*dst = value
	}
}

func missingBlock(file string, category fees.Category) error {
	return apperrors.Newf(apperrors.TypeInput, "scenario file %s has no %s block", file, category)
}

func renderComparison(cmd *cobra.Command, opts *globalOptions, c compare.Comparison) error {
	formatter, err := opts.formatter()
	if err != nil {
		return err
	}

	logging.Debug("comparison computed",
		zap.String("category", string(c.Category)),
		zap.Int("points", len(c.Labels)),
		zap.Int("datasets", len(c.Datasets)),
	)

	return formatter.RenderComparison(cmd.OutOrStdout(), c)
}
