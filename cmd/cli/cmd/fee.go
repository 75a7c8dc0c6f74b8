// Package cmd - fee command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cloud-fee/core/fees"
	"cloud-fee/core/quote"
	"cloud-fee/internal/logging"
)

func newFeeCmd(opts *globalOptions) *cobra.Command {
	feeCmd := &cobra.Command{
		Use:   "fee",
		Short: "Itemize the monthly fee of one provider",
		Long: `Price one usage record with a single provider and print every fee
component together with the total.

Categories: queue, serverless, storage, database, egress.`,
	}

	feeCmd.AddCommand(newQueueFeeCmd(opts))
	feeCmd.AddCommand(newServerlessFeeCmd(opts))
	feeCmd.AddCommand(newStorageFeeCmd(opts))
	feeCmd.AddCommand(newDatabaseFeeCmd(opts))
	feeCmd.AddCommand(newEgressFeeCmd(opts))

	return feeCmd
}

func newQueueFeeCmd(opts *globalOptions) *cobra.Command {
	var (
		provider string
		usage    quote.Usage
	)

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Message queue fees (aws-sqs, cloudflare-queues)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFee(cmd, opts, string(fees.CategoryQueue), provider, usage)
		},
	}

	addProviderFlag(cmd, &provider, fees.CategoryQueue)
	cmd.Flags().Float64Var(&usage.Messages, "messages", 0, "messages per month")
	cmd.Flags().Float64Var(&usage.MessagePerBatch, "message-per-batch", 1, "messages per batch (1-10, AWS SQS only)")
	cmd.Flags().Float64Var(&usage.MessageSizeKB, "message-size", 0, "message size in kB")

	return cmd
}

func newServerlessFeeCmd(opts *globalOptions) *cobra.Command {
	var (
		provider string
		usage    quote.Usage
	)

	cmd := &cobra.Command{
		Use:   "serverless",
		Short: "Serverless compute fees (aws-lambda, cloudflare-workers)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFee(cmd, opts, string(fees.CategoryServerless), provider, usage)
		},
	}

	addProviderFlag(cmd, &provider, fees.CategoryServerless)
	cmd.Flags().Float64Var(&usage.Requests, "requests", 0, "requests per month")
	cmd.Flags().Float64Var(&usage.ElapsedMs, "elapsed", 0, "elapsed time per request in ms")
	cmd.Flags().Float64Var(&usage.MemoryMB, "memory", 0, "memory per request in MB (AWS Lambda only, 128-10240)")

	return cmd
}

func newStorageFeeCmd(opts *globalOptions) *cobra.Command {
	var (
		provider string
		usage    quote.Usage
	)

	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Object storage fees (aws-s3, cloudflare-r2)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFee(cmd, opts, string(fees.CategoryStorage), provider, usage)
		},
	}

	addProviderFlag(cmd, &provider, fees.CategoryStorage)
	cmd.Flags().Float64Var(&usage.VolumeGB, "volume", 0, "stored volume in GB")
	cmd.Flags().Float64Var(&usage.ClassAOperations, "class-a", 0, "class A operations per month")
	cmd.Flags().Float64Var(&usage.ClassBOperations, "class-b", 0, "class B operations per month")

	return cmd
}

func newDatabaseFeeCmd(opts *globalOptions) *cobra.Command {
	var (
		provider string
		usage    quote.Usage
	)

	cmd := &cobra.Command{
		Use:   "database",
		Short: "Serverless database fees (cloudflare-d1)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFee(cmd, opts, string(fees.CategoryDatabase), provider, usage)
		},
	}

	addProviderFlag(cmd, &provider, fees.CategoryDatabase)
	cmd.Flags().Float64Var(&usage.RowsRead, "rows-read", 0, "rows read per month")
	cmd.Flags().Float64Var(&usage.RowsWritten, "rows-written", 0, "rows written per month")
	cmd.Flags().Float64Var(&usage.VolumeGB, "volume", 0, "stored volume in GB")

	return cmd
}

func newEgressFeeCmd(opts *globalOptions) *cobra.Command {
	var usage quote.Usage

	cmd := &cobra.Command{
		Use:   "egress",
		Short: "AWS data transfer out fees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFee(cmd, opts, quote.CategoryEgress, "", usage)
		},
	}

	cmd.Flags().Float64Var(&usage.TransferredGB, "transferred", 0, "outbound transfer in GB")

	return cmd
}

// addProviderFlag registers --provider defaulting to the first provider of
// the category
func addProviderFlag(cmd *cobra.Command, provider *string, category fees.Category) {
	providers := fees.Providers(category)
	usage := "provider key:"
	for _, p := range providers {
		usage += " " + string(p)
	}
	cmd.Flags().StringVarP(provider, "provider", "p", string(providers[0]), usage)
}

func runFee(cmd *cobra.Command, opts *globalOptions, category, provider string, usage quote.Usage) error {
	formatter, err := opts.formatter()
	if err != nil {
		return err
	}

	log := logging.With(
		zap.String("category", category),
		zap.String("provider", provider),
	)
	log.Debug("quoting fee")

	result, err := quote.Quote(category, provider, usage)
	if err != nil {
		return fmt.Errorf("quote failed: %w", err)
	}
	log.Debug("fee quoted", zap.String("total", result.Total.String()))

	return formatter.RenderQuote(cmd.OutOrStdout(), result)
}
