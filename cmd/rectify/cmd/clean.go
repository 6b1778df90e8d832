package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/rectify"
	"github.com/agentstation/rectify/internal/config"
	"github.com/agentstation/rectify/pkg/logging"
)

var cleanDryRun bool

// cleanCmd runs a reconciliation job file.
var cleanCmd = &cobra.Command{
	Use:   "clean <job.yaml>",
	Short: "Run a reconciliation job",
	Long: `Clean loads the dataset named by the job file, reconciles every
configured attribute, deduplicates on the configured key, and writes the
output. With --dry-run the output file is not written.`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "reconcile without writing the output file")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	logger := logging.Default()
	ctx := logging.WithLogger(cmd.Context(), logger)

	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}

	source, err := cfg.NewSource()
	if err != nil {
		return err
	}
	rules, err := cfg.ReconcileRules()
	if err != nil {
		return err
	}

	opts := []rectify.Option{
		rectify.WithSource(source),
		rectify.WithRules(rules...),
	}
	if len(cfg.Dedupe) > 0 {
		opts = append(opts, rectify.WithDedupeKeys(cfg.Dedupe...))
	}
	if !cleanDryRun {
		writer, err := cfg.NewWriter()
		if err != nil {
			return err
		}
		if writer != nil {
			opts = append(opts, rectify.WithWriter(writer))
		}
	}

	pipeline, err := rectify.New(opts...)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
	if result.Changeset != nil {
		fmt.Fprintln(cmd.OutOrStdout(), result.Changeset.String())
	}
	for _, warning := range result.Warnings {
		logger.Warn().
			Str("attribute", warning.Attribute).
			Str("group", warning.Key.String()).
			Msg(warning.Message)
	}
	return nil
}
