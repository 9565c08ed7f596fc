package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/rsciexport/format/rsci"
)

var (
	validateFlags   issueFlags
	validateVerbose bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check an issue without writing an export",
	Long: `Build the RSCI document for an issue and report every problem found
without writing output. Useful for fixing metadata before an upload.

The command fails when the issue cannot be exported at all.

Examples:
  rsciexport validate -s journal.db --journal 1 --issue 10
  rsciexport validate -s journal.yaml --journal 1 --issue 10 --verbose`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateFlags.register(validateCmd.Flags())
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Show detailed information")
}

func runValidate(cmd *cobra.Command, args []string) error {
	job, err := prepare(cmd.Context(), cmd, &validateFlags)
	if err != nil {
		return err
	}

	if err := job.serializer.Serialize(io.Discard, job.bundle, job.opts); err != nil {
		if errors.Is(err, rsci.ErrNotExportable) {
			return fmt.Errorf("issue %d has no published articles, choose an issue with published articles: %w", validateFlags.issue, err)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	warnings := job.warnings.Warnings()
	fmt.Fprintf(out, "✓ Valid: issue %d with %d articles, %d warnings\n",
		validateFlags.issue, len(job.bundle.Submissions), len(warnings))

	if validateVerbose {
		if len(warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for _, w := range warnings {
				fmt.Fprintf(out, "  %s\n", w)
			}
		}
		fmt.Fprintln(out, "\nArticles:")
		for _, sub := range rsci.SortByStartingPage(job.bundle.Submissions) {
			fmt.Fprintf(out, "\n  Article %d:\n", sub.ID)
			fmt.Fprintf(out, "    Title: %s\n", truncate(sub.Titles.First(job.bundle.Journal.PrimaryLocale), 60))
			fmt.Fprintf(out, "    Pages: %s\n", sub.Pages)
			fmt.Fprintf(out, "    Authors: %d\n", len(sub.Authors))
			fmt.Fprintf(out, "    References: %d\n", len(sub.Citations))
		}
	}

	return nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
