package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/rsciexport/archive"
	"github.com/lehigh-university-libraries/rsciexport/format/rsci"
)

var (
	exportFlags  issueFlags
	exportOutput string
	xmlOnly      bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an issue as an RSCI upload archive",
	Long: `Export a published journal issue in RSCI XML.

By default the document is written as Markup_unicode.xml into a ZIP archive
together with the PDF galley of every article. The archive is named
issue-<number>-<year>.zip unless --output is given.

With --xml-only the bare document is written to --output, or to stdout.

Examples:
  rsciexport export -s journal.yaml --journal 1 --issue 10
  rsciexport export -s journal.db --journal 1 --issue 10 --files-dir /var/ojs/files
  rsciexport export -s journal.db --journal 1 --issue 10 --schema rsci-legacy --xml-only`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportFlags.register(exportCmd.Flags())
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: issue-<number>-<year>.zip, or stdout with --xml-only)")
	exportCmd.Flags().BoolVar(&xmlOnly, "xml-only", false, "Write only the XML document")
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	job, err := prepare(cmd.Context(), cmd, &exportFlags)
	if err != nil {
		return err
	}

	var doc bytes.Buffer
	if err := job.serializer.Serialize(&doc, job.bundle, job.opts); err != nil {
		if errors.Is(err, rsci.ErrNotExportable) {
			return fmt.Errorf("issue %d has no published articles, choose an issue with published articles: %w", exportFlags.issue, err)
		}
		return fmt.Errorf("serializing issue %d: %w", exportFlags.issue, err)
	}

	output := exportOutput
	if output == "" && !xmlOnly {
		output = archive.FileName(job.bundle.Issue)
	}

	var out io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, createErr := os.Create(output)
		if createErr != nil {
			return fmt.Errorf("creating output file: %w", createErr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", cerr)
			}
		}()
		out = f
	}

	if xmlOnly {
		if _, err := out.Write(doc.Bytes()); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	} else {
		files := archive.Collect(job.bundle, job.cfg.FilesDir, job.opts.Warnings)
		if err := archive.Package(out, doc.Bytes(), files); err != nil {
			return fmt.Errorf("writing archive: %w", err)
		}
	}

	if output != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d articles to %s (%d warnings)\n",
			len(job.bundle.Submissions), output, job.warnings.Len())
	}
	return nil
}
