package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/rsciexport/source"
)

var importCmd = &cobra.Command{
	Use:   "import <snapshot> <database>",
	Short: "Load a journal snapshot into a SQLite database",
	Long: `Import a journal snapshot (YAML or JSON) into a SQLite database that
export and validate can read with --source.

Examples:
  rsciexport import journal.yaml journal.db
  rsciexport export -s journal.db --journal 1 --issue 10`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) (err error) {
	snap, err := source.LoadSnapshot(args[0])
	if err != nil {
		return err
	}

	db, err := source.OpenDB(args[1])
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing database: %w", cerr)
		}
	}()

	if err := db.Import(cmd.Context(), snap); err != nil {
		return fmt.Errorf("importing %s: %w", args[0], err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Imported %d journals, %d issues, %d articles into %s\n",
		len(snap.Journals), len(snap.Issues), len(snap.Articles), args[1])
	return nil
}
