// Package cmd provides CLI commands for rsciexport.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func setupLogger() {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "INFO"
	}

	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var rootCmd = &cobra.Command{
	Use:   "rsciexport",
	Short: "Export journal issues to RSCI XML",
	Long: `rsciexport builds the XML markup the Russian Science Citation Index
(RSCI / eLIBRARY) accepts for a journal issue and packs it with the article
PDFs into an upload archive.

Journal data is read from a snapshot file (YAML or JSON) or a SQLite
database created with "rsciexport import". Plugin settings are read from
$XDG_CONFIG_HOME/rsciexport/settings.yaml, --config and RSCI_* variables.

Examples:
  rsciexport export --source journal.yaml --journal 1 --issue 10
  rsciexport export -s journal.db --journal 1 --issue 10 --xml-only -o Markup_unicode.xml
  rsciexport validate -s journal.db --journal 1 --issue 10
  rsciexport import journal.yaml journal.db
  rsciexport schemas list`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	_ = godotenv.Load()
	setupLogger()
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(schemasCmd)
}
