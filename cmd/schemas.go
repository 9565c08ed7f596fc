package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/rsciexport/format"
	"github.com/lehigh-university-libraries/rsciexport/format/rsci"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "Inspect output schemas",
	Long:  `List and inspect the RSCI document layouts the export can produce.`,
}

var schemasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available schemas",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		names := format.List()
		if len(names) == 0 {
			fmt.Fprintln(out, "No schemas found")
			return nil
		}

		fmt.Fprintln(out, "Available schemas:")
		for _, name := range names {
			f, _ := format.Get(name)
			desc := ""
			if f.Description() != "" {
				desc = " - " + f.Description()
			}
			fmt.Fprintf(out, "  %s%s\n", name, desc)
		}
		return nil
	},
}

var schemasShowCmd = &cobra.Command{
	Use:   "show [schema]",
	Short: "Show schema details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := rsci.SchemaByName(args[0])
		if err != nil {
			return err
		}

		// Print as YAML
		out, err := yaml.Marshal(schema)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	schemasCmd.AddCommand(schemasListCmd)
	schemasCmd.AddCommand(schemasShowCmd)
}
