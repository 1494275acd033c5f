package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var reportsJSON bool

// reportsCmd prints the current listing.
var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List the generated reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer env.logger.Sync()

		sections, err := env.service.List(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if reportsJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(sections)
		}

		if len(sections) == 0 {
			fmt.Fprintln(out, "No reports.")
			return nil
		}
		for _, s := range sections {
			fmt.Fprintf(out, "%s\n", s.Name)
			for _, f := range s.Files {
				fmt.Fprintf(out, "  %s\n", f.Path)
			}
		}
		return nil
	},
}

func init() {
	reportsCmd.Flags().BoolVar(&reportsJSON, "json", false, "print the listing as JSON")
	RootCmd.AddCommand(reportsCmd)
}
