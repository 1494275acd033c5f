package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd prints recent generation runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent generation runs",
	Long:  `Shows the latest generation runs. Requires a configured database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer env.logger.Sync()

		if env.db == nil {
			return errors.New("history requires a database connection")
		}

		runs, err := env.service.RecentRuns(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "STARTED\tFILE\tPLACARDS\tSTATUS\tTOOK")
		for _, r := range runs {
			status := r.Status
			if r.Error != "" {
				status += ": " + r.Error
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
				r.StartedAt.Format("2006-01-02 15:04:05"), r.FileName, r.Placards, status, r.Duration())
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to show")
	RootCmd.AddCommand(historyCmd)
}
