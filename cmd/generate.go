package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// generateCmd runs the upload pipeline from the command line.
var generateCmd = &cobra.Command{
	Use:   "generate <file.xlsx>",
	Short: "Generate the summary and placards from a spreadsheet",
	Long: `Copies the spreadsheet into the upload directory, clears the previous
reports and generates the summary and one placard file per upcoming arrival day.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer env.logger.Sync()

		src, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer src.Close()

		result, err := env.service.Ingest(cmd.Context(), filepath.Base(args[0]), src)
		if err != nil {
			return err
		}

		env.logger.Info("Reports generated",
			zap.String("run_id", result.RunID),
			zap.Int("placards", result.Placards),
		)
		for _, d := range result.ArrivalDates {
			fmt.Fprintf(cmd.OutOrStdout(), "placards/%s.pdf\n", d.Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(generateCmd)
}
