package cmd

import (
	"fmt"
	"os"

	"reservation-portal/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "reservation-portal",
	Short: "Reservation Portal",
	Long: `Reservation Portal lets an invited user upload a reservation export
and download the arrival summary and the daily placards generated from it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// configDir is where the .env file is looked up.
var configDir string

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with ISO8601 timestamps reads better on a terminal
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory containing the .env file")
}
