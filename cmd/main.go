// Command volind computes volume indicators (AD, PVOL, PVT) over candles
// read from a local CSV or YAML file.
//
// Usage:
//
//	volind compute --input candles.csv --indicator ad --indicator pvt --drift 2
//	volind compute --config volind.yaml
//	volind setup (interactive config wizard)
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "volind",
	Short: "volume indicators over OHLCV candles",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.AddCommand(computeCmd, setupCmd)
}

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return nil, err
	}
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
