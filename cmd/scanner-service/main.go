package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// @title Breakout Scanner API
// @version 1.0
// @description Nightly breakout screener over a configurable ticker universe.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{
		Use:   "scanner-service",
		Short: "Breakout screener for daily price history",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-scanner.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd, newScanCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing scanner-service CLI: %s\n", err)
		os.Exit(1)
	}
}
