package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "behave",
	Short: "behave compiles NWN behaviour control scripts",
	Long: `behave reads and writes behaviour control scripts (b_*.nss), their
checkcues stubs (z_b_*.nss) and the util_verbs.nss action catalog.
Editing a behaviour and saving it again never loses hand-written checkcues.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("dir", ".", "Workspace directory (holds .behave/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().String("store", "", "Script store backend: file, memory or redis (overrides config)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to util_verbs.nss (overrides config)")
}
