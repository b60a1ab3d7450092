package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/behave"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of behave",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "behave version %s\n", behave.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
