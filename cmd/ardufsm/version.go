package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/ardufsm"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ardufsm",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ardufsm version %s\n", strings.TrimSpace(ardufsm.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
