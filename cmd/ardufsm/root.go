package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ardufsm",
	Short: "ArduFSM is a go/no-go trial controller",
	Long: `ArduFSM runs a behavioral go/no-go trial state machine.
It talks a line protocol with a host over stdio or a serial device, or runs
a self-contained simulation with an automatic host.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
}
