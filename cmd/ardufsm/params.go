package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/ardufsm/pkg/params"
	"github.com/spf13/cobra"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "List the trial parameters and results with their defaults",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tDEFAULT\tCATEGORY\tREPORTED")
		for _, s := range params.StandardSpecs() {
			fmt.Fprintf(w, "%s\t%d\t%s\t%t\n", s.Name, s.Default, s.Category, s.Report)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "RESULT\tDEFAULT")
		for _, r := range params.StandardResultSpecs() {
			fmt.Fprintf(w, "%s\t%d\n", r.Name, r.Default)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(paramsCmd)
}
