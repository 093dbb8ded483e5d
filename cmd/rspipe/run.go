package main

import (
	"github.com/spf13/cobra"
)

var runYear int

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run all pipeline stages end-to-end",
	Long:  "Runs extraction, normalization, table building and schema generation in order, stopping at the first stage that fails.",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, cleanup, err := newRunner()
		if err != nil {
			return err
		}
		defer cleanup()
		return runner.RunAll(cmd.Context(), runYear)
	},
}

func init() {
	runCommand.Flags().IntVar(&runYear, "year", 0, "Build only this fiscal year (0 = all years)")
	rootCmd.AddCommand(runCommand)
}
