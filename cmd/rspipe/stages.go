package main

import (
	"github.com/spf13/cobra"
)

var buildYear int

var extractCommand = &cobra.Command{
	Use:   "extract",
	Short: "Stage 1: decode source workbooks and archives to raw CSVs",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, cleanup, err := newRunner()
		if err != nil {
			return err
		}
		defer cleanup()
		return runner.RunExtract(cmd.Context())
	},
}

var normalizeCommand = &cobra.Command{
	Use:   "normalize",
	Short: "Stage 2: normalize text in every raw CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, cleanup, err := newRunner()
		if err != nil {
			return err
		}
		defer cleanup()
		return runner.RunNormalize(cmd.Context())
	},
}

var buildCommand = &cobra.Command{
	Use:   "build",
	Short: "Stage 3: assemble the canonical tables per fiscal year",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, cleanup, err := newRunner()
		if err != nil {
			return err
		}
		defer cleanup()
		return runner.RunBuild(cmd.Context(), buildYear)
	},
}

var schemaCommand = &cobra.Command{
	Use:   "schema",
	Short: "Stage 4: generate JSON schema summaries of the output tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, cleanup, err := newRunner()
		if err != nil {
			return err
		}
		defer cleanup()
		return runner.RunSchema(cmd.Context())
	},
}

func init() {
	buildCommand.Flags().IntVar(&buildYear, "year", 0, "Build only this fiscal year (0 = all years)")
	rootCmd.AddCommand(extractCommand, normalizeCommand, buildCommand, schemaCommand)
}
