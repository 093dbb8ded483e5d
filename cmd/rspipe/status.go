package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	statusStage string
	statusLimit int
)

var statusCommand = &cobra.Command{
	Use:   "status",
	Short: "List recent pipeline runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, cleanup, err := newRunner()
		if err != nil {
			return err
		}
		defer cleanup()

		runs, err := runner.Status(statusStage, statusLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}

		if trace, err := runner.LastCleanBuild(); err == nil && trace != nil {
			fmt.Printf("last clean build: %s\n\n", *trace)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CREATED\tTRACE\tSTAGE\tYEAR\tFILES\tOK\tFAILED\tRECORDS\tMS")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%.8s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
				r.CreatedAt, r.TraceID, r.Stage, r.Year, r.Files, r.Succeeded, r.Failed, r.Records, r.DurationMs)
		}
		return w.Flush()
	},
}

func init() {
	statusCommand.Flags().StringVar(&statusStage, "stage", "", "Filter by stage name")
	statusCommand.Flags().IntVar(&statusLimit, "limit", 20, "Maximum runs to list")
	rootCmd.AddCommand(statusCommand)
}
