package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rspipe",
	Short: "Government project-review spreadsheet pipeline",
	Long:  "rspipe converts the yearly project-review spreadsheet releases (2014-2024) into the canonical RS-format relational tables: extraction, text normalization, table building and schema generation.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
