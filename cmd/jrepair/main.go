package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "jrepair",
		Short: "Repair malformed JSON produced by language models and lossy pipelines",
	}

	rootCmd.AddCommand(newRepairCmd())
	rootCmd.AddCommand(newDiagnoseCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newPatchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
