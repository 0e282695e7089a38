package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repairkit/jrepair/repair"
)

func newDiagnoseCmd() *cobra.Command {
	flags := &repairFlags{logging: true}

	cmd := &cobra.Command{
		Use:   "diagnose [file]",
		Short: "Repair JSON and print the diagnostic log instead of the value",
		Long: `Diagnose runs the same repair pass as "jrepair repair" but, instead of
printing the repaired value, prints one line per heuristic the parser
applied, with a window of surrounding bytes for context.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.file = args[0]
			}

			src, closeSrc, err := flags.source()
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer closeSrc()

			p := repair.New(src, flags.options()...)
			p.Parse()

			diags := p.Diagnostics()
			if len(diags) == 0 {
				fmt.Fprintln(os.Stdout, "no diagnostics: input required no repair heuristics")
				return nil
			}
			for _, d := range diags {
				fmt.Printf("%s: %q\n", d.Message, d.Window)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&flags.chunkLength, "chunk-length", "c", 0, "page size for chunked file reading (0: read fully into memory)")
	cmd.Flags().IntVarP(&flags.depthLimit, "depth-limit", "d", 0, "recursion depth cap (0: use the default of 1024)")
	cmd.Flags().BoolVar(&flags.streamStable, "stream-stable", false, "suppress trailing-whitespace trimming of strings (a dangling trailing backslash is dropped instead)")

	return cmd
}
