package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repairkit/jrepair/repair"
	"github.com/repairkit/jrepair/serialize"
)

func newRepairCmd() *cobra.Command {
	flags := &repairFlags{}
	var indent bool

	cmd := &cobra.Command{
		Use:   "repair [file]",
		Short: "Repair malformed JSON and print the resulting value",
		Long: `Repair reads a JSON-like byte sequence, tolerating missing quotes,
trailing commas, doubled quotes, stray comments and duplicate keys, and
prints the repaired value as JSON.

If no file is given, or "-" is given, input is read from stdin.`,
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
			value := p.Parse()

			enc := serialize.NewEncoder(os.Stdout)
			if indent {
				enc.WithIndent()
			}
			if err := enc.Encode(value); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().IntVarP(&flags.chunkLength, "chunk-length", "c", 0, "page size for chunked file reading (0: read fully into memory)")
	cmd.Flags().IntVarP(&flags.depthLimit, "depth-limit", "d", 0, "recursion depth cap (0: use the default of 1024)")
	cmd.Flags().BoolVar(&flags.streamStable, "stream-stable", false, "suppress trailing-whitespace trimming of strings (a dangling trailing backslash is dropped instead)")
	cmd.Flags().BoolVarP(&indent, "indent", "i", false, "pretty-print with two-space indentation")

	return cmd
}
