package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/repairkit/jrepair/bytesource"
)

func newPatchCmd() *cobra.Command {
	var chunkLength int

	cmd := &cobra.Command{
		Use:   "patch <file> <offset> <bytes>",
		Short: "Overwrite a byte range of a file in place",
		Long: `Patch writes bytes directly into a file at the given byte offset,
bypassing the chunked reader's page cache for the touched range.

This is the one external use of ChunkedFileSource.WriteAt: the core repair
parser never calls it, since it only ever needs read access.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			offset, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("parse offset: %w", err)
			}

			src, closeSrc, err := bytesource.Open(path, chunkLength)
			if err != nil {
				return err
			}
			defer closeSrc()

			if err := src.WriteAt(offset, []byte(args[2])); err != nil {
				return fmt.Errorf("patch: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&chunkLength, "chunk-length", "c", 0, "page size for the underlying chunked reader")

	return cmd
}
