package main

import (
	"io"
	"os"

	"github.com/repairkit/jrepair/bytesource"
	"github.com/repairkit/jrepair/repair"
)

// repairFlags holds the flags shared by the repair and diagnose
// subcommands, mapped straight onto repair.Option values.
type repairFlags struct {
	file         string
	chunkLength  int
	depthLimit   int
	streamStable bool
	logging      bool
}

// options builds the repair.Option slice for these flags.
func (f *repairFlags) options() []repair.Option {
	var opts []repair.Option
	if f.logging {
		opts = append(opts, repair.WithLogging())
	}
	if f.streamStable {
		opts = append(opts, repair.WithStreamStable())
	}
	if f.chunkLength > 0 {
		opts = append(opts, repair.WithChunkLength(f.chunkLength))
	}
	if f.depthLimit > 0 {
		opts = append(opts, repair.WithDepthLimit(f.depthLimit))
	}
	return opts
}

// source opens a bytesource.ByteSource for the configured input: a named
// file (optionally chunked, optionally gzip-transparent) or stdin, which
// is always read fully into memory since it is not seekable.
func (f *repairFlags) source() (bytesource.ByteSource, func() error, error) {
	if f.file == "" || f.file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, nil, err
		}
		return bytesource.Bytes(data), func() error { return nil }, nil
	}
	if f.chunkLength > 0 {
		return bytesource.Open(f.file, f.chunkLength)
	}
	data, err := os.ReadFile(f.file)
	if err != nil {
		return nil, nil, err
	}
	return bytesource.Bytes(data), func() error { return nil }, nil
}
