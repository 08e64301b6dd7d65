package main

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// newLogger builds the process-wide structured logger. Every component that
// logs takes this (or a Named() child of it) rather than reaching for a
// package-level global, so tests can substitute a discard logger.
func newLogger(name string, debug bool) hclog.Logger {
	level := hclog.Info
	if debug {
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      level,
		Output:     os.Stderr,
		TimeFormat: "2006-01-02T15:04:05.000Z0700",
	})
}
