package main

import (
	"bufio"
	"os"

	"github.com/pkg/errors"
)

// MOTD is the message-of-the-day collaborator. Per spec §1/§6, the MOTD is
// read from disk on demand and is not part of the core's own state; Options
// simply borrows it.
type MOTD struct {
	Lines []string
}

// LoadMOTD reads the MOTD file, one line per RPL_MOTD line. A blank path is
// valid and yields an empty MOTD (ERR_NOMOTD-free; we just send an empty
// block, matching how many deployments run without one).
func LoadMOTD(path string) (*MOTD, error) {
	if len(path) == 0 {
		return &MOTD{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening motd file %s", path)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading motd file")
	}

	return &MOTD{Lines: lines}, nil
}
