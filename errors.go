package main

import (
	"io"
	"net"

	"github.com/pkg/errors"
)

// Error kinds per §7, increasing severity. Only transport and internal
// errors are Go errors in this implementation; protocol and authorization
// failures are numeric replies (see registry.go, handlers_*.go) and never
// take this path.
type errKind int

const (
	errKindTransport errKind = iota
	errKindInternal
)

// classifyConnError turns a read/write failure into the disconnect reason
// used in the QUIT announcement (§7c, §4.8 step 2/3).
func classifyConnError(err error) string {
	cause := errors.Cause(err)
	if cause == io.EOF {
		return "Socket reset by peer"
	}
	if ne, ok := cause.(net.Error); ok && ne.Timeout() {
		return "Ping Timeout"
	}
	return "Socket reset by peer"
}
