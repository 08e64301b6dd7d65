package main

import "fmt"

// Dialect selects which commands, modes, and name grammars are active.
//
// This mirrors the way horgh-catbox gates behaviour on a single Config
// struct, but promotes the choice to its own type since SPEC_FULL requires
// three distinct dialects rather than one fixed rule set.
type Dialect int

const (
	// Rfc1459 is the original dialect: strict nick grammar, no ban/invite
	// exceptions, no half-op.
	Rfc1459 Dialect = iota

	// Rfc2810 adds ban-exception and invite-exception channel modes.
	Rfc2810

	// Modern is the widest dialect: adds half-op, colorless/translate modes,
	// CAP negotiation, and the Modern-only command set (CAP, KNOCK, LANGUAGE,
	// SILENCE).
	Modern
)

func (d Dialect) String() string {
	switch d {
	case Rfc1459:
		return "rfc1459"
	case Rfc2810:
		return "rfc2810"
	case Modern:
		return "modern"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// ParseDialect parses a dialect name from configuration.
func ParseDialect(s string) (Dialect, error) {
	switch s {
	case "rfc1459":
		return Rfc1459, nil
	case "rfc2810":
		return Rfc2810, nil
	case "modern":
		return Modern, nil
	default:
		return Rfc1459, fmt.Errorf("unknown dialect: %q", s)
	}
}

// atLeast reports whether d is at least as wide as other, in the fixed
// ordering Rfc1459 < Rfc2810 < Modern.
func (d Dialect) atLeast(other Dialect) bool {
	return d >= other
}
