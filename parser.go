package main

import (
	"strings"

	"github.com/horgh/irc"
	"github.com/pkg/errors"
)

// errDropLine and errMalformedLine both mean "drop this line, don't kill the
// connection" per §4.5 point 4; they're returned to the caller only so tests
// can tell a silent drop from a parsed message, never to end a session.
var errDropLine = errors.New("line exceeds max length")
var errMalformedLine = errors.New("malformed line")

// parseLine implements the C5 grammar: one line in, (prefix, command or
// numeric, args) out. It never touches the network or world state.
//
// This is deliberately not github.com/horgh/irc's own ParseMessage: that
// decoder leaves Prefix blank when absent and is stricter about trailing
// whitespace, whereas this grammar defaults the prefix to the sender's own
// usermask and is lenient about suppressing empty tokens. The wire type
// (irc.Message) is still reused so C7's Encode() can round-trip it.
func parseLine(maxLineLength int, defaultPrefix, line string) (irc.Message, error) {
	if len(line) == 0 {
		return irc.Message{}, errMalformedLine
	}
	if len(line) > maxLineLength {
		return irc.Message{}, errDropLine
	}

	msg := irc.Message{Prefix: defaultPrefix}
	rest := line

	if rest[0] == ':' {
		sp := strings.IndexByte(rest, ' ')
		if sp <= 1 {
			return irc.Message{}, errMalformedLine
		}
		msg.Prefix = rest[1:sp]
		rest = rest[sp+1:]
	}

	var tokens []string
	for len(rest) > 0 {
		if rest[0] == ' ' {
			rest = rest[1:]
			continue
		}
		if rest[0] == ':' {
			tokens = append(tokens, rest[1:])
			break
		}
		if sp := strings.IndexByte(rest, ' '); sp == -1 {
			tokens = append(tokens, rest)
			break
		} else {
			tokens = append(tokens, rest[:sp])
			rest = rest[sp+1:]
		}
	}

	if len(tokens) == 0 {
		return irc.Message{}, errMalformedLine
	}

	head := tokens[0]
	if isNumericWord(head) {
		msg.Command = head
	} else {
		msg.Command = strings.ToUpper(head)
	}
	msg.Params = tokens[1:]

	return msg, nil
}

// isNumericWord reports whether s is exactly three decimal digits.
func isNumericWord(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
