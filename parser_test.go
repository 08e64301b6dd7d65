package main

import "testing"

func TestParseLineBasic(t *testing.T) {
	msg, err := parseLine(512, "default!d@host", "NICK alice")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if msg.Command != "NICK" {
		t.Errorf("command = %q, wanted NICK", msg.Command)
	}
	if len(msg.Params) != 1 || msg.Params[0] != "alice" {
		t.Errorf("params = %v, wanted [alice]", msg.Params)
	}
	if msg.Prefix != "default!d@host" {
		t.Errorf("prefix = %q, wanted default to sender's usermask", msg.Prefix)
	}
}

func TestParseLineExplicitPrefix(t *testing.T) {
	msg, err := parseLine(512, "default!d@host", ":alice!alice@host PRIVMSG #room :hello there")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if msg.Prefix != "alice!alice@host" {
		t.Errorf("prefix = %q, wanted alice!alice@host", msg.Prefix)
	}
	if msg.Command != "PRIVMSG" {
		t.Errorf("command = %q, wanted PRIVMSG", msg.Command)
	}
	if len(msg.Params) != 2 || msg.Params[0] != "#room" || msg.Params[1] != "hello there" {
		t.Errorf("params = %v, wanted [#room, hello there]", msg.Params)
	}
}

func TestParseLineNumeric(t *testing.T) {
	msg, err := parseLine(512, "server", ":server 001 alice :Welcome")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if msg.Command != "001" {
		t.Errorf("command = %q, wanted 001", msg.Command)
	}
}

func TestParseLineUppercasesCommand(t *testing.T) {
	msg, err := parseLine(512, "default", "join #room")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if msg.Command != "JOIN" {
		t.Errorf("command = %q, wanted JOIN", msg.Command)
	}
}

func TestParseLineEmpty(t *testing.T) {
	if _, err := parseLine(512, "default", ""); err == nil {
		t.Errorf("expected error for empty line")
	}
}

func TestParseLineTooLong(t *testing.T) {
	long := make([]byte, 600)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := parseLine(512, "default", string(long)); err != errDropLine {
		t.Errorf("expected errDropLine, got %v", err)
	}
}
