package main

import (
	"net"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestReplierNumericTargetsStarBeforeRegistration(t *testing.T) {
	r := NewReplier("test.server")
	client, _ := net.Pipe()
	c := NewConnection(1, client, 0, hclog.NewNullLogger())

	r.Numeric(c, RplWelcome, "hello")
	msg := <-c.WriteChan

	if msg.Prefix != "test.server" {
		t.Errorf("prefix = %q, wanted test.server", msg.Prefix)
	}
	if msg.Params[0] != "*" {
		t.Errorf("target = %q, wanted * before registration", msg.Params[0])
	}
}

func TestReplierNumericTargetsNickAfterRegistration(t *testing.T) {
	r := NewReplier("test.server")
	client, _ := net.Pipe()
	c := NewConnection(1, client, 0, hclog.NewNullLogger())
	c.Nick = "alice"

	r.Numeric(c, RplWelcome, "hello")
	msg := <-c.WriteChan

	if msg.Params[0] != "alice" {
		t.Errorf("target = %q, wanted alice", msg.Params[0])
	}
}

func TestReplierFromUser(t *testing.T) {
	r := NewReplier("test.server")
	client, _ := net.Pipe()
	c := NewConnection(1, client, 0, hclog.NewNullLogger())

	r.FromUser(c, "alice!alice@host", "JOIN", "#room")
	msg := <-c.WriteChan

	if msg.Prefix != "alice!alice@host" {
		t.Errorf("prefix = %q, wanted alice!alice@host", msg.Prefix)
	}
	if msg.Command != "JOIN" {
		t.Errorf("command = %q, wanted JOIN", msg.Command)
	}
}
