package main

import (
	"net"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestConnectionModeString(t *testing.T) {
	client, _ := net.Pipe()
	c := NewConnection(1, client, 0, hclog.NewNullLogger())

	if got := c.ModeString(); got != "" {
		t.Errorf("ModeString() = %q, wanted empty string with no modes set", got)
	}

	c.Modes['i'] = struct{}{}
	if got := c.ModeString(); got != "+i" {
		t.Errorf("ModeString() = %q, wanted +i", got)
	}
}

func TestConnectionIsOperator(t *testing.T) {
	client, _ := net.Pipe()
	c := NewConnection(1, client, 0, hclog.NewNullLogger())

	if c.IsOperator() {
		t.Errorf("fresh connection should not be an operator")
	}
	c.Modes['o'] = struct{}{}
	if !c.IsOperator() {
		t.Errorf("expected IsOperator() to be true once 'o' is set")
	}
}

func TestConnectionRegistered(t *testing.T) {
	client, _ := net.Pipe()
	c := NewConnection(1, client, 0, hclog.NewNullLogger())

	if c.Registered() {
		t.Errorf("freshly accepted connection must not be registered")
	}
	c.State = StateRegistered
	if !c.Registered() {
		t.Errorf("expected Registered() to be true once State is StateRegistered")
	}
}

func TestConnectionUsermask(t *testing.T) {
	client, _ := net.Pipe()
	c := NewConnection(1, client, 0, hclog.NewNullLogger())
	c.Nick = "alice"
	c.User = "alice"

	mask := c.Usermask()
	if mask == "" {
		t.Fatalf("expected a non-empty usermask")
	}
	if mask[:len("alice!alice@")] != "alice!alice@" {
		t.Errorf("usermask = %q, wanted to start with alice!alice@", mask)
	}
}
