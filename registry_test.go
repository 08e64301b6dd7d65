package main

import (
	"net"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/horgh/irc"
)

func newDispatchTestServer(d Dialect) (*Server, *Connection) {
	opts := &Options{
		Dialect:    d,
		ServerName: "test.server",
	}
	s := &Server{
		Options:   opts,
		World:     newTestWorld(d),
		Modes:     NewModeRegistry(d),
		ChanTypes: NewChannelTypeRegistry(),
		Reply:     NewReplier(opts.ServerName),
		Commands:  NewCommandRegistry(),
		Log:       hclog.NewNullLogger(),
	}
	client, _ := net.Pipe()
	c := NewConnection(1, client, 0, hclog.NewNullLogger())
	return s, c
}

func drainOne(t *testing.T, c *Connection) irc.Message {
	t.Helper()
	select {
	case msg := <-c.WriteChan:
		return msg
	default:
		t.Fatalf("expected a queued reply, found none")
		return irc.Message{}
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	s, c := newDispatchTestServer(Rfc1459)
	s.Commands.Dispatch(s, c, irc.Message{Command: "BOGUS"})
	got := drainOne(t, c)
	if got.Command != ErrUnknownCommand {
		t.Errorf("command = %s, wanted %s", got.Command, ErrUnknownCommand)
	}
}

func TestDispatchRequiresRegistration(t *testing.T) {
	s, c := newDispatchTestServer(Rfc1459)
	s.Commands.Register(&CommandSpec{
		Name:                 "JOIN",
		MinArgs:              1,
		RequiresRegistration: true,
		Handler:              func(*Server, *Connection, irc.Message) {},
	})

	s.Commands.Dispatch(s, c, irc.Message{Command: "JOIN", Params: []string{"#room"}})
	got := drainOne(t, c)
	if got.Command != ErrNotRegistered {
		t.Errorf("command = %s, wanted %s", got.Command, ErrNotRegistered)
	}
}

func TestDispatchNeedMoreParams(t *testing.T) {
	s, c := newDispatchTestServer(Rfc1459)
	c.State = StateRegistered
	s.Commands.Register(&CommandSpec{
		Name:    "JOIN",
		MinArgs: 1,
		Handler: func(*Server, *Connection, irc.Message) {},
	})

	s.Commands.Dispatch(s, c, irc.Message{Command: "JOIN"})
	got := drainOne(t, c)
	if got.Command != ErrNeedMoreParams {
		t.Errorf("command = %s, wanted %s", got.Command, ErrNeedMoreParams)
	}
}

func TestDispatchOperOnly(t *testing.T) {
	s, c := newDispatchTestServer(Rfc1459)
	c.State = StateRegistered
	s.Commands.Register(&CommandSpec{
		Name:     "DIE",
		OperOnly: true,
		Handler:  func(*Server, *Connection, irc.Message) {},
	})

	s.Commands.Dispatch(s, c, irc.Message{Command: "DIE"})
	got := drainOne(t, c)
	if got.Command != ErrNoPrivileges {
		t.Errorf("command = %s, wanted %s", got.Command, ErrNoPrivileges)
	}
}

func TestDispatchMinDialect(t *testing.T) {
	s, c := newDispatchTestServer(Rfc1459)
	s.Commands.Register(&CommandSpec{
		Name:       "CAP",
		MinDialect: Modern,
		Handler:    func(*Server, *Connection, irc.Message) {},
	})

	s.Commands.Dispatch(s, c, irc.Message{Command: "CAP", Params: []string{"LS"}})
	got := drainOne(t, c)
	if got.Command != ErrUnknownCommand {
		t.Errorf("command = %s, wanted %s (disabled below its MinDialect)", got.Command, ErrUnknownCommand)
	}
}

func TestDispatchInvokesHandlerWhenGatesPass(t *testing.T) {
	s, c := newDispatchTestServer(Rfc1459)
	c.State = StateRegistered
	called := false
	s.Commands.Register(&CommandSpec{
		Name:                 "PING",
		RequiresRegistration: true,
		Handler:              func(*Server, *Connection, irc.Message) { called = true },
	})

	s.Commands.Dispatch(s, c, irc.Message{Command: "PING"})
	if !called {
		t.Errorf("expected handler to be invoked once all gates pass")
	}
}
