package main

import "github.com/horgh/irc"

// HandlerFunc processes one dispatched message. Handlers never return a Go
// error (§7): failures are surfaced as numeric replies, and only the
// reactor may remove a connection.
type HandlerFunc func(s *Server, c *Connection, msg irc.Message)

// CommandSpec is the C6 handler record: name plus the gates the dispatcher
// checks before invoking Handler.
type CommandSpec struct {
	Name string

	MinArgs int

	// RequiresRegistration is false only for the handshake commands
	// (PASS/NICK/USER/CAP/QUIT/PING/PONG), per §4.6.
	RequiresRegistration bool

	OperOnly bool

	// MinDialect is the least dialect this command is enabled in.
	MinDialect Dialect

	Handler HandlerFunc
}

// CommandRegistry is the name -> handler table (C6).
type CommandRegistry struct {
	commands map[string]*CommandSpec
}

func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{commands: map[string]*CommandSpec{}}
}

func (r *CommandRegistry) Register(spec *CommandSpec) {
	r.commands[spec.Name] = spec
}

func (r *CommandRegistry) Lookup(name string) (*CommandSpec, bool) {
	s, ok := r.commands[name]
	return s, ok
}

// Dispatch checks the gates described in §4.6 in the order unknown/dialect,
// registration, arity, privilege, then invokes the handler. Numeric replies
// for the preregistered commands' own targets are always "*", which
// Replier.Numeric already does from c.Nick being blank.
func (cr *CommandRegistry) Dispatch(s *Server, c *Connection, msg irc.Message) {
	spec, found := cr.Lookup(msg.Command)
	if !found || !s.Options.Dialect.atLeast(spec.MinDialect) {
		s.Reply.Numeric(c, ErrUnknownCommand, msg.Command, "Unknown command")
		return
	}

	if spec.RequiresRegistration && !c.Registered() {
		s.Reply.Numeric(c, ErrNotRegistered, "You have not registered")
		return
	}

	if len(msg.Params) < spec.MinArgs {
		s.Reply.Numeric(c, ErrNeedMoreParams, msg.Command, "Not enough parameters")
		return
	}

	if spec.OperOnly && !c.IsOperator() {
		s.Reply.Numeric(c, ErrNoPrivileges, "Permission Denied- You're not an IRC operator")
		return
	}

	spec.Handler(s, c, msg)
}
