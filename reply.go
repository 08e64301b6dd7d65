package main

import (
	"github.com/horgh/irc"
)

// Replier is the C7 component: it builds numeric and command replies
// bearing the server prefix and hands them to a connection's pending-output
// buffer. It performs no I/O itself (§4.7); Connection.enqueue does that.
type Replier struct {
	ServerName string
}

func NewReplier(serverName string) *Replier { return &Replier{ServerName: serverName} }

// Numeric sends a numeric reply to c. The target parameter (c's current
// nick, or "*" pre-registration) is prepended automatically.
func (r *Replier) Numeric(c *Connection, code string, params ...string) {
	target := c.Nick
	if target == "" {
		target = "*"
	}
	full := append([]string{target}, params...)
	c.enqueue(irc.Message{Prefix: r.ServerName, Command: code, Params: full})
}

// FromServer sends a server-originated command (PING, NOTICE, ERROR, ...)
// to c.
func (r *Replier) FromServer(c *Connection, command string, params ...string) {
	c.enqueue(irc.Message{Prefix: r.ServerName, Command: command, Params: params})
}

// FromUser relays a command as though sent by source (nick!user@host) to c,
// the usual shape for PRIVMSG/NOTICE/JOIN/PART/NICK/QUIT/MODE fan-out.
func (r *Replier) FromUser(c *Connection, source, command string, params ...string) {
	c.enqueue(irc.Message{Prefix: source, Command: command, Params: params})
}

// Raw enqueues a fully-formed message as is, for callers that already built
// one (e.g. relaying to multiple recipients without reconstructing it).
func (r *Replier) Raw(c *Connection, msg irc.Message) {
	c.enqueue(msg)
}
