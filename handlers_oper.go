package main

import (
	"strings"

	"github.com/horgh/irc"
)

func handleOper(s *Server, c *Connection, msg irc.Message) {
	name, pass := msg.Params[0], msg.Params[1]
	want, known := s.Options.Opers[name]
	if !known || want != pass {
		s.Reply.Numeric(c, ErrPasswdMismatch, "Password incorrect")
		return
	}
	c.Modes['o'] = struct{}{}
	c.OperName = name
	s.Reply.Numeric(c, RplYoureOper, "You are now an IRC operator")
	s.Log.Info("oper granted", "nick", c.Nick, "oper_name", name)
}

func handleKill(s *Server, c *Connection, msg irc.Message) {
	nick, reason := msg.Params[0], msg.Params[1]
	target, ok := s.World.LookupNick(nick)
	if !ok {
		s.Reply.Numeric(c, ErrNoSuchNick, nick, "No such nick")
		return
	}
	s.Log.Info("oper killed user", "oper", c.Nick, "target", target.Nick, "reason", reason)
	s.disconnect(target, "Killed by "+c.Nick+" ("+reason+")")
}

func handleRehash(s *Server, c *Connection, msg irc.Message) {
	opts, err := NewOptions(s.Options.ConfigFile)
	if err != nil {
		s.Log.Error("rehash failed", "error", err)
		s.Reply.FromServer(c, "NOTICE", "REHASH failed: "+err.Error())
		return
	}
	opts.Dialect = s.Options.Dialect // dialect changes require a restart, not a rehash
	*s.Options = *opts
	s.Reply.Numeric(c, RplRehashing, s.Options.ConfigFile, "Rehashing")
}

func handleRestart(s *Server, c *Connection, msg irc.Message) {
	s.Log.Info("restart requested", "oper", c.Nick)
	s.RequestRestart()
}

func handleDie(s *Server, c *Connection, msg irc.Message) {
	s.Log.Info("die requested", "oper", c.Nick)
	s.Stop()
}

func handleWallops(s *Server, c *Connection, msg irc.Message) {
	text := msg.Params[0]
	for _, conn := range s.World.AllConns() {
		if _, ok := conn.Modes['w']; ok {
			s.Reply.FromUser(conn, c.Usermask(), "WALLOPS", text)
		}
	}
}

// handleSilence implements the Modern SILENCE extension: "+mask" adds an
// ignore entry, "-mask" removes one, no argument lists the current set.
func handleSilence(s *Server, c *Connection, msg irc.Message) {
	if len(msg.Params) == 0 || msg.Params[0] == "" {
		for _, mask := range c.Silence {
			s.Reply.Numeric(c, RplSilelist, c.Nick, mask)
		}
		s.Reply.Numeric(c, RplEndOfSilelist, c.Nick, "End of SILENCE list")
		return
	}

	mask := msg.Params[0]
	if strings.HasPrefix(mask, "-") {
		mask = mask[1:]
		for i, m := range c.Silence {
			if m == mask {
				c.Silence = append(c.Silence[:i], c.Silence[i+1:]...)
				break
			}
		}
		return
	}
	mask = strings.TrimPrefix(mask, "+")
	for _, m := range c.Silence {
		if m == mask {
			return
		}
	}
	c.Silence = append(c.Silence, mask)
}

// handleLanguage is a Modern stub: this server has no translation catalog,
// so it always reports English only.
func handleLanguage(s *Server, c *Connection, msg irc.Message) {
	s.Reply.Numeric(c, RplNowAway, "Language set to en")
}

// unsupportedServerLinkCommand answers CONNECT/SQUIT/SERVER/SERVICE/SUMMON/
// TRACE/SERVLIST/SQUERY: server-to-server linking is a reserved extension
// point (§9) and is not implemented, so each of these is a documented no-op
// rather than an unknown command.
func unsupportedServerLinkCommand(s *Server, c *Connection, msg irc.Message) {
	s.Reply.FromServer(c, "NOTICE", msg.Command+" is not supported by this server")
}
