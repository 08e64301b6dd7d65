package main

import (
	"strings"

	"github.com/horgh/irc"
)

// resolveTargets sends text to every comma-separated target in targetList,
// dispatching to a channel's members or a single nick, per §4.6 PRIVMSG/
// NOTICE. deliver is called once per resolved recipient connection.
func (s *Server) deliverMessage(c *Connection, command, targetList, text string, deliver func(*Connection, string)) {
	for _, target := range strings.Split(targetList, ",") {
		if s.ChanTypes.IsRegisteredPrefix(target[0]) {
			ch, ok := s.World.LookupChannel(target)
			if !ok {
				deliver(nil, target)
				continue
			}
			nickKey := canonicalizeNick(s.Options.Dialect, c.Nick)
			m, isMember := ch.Members[nickKey]
			if ch.HasMode('n') && !isMember {
				s.Reply.Numeric(c, ErrCannotSendToChan, ch.Name, "Cannot send to channel")
				continue
			}
			if ch.HasMode('m') {
				privileged := false
				if isMember {
					_, privileged = m.HighestRank(s.Modes)
				}
				if !isMember || !privileged {
					s.Reply.Numeric(c, ErrCannotSendToChan, ch.Name, "Cannot send to channel")
					continue
				}
			}
			if !isMember {
				mask := c.Usermask()
				if matchesAnyList(ch.Bans, mask) && !matchesAnyList(ch.BanExceptions, mask) {
					s.Reply.Numeric(c, ErrCannotSendToChan, ch.Name, "Cannot send to channel")
					continue
				}
			}
			for _, member := range ch.Members {
				if member.Conn == c {
					continue
				}
				s.Reply.FromUser(member.Conn, c.Usermask(), command, ch.Name, text)
			}
			continue
		}

		targetConn, ok := s.World.LookupNick(target)
		if !ok {
			deliver(nil, target)
			continue
		}
		if silenced(targetConn, c.Usermask()) {
			continue
		}
		if targetConn.Away != "" && command == "PRIVMSG" {
			s.Reply.Numeric(c, RplAway, targetConn.Nick, targetConn.Away)
		}
		s.Reply.FromUser(targetConn, c.Usermask(), command, targetConn.Nick, text)
	}
}

func handlePrivmsg(s *Server, c *Connection, msg irc.Message) {
	if len(msg.Params) < 2 || msg.Params[1] == "" {
		s.Reply.Numeric(c, ErrNoTextToSend, "No text to send")
		return
	}
	s.deliverMessage(c, "PRIVMSG", msg.Params[0], msg.Params[1], func(_ *Connection, target string) {
		s.Reply.Numeric(c, ErrNoSuchNick, target, "No such nick/channel")
	})
}

func handleNotice(s *Server, c *Connection, msg irc.Message) {
	if len(msg.Params) < 2 {
		return
	}
	// §4.6: NOTICE never generates an error reply to its sender, to avoid
	// reply loops between two NOTICE-only bots.
	s.deliverMessage(c, "NOTICE", msg.Params[0], msg.Params[1], func(*Connection, string) {})
}

func silenced(recipient *Connection, senderMask string) bool {
	for _, mask := range recipient.Silence {
		if maskMatch(senderMask, mask) {
			return true
		}
	}
	return false
}

func handleAway(s *Server, c *Connection, msg irc.Message) {
	if len(msg.Params) == 0 || msg.Params[0] == "" {
		c.Away = ""
		s.Reply.Numeric(c, RplUnAway, "You are no longer marked as being away")
		return
	}
	c.Away = msg.Params[0]
	s.Reply.Numeric(c, RplNowAway, "You have been marked as being away")
}
