package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/horgh/irc"
)

func handleWho(s *Server, c *Connection, msg irc.Message) {
	var conns []*Connection

	if len(msg.Params) > 0 && msg.Params[0] != "" && msg.Params[0] != "0" {
		mask := msg.Params[0]
		if s.ChanTypes.IsRegisteredPrefix(mask[0]) {
			if ch, ok := s.World.LookupChannel(mask); ok {
				for _, m := range ch.Members {
					conns = append(conns, m.Conn)
				}
			}
			sendWhoReplies(s, c, conns, mask)
			return
		}
		for _, conn := range s.World.AllConns() {
			if conn.Registered() && wildcardMatch(mask, conn.Nick) {
				conns = append(conns, conn)
			}
		}
		sendWhoReplies(s, c, conns, mask)
		return
	}

	for _, conn := range s.World.AllConns() {
		if conn.Registered() {
			conns = append(conns, conn)
		}
	}
	sendWhoReplies(s, c, conns, "*")
}

func sendWhoReplies(s *Server, c *Connection, conns []*Connection, mask string) {
	for _, conn := range conns {
		flags := "H"
		if conn.Away != "" {
			flags = "G"
		}
		if conn.IsOperator() {
			flags += "*"
		}
		s.Reply.Numeric(c, RplWhoReply, "*", conn.User, conn.RemoteHost(),
			s.Options.ServerName, conn.Nick, flags, "0 "+conn.RealName)
	}
	s.Reply.Numeric(c, RplEndOfWho, mask, "End of WHO list")
}

func handleWhois(s *Server, c *Connection, msg irc.Message) {
	nickList := msg.Params[len(msg.Params)-1]
	for _, nick := range strings.Split(nickList, ",") {
		target, ok := s.World.LookupNick(nick)
		if !ok {
			s.Reply.Numeric(c, ErrNoSuchNick, nick, "No such nick/channel")
			continue
		}

		s.Reply.Numeric(c, RplWhoisUser, target.Nick, target.User, target.RemoteHost(), "*", target.RealName)
		s.Reply.Numeric(c, RplWhoisServer, target.Nick, s.Options.ServerName, s.Options.ServerInfo)

		if target.Away != "" {
			s.Reply.Numeric(c, RplAway, target.Nick, target.Away)
		}
		if target.IsOperator() {
			s.Reply.Numeric(c, RplWhoisOperator, target.Nick, "is an IRC operator")
		}

		var chans []string
		for _, m := range target.Channels {
			prefix := ""
			if rk, has := m.HighestRank(s.Modes); has {
				prefix = string(rk.Prefix)
			}
			chans = append(chans, prefix+m.Channel.Name)
		}
		if len(chans) > 0 {
			s.Reply.Numeric(c, RplWhoisChannels, target.Nick, strings.Join(chans, " "))
		}

		idle := time.Since(target.LastAction) / time.Second
		s.Reply.Numeric(c, RplWhoisIdle, target.Nick, strconv.FormatInt(int64(idle), 10), "seconds idle")
		s.Reply.Numeric(c, RplEndOfWhois, target.Nick, "End of WHOIS list")
	}
}

func handleWhowas(s *Server, c *Connection, msg irc.Message) {
	nick := msg.Params[0]
	canon := canonicalizeNick(s.Options.Dialect, nick)
	entries := s.World.Whowas.Lookup(s.Options.Dialect, canon)

	if len(entries) == 0 {
		s.Reply.Numeric(c, ErrWasNoSuchNick, nick, "There was no such nickname")
		s.Reply.Numeric(c, RplEndOfWhoWas, nick, "End of WHOWAS")
		return
	}

	count := len(entries)
	if len(msg.Params) > 1 {
		if n, err := strconv.Atoi(msg.Params[1]); err == nil && n > 0 && n < count {
			count = n
		}
	}
	for _, e := range entries[:count] {
		s.Reply.Numeric(c, RplWhoWasUser, e.Nick, e.User, e.Host, "*", e.RealName)
	}
	s.Reply.Numeric(c, RplEndOfWhoWas, nick, "End of WHOWAS")
}

func handleIson(s *Server, c *Connection, msg irc.Message) {
	var present []string
	for _, nick := range msg.Params {
		if target, ok := s.World.LookupNick(nick); ok {
			present = append(present, target.Nick)
		}
	}
	s.Reply.Numeric(c, RplIson, strings.Join(present, " "))
}

func handleUserhost(s *Server, c *Connection, msg irc.Message) {
	var replies []string
	for _, nick := range msg.Params {
		target, ok := s.World.LookupNick(nick)
		if !ok {
			continue
		}
		away := "+"
		if target.Away != "" {
			away = "-"
		}
		replies = append(replies, target.Nick+"="+away+target.User+"@"+target.RemoteHost())
	}
	s.Reply.Numeric(c, RplUserhost, strings.Join(replies, " "))
}

func handleLusers(s *Server, c *Connection, msg irc.Message) {
	w := s.World
	s.Reply.Numeric(c, RplLUserClient, "There are "+strconv.Itoa(w.NumUsers())+" users and "+
		strconv.Itoa(w.NumInvisible())+" invisible on 1 server")
	s.Reply.Numeric(c, RplLUserOp, strconv.Itoa(w.NumOperators()), "operator(s) online")
	s.Reply.Numeric(c, RplLUserUnknown, strconv.Itoa(w.NumUnknown()), "unknown connection(s)")
	s.Reply.Numeric(c, RplLUserChannels, strconv.Itoa(w.NumChannels()), "channels formed")
	s.Reply.Numeric(c, RplLUserMe, "I have "+strconv.Itoa(w.NumUsers())+" clients and 1 server")
}

func handleMotdCmd(s *Server, c *Connection, msg irc.Message) {
	s.sendMotd(c)
}

func handleVersion(s *Server, c *Connection, msg irc.Message) {
	s.Reply.Numeric(c, RplVersion, s.Options.Version, s.Options.ServerName, s.Options.Dialect.String())
}

func handleTime(s *Server, c *Connection, msg irc.Message) {
	s.Reply.Numeric(c, RplTime, s.Options.ServerName, time.Now().Format(time.RFC1123))
}

func handleAdmin(s *Server, c *Connection, msg irc.Message) {
	s.Reply.Numeric(c, RplAdminMe, s.Options.ServerName, "Administrative info")
	s.Reply.Numeric(c, RplAdminLoc1, s.Options.ServerInfo)
}

func handleInfo(s *Server, c *Connection, msg irc.Message) {
	s.Reply.Numeric(c, RplInfo, s.Options.ServerInfo)
	s.Reply.Numeric(c, RplEndOfInfo, "End of INFO list")
}

func handleLinks(s *Server, c *Connection, msg irc.Message) {
	// Server linking is out of scope; this server only ever reports itself.
	s.Reply.Numeric(c, RplLinks, s.Options.ServerName, s.Options.ServerName, "0 "+s.Options.ServerInfo)
	s.Reply.Numeric(c, RplEndOfLinks, "*", "End of LINKS list")
}

func handleStats(s *Server, c *Connection, msg irc.Message) {
	query := "*"
	if len(msg.Params) > 0 {
		query = msg.Params[0]
	}
	switch query {
	case "u":
		uptime := int64(time.Since(s.startedAt).Seconds())
		s.Reply.Numeric(c, RplStatsUptime, "Server Up "+strconv.FormatInt(uptime, 10)+" seconds")
	case "o":
		for name := range s.Options.Opers {
			s.Reply.Numeric(c, RplStatsOLine, "O", "*", name)
		}
	}
	s.Reply.Numeric(c, RplEndOfStats, query, "End of STATS report")
}
