package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/horgh/irc"
)

func matchesAnyList(list []ListEntry, usermask string) bool {
	for _, e := range list {
		if maskMatch(usermask, e.Mask) {
			return true
		}
	}
	return false
}

func handleJoin(s *Server, c *Connection, msg irc.Message) {
	if msg.Params[0] == "0" {
		for _, m := range c.Channels {
			ch := m.Channel
			s.announcePart(c, ch, "")
			s.World.Part(c, ch.Name)
		}
		return
	}

	names := strings.Split(msg.Params[0], ",")
	var keys []string
	if len(msg.Params) > 1 {
		keys = strings.Split(msg.Params[1], ",")
	}

	for i, name := range names {
		key := ""
		if i < len(keys) {
			key = keys[i]
		}
		s.joinOne(c, name, key)
	}
}

func (s *Server) joinOne(c *Connection, name, key string) {
	if len(c.Channels) >= s.Options.MaxChannelsPerUser {
		s.Reply.Numeric(c, ErrTooManyChannels, name, "You have joined too many channels")
		return
	}
	if !isValidChannelName(s.ChanTypes, s.Options.MaxChannelNameLength, name) {
		s.Reply.Numeric(c, ErrNoSuchChannel, name, "No such channel")
		return
	}

	if existing, exists := s.World.LookupChannel(name); exists {
		nickKey := canonicalizeNick(s.Options.Dialect, c.Nick)
		if _, already := existing.Members[nickKey]; already {
			return
		}
		mask := c.Usermask()
		if existing.HasMode('i') && !existing.isInvited(nickKey) && !matchesAnyList(existing.InviteExceptions, mask) {
			s.Reply.Numeric(c, ErrInviteOnlyChan, name, "Cannot join channel (+i)")
			return
		}
		if existing.Key != "" && existing.Key != key {
			s.Reply.Numeric(c, ErrBadChannelKey, name, "Cannot join channel (+k)")
			return
		}
		if existing.Limit > 0 && len(existing.Members) >= existing.Limit {
			s.Reply.Numeric(c, ErrChannelIsFull, name, "Cannot join channel (+l)")
			return
		}
		if matchesAnyList(existing.Bans, mask) && !matchesAnyList(existing.BanExceptions, mask) {
			s.Reply.Numeric(c, ErrBannedFromChan, name, "Cannot join channel (+b)")
			return
		}
	}

	ch, _, already, err := s.World.Join(c, name)
	if err != nil {
		s.Reply.Numeric(c, ErrNoSuchChannel, name, "No such channel")
		return
	}
	if already {
		return
	}

	s.announceJoin(c, ch)
	s.sendTopic(c, ch)
	s.sendNames(c, ch)
}

func (s *Server) announceJoin(c *Connection, ch *Channel) {
	for _, m := range ch.Members {
		s.Reply.FromUser(m.Conn, c.Usermask(), "JOIN", ch.Name)
	}
}

func (s *Server) sendTopic(c *Connection, ch *Channel) {
	if ch.Topic == "" {
		s.Reply.Numeric(c, RplNoTopic, ch.Name, "No topic is set")
		return
	}
	s.Reply.Numeric(c, RplTopic, ch.Name, ch.Topic)
	s.Reply.Numeric(c, RplTopicWhoTime, ch.Name, ch.TopicSetBy, strconv.FormatInt(ch.TopicSetAt.Unix(), 10))
}

func (s *Server) sendNames(c *Connection, ch *Channel) {
	var names []string
	for _, m := range ch.Members {
		prefix := ""
		if rk, ok := m.HighestRank(s.Modes); ok {
			prefix = string(rk.Prefix)
		}
		names = append(names, prefix+m.Conn.Nick)
	}
	s.Reply.Numeric(c, RplNameReply, "=", ch.Name, strings.Join(names, " "))
	s.Reply.Numeric(c, RplEndOfNames, ch.Name, "End of NAMES list")
}

func handlePart(s *Server, c *Connection, msg irc.Message) {
	reason := ""
	if len(msg.Params) > 1 {
		reason = msg.Params[1]
	}

	for _, name := range strings.Split(msg.Params[0], ",") {
		ch, ok := s.World.LookupChannel(name)
		if !ok {
			s.Reply.Numeric(c, ErrNoSuchChannel, name, "No such channel")
			continue
		}
		nickKey := canonicalizeNick(s.Options.Dialect, c.Nick)
		if _, member := ch.Members[nickKey]; !member {
			s.Reply.Numeric(c, ErrNotOnChannel, name, "You're not on that channel")
			continue
		}
		s.announcePart(c, ch, reason)
		s.World.Part(c, name)
	}
}

func (s *Server) announcePart(c *Connection, ch *Channel, reason string) {
	params := []string{ch.Name}
	if reason != "" {
		params = append(params, reason)
	}
	for _, m := range ch.Members {
		s.Reply.FromUser(m.Conn, c.Usermask(), "PART", params...)
	}
}

func handleTopic(s *Server, c *Connection, msg irc.Message) {
	name := msg.Params[0]
	ch, ok := s.World.LookupChannel(name)
	if !ok {
		s.Reply.Numeric(c, ErrNoSuchChannel, name, "No such channel")
		return
	}

	nickKey := canonicalizeNick(s.Options.Dialect, c.Nick)
	m, isMember := ch.Members[nickKey]
	if !isMember {
		s.Reply.Numeric(c, ErrNotOnChannel, name, "You're not on that channel")
		return
	}

	if len(msg.Params) < 2 {
		s.sendTopic(c, ch)
		return
	}

	if ch.HasMode('t') {
		rk, hasRank := m.HighestRank(s.Modes)
		if !hasRank || rk.Level < s.Modes.RankChangeMinLevel() {
			s.Reply.Numeric(c, ErrChanOPrivsNeeded, name, "You're not channel operator")
			return
		}
	}

	ch.Topic = msg.Params[1]
	ch.TopicSetBy = c.Usermask()
	ch.TopicSetAt = time.Now()

	for _, mm := range ch.Members {
		s.Reply.FromUser(mm.Conn, c.Usermask(), "TOPIC", ch.Name, ch.Topic)
	}
}

func handleNames(s *Server, c *Connection, msg irc.Message) {
	if len(msg.Params) == 0 {
		for _, ch := range s.World.AllChannels() {
			s.sendNames(c, ch)
		}
		return
	}
	for _, name := range strings.Split(msg.Params[0], ",") {
		if ch, ok := s.World.LookupChannel(name); ok {
			s.sendNames(c, ch)
		}
	}
}

func handleList(s *Server, c *Connection, msg irc.Message) {
	s.Reply.Numeric(c, RplListStart, "Channel", "Users Name")

	targets := s.World.AllChannels()
	if len(msg.Params) > 0 {
		wanted := map[string]bool{}
		for _, n := range strings.Split(msg.Params[0], ",") {
			wanted[canonicalizeChannel(s.Options.Dialect, n)] = true
		}
		var filtered []*Channel
		for _, ch := range targets {
			if wanted[canonicalizeChannel(s.Options.Dialect, ch.Name)] {
				filtered = append(filtered, ch)
			}
		}
		targets = filtered
	}

	for _, ch := range targets {
		if ch.HasMode('s') || ch.HasMode('p') {
			continue
		}
		s.Reply.Numeric(c, RplList, ch.Name, strconv.Itoa(len(ch.Members)), ch.Topic)
	}
	s.Reply.Numeric(c, RplListEnd, "End of LIST")
}

func handleInvite(s *Server, c *Connection, msg irc.Message) {
	nick, chanName := msg.Params[0], msg.Params[1]

	target, ok := s.World.LookupNick(nick)
	if !ok {
		s.Reply.Numeric(c, ErrNoSuchNick, nick, "No such nick")
		return
	}

	if ch, exists := s.World.LookupChannel(chanName); exists {
		nickKey := canonicalizeNick(s.Options.Dialect, c.Nick)
		m, isMember := ch.Members[nickKey]
		if !isMember {
			s.Reply.Numeric(c, ErrNotOnChannel, chanName, "You're not on that channel")
			return
		}
		if ch.HasMode('i') {
			rk, has := m.HighestRank(s.Modes)
			if !has || rk.Level < s.Modes.RankChangeMinLevel() {
				s.Reply.Numeric(c, ErrChanOPrivsNeeded, chanName, "You're not channel operator")
				return
			}
		}
		targetKey := canonicalizeNick(s.Options.Dialect, target.Nick)
		if _, already := ch.Members[targetKey]; already {
			s.Reply.Numeric(c, ErrUserOnChannel, target.Nick, chanName, "is already on channel")
			return
		}
		s.World.Invite(ch, target.Nick)
	}

	s.Reply.Numeric(c, RplInviting, target.Nick, chanName)
	s.Reply.FromUser(target, c.Usermask(), "INVITE", target.Nick, chanName)
}

func handleKick(s *Server, c *Connection, msg irc.Message) {
	chanName := msg.Params[0]
	targetNick := msg.Params[1]
	reason := c.Nick
	if len(msg.Params) > 2 {
		reason = msg.Params[2]
	}

	ch, ok := s.World.LookupChannel(chanName)
	if !ok {
		s.Reply.Numeric(c, ErrNoSuchChannel, chanName, "No such channel")
		return
	}

	nickKey := canonicalizeNick(s.Options.Dialect, c.Nick)
	m, isMember := ch.Members[nickKey]
	if !isMember {
		s.Reply.Numeric(c, ErrNotOnChannel, chanName, "You're not on that channel")
		return
	}
	rk, has := m.HighestRank(s.Modes)
	if !has || rk.Level < s.Modes.RankChangeMinLevel() {
		s.Reply.Numeric(c, ErrChanOPrivsNeeded, chanName, "You're not channel operator")
		return
	}

	target, ok := s.World.LookupNick(targetNick)
	if !ok {
		s.Reply.Numeric(c, ErrNoSuchNick, targetNick, "No such nick")
		return
	}
	targetKey := canonicalizeNick(s.Options.Dialect, target.Nick)
	if _, onChan := ch.Members[targetKey]; !onChan {
		s.Reply.Numeric(c, ErrUserNotInChannel, targetNick, chanName, "They aren't on that channel")
		return
	}

	for _, mm := range ch.Members {
		s.Reply.FromUser(mm.Conn, c.Usermask(), "KICK", ch.Name, target.Nick, reason)
	}
	s.World.Part(target, chanName)
}

// handleKnock is a Modern-only courtesy notice to a channel's ops asking to
// be let into an invite-only channel (§4.6 command table, ‡ commands).
func handleKnock(s *Server, c *Connection, msg irc.Message) {
	chanName := msg.Params[0]
	ch, ok := s.World.LookupChannel(chanName)
	if !ok {
		s.Reply.Numeric(c, ErrNoSuchChannel, chanName, "No such channel")
		return
	}
	if !ch.HasMode('i') {
		s.Reply.Numeric(c, ErrChanOPrivsNeeded, chanName, "Channel is not invite-only")
		return
	}
	for _, m := range ch.Members {
		if rk, has := m.HighestRank(s.Modes); has && rk.Level >= s.Modes.RankChangeMinLevel() {
			s.Reply.FromUser(m.Conn, c.Usermask(), "NOTICE", ch.Name, c.Nick+" is requesting an invite")
		}
	}
}
