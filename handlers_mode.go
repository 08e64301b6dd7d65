package main

import (
	"strconv"
	"strings"

	"github.com/horgh/irc"
)

func formatModeChange(plus, minus string) string {
	s := ""
	if plus != "" {
		s += "+" + plus
	}
	if minus != "" {
		s += "-" + minus
	}
	return s
}

func handleMode(s *Server, c *Connection, msg irc.Message) {
	target := msg.Params[0]
	if s.ChanTypes.IsRegisteredPrefix(target[0]) {
		handleChannelMode(s, c, msg)
		return
	}
	handleUserMode(s, c, msg)
}

func handleUserMode(s *Server, c *Connection, msg irc.Message) {
	nick := msg.Params[0]
	if canonicalizeNick(s.Options.Dialect, nick) != canonicalizeNick(s.Options.Dialect, c.Nick) {
		s.Reply.Numeric(c, ErrUsersDontMatch, "Cannot change mode for other users")
		return
	}
	if len(msg.Params) < 2 {
		s.Reply.FromUser(c, c.Usermask(), "MODE", c.Nick, c.ModeString())
		return
	}

	var plus, minus strings.Builder
	adding := true
	for i := 0; i < len(msg.Params[1]); i++ {
		ch := msg.Params[1][i]
		switch ch {
		case '+':
			adding = true
			continue
		case '-':
			adding = false
			continue
		}

		um, ok := s.Modes.UserMode(ch)
		if !ok {
			s.Reply.Numeric(c, ErrUmodeUnknownFlag, "Unknown MODE flag")
			continue
		}
		// The oper flag is granted only by OPER and revoked only by the server
		// (e.g. on KILL); MODE never touches it directly.
		if ch == 'o' {
			continue
		}
		if um.OperOnly && !c.IsOperator() {
			continue
		}

		if adding {
			if _, already := c.Modes[ch]; already {
				continue
			}
			c.Modes[ch] = struct{}{}
			plus.WriteByte(ch)
		} else {
			if _, set := c.Modes[ch]; !set {
				continue
			}
			delete(c.Modes, ch)
			minus.WriteByte(ch)
		}
	}

	if change := formatModeChange(plus.String(), minus.String()); change != "" {
		s.Reply.FromUser(c, c.Usermask(), "MODE", c.Nick, change)
	}
}

func channelModeString(ch *Channel) string {
	var b strings.Builder
	b.WriteByte('+')
	for letter := range ch.Modes {
		b.WriteByte(letter)
	}
	if ch.Key != "" {
		b.WriteByte('k')
	}
	if ch.Limit > 0 {
		b.WriteByte('l')
	}
	return b.String()
}

func handleChannelMode(s *Server, c *Connection, msg irc.Message) {
	name := msg.Params[0]
	ch, ok := s.World.LookupChannel(name)
	if !ok {
		s.Reply.Numeric(c, ErrNoSuchChannel, name, "No such channel")
		return
	}

	if len(msg.Params) < 2 {
		s.Reply.Numeric(c, RplChannelMode, ch.Name, channelModeString(ch))
		return
	}

	nickKey := canonicalizeNick(s.Options.Dialect, c.Nick)
	member, isMember := ch.Members[nickKey]

	requirePrivilege := func(minRank int) bool {
		if !isMember {
			return false
		}
		rk, has := member.HighestRank(s.Modes)
		return has && rk.Level >= minRank
	}

	args := msg.Params[2:]
	argIdx := 0
	nextArg := func() (string, bool) {
		if argIdx >= len(args) {
			return "", false
		}
		v := args[argIdx]
		argIdx++
		return v, true
	}

	adding := true
	var plus, minus strings.Builder
	var plusArgs, minusArgs []string

	changes := msg.Params[1]
	for i := 0; i < len(changes); i++ {
		letter := changes[i]
		switch letter {
		case '+':
			adding = true
			continue
		case '-':
			adding = false
			continue
		}

		if rk, isRank := s.Modes.Rank(letter); isRank {
			target, hasArg := nextArg()
			if !hasArg {
				continue
			}
			if !requirePrivilege(s.Modes.RankChangeMinLevel()) {
				s.Reply.Numeric(c, ErrChanOPrivsNeeded, ch.Name, "You're not channel operator")
				continue
			}
			targetConn, exists := s.World.LookupNick(target)
			if !exists {
				s.Reply.Numeric(c, ErrNoSuchNick, target, "No such nick")
				continue
			}
			targetMember, onChan := ch.Members[canonicalizeNick(s.Options.Dialect, targetConn.Nick)]
			if !onChan {
				s.Reply.Numeric(c, ErrUserNotInChannel, target, ch.Name, "They aren't on that channel")
				continue
			}
			if adding {
				targetMember.grant(rk.Letter)
				plus.WriteByte(letter)
				plusArgs = append(plusArgs, targetConn.Nick)
			} else {
				targetMember.revoke(rk.Letter)
				minus.WriteByte(letter)
				minusArgs = append(minusArgs, targetConn.Nick)
			}
			continue
		}

		cm, isChanMode := s.Modes.ChannelMode(letter)
		if !isChanMode {
			s.Reply.Numeric(c, ErrUnknownMode, string(letter), "is unknown mode char to me")
			continue
		}

		if cm.IsList {
			arg := ""
			takesArg := (adding && cm.ParamOnSet) || (!adding && cm.ParamOnUnset)
			if takesArg {
				if v, ok := nextArg(); ok {
					arg = v
				}
			}
			if arg == "" {
				s.sendList(c, ch, letter)
				continue
			}
			if !requirePrivilege(cm.MinRank) {
				s.Reply.Numeric(c, ErrChanOPrivsNeeded, ch.Name, "You're not channel operator")
				continue
			}
			if adding {
				if ch.addListEntry(letter, arg, c.Usermask()) {
					plus.WriteByte(letter)
					plusArgs = append(plusArgs, arg)
				}
			} else {
				if ch.removeListEntry(letter, arg) {
					minus.WriteByte(letter)
					minusArgs = append(minusArgs, arg)
				}
			}
			continue
		}

		if !requirePrivilege(cm.MinRank) {
			s.Reply.Numeric(c, ErrChanOPrivsNeeded, ch.Name, "You're not channel operator")
			continue
		}

		switch letter {
		case 'k':
			if adding {
				arg, hasArg := nextArg()
				if !hasArg {
					continue
				}
				if ch.Key != "" {
					s.Reply.Numeric(c, ErrKeySet, ch.Name, "Channel key already set")
					continue
				}
				ch.Key = arg
				plus.WriteByte(letter)
				plusArgs = append(plusArgs, arg)
			} else {
				nextArg()
				ch.Key = ""
				minus.WriteByte(letter)
			}
		case 'l':
			if adding {
				arg, hasArg := nextArg()
				if !hasArg {
					continue
				}
				n, err := strconv.Atoi(arg)
				if err != nil || n <= 0 {
					continue
				}
				ch.Limit = n
				plus.WriteByte(letter)
				plusArgs = append(plusArgs, arg)
			} else {
				ch.Limit = 0
				minus.WriteByte(letter)
			}
		default:
			if adding {
				if ch.HasMode(letter) {
					continue
				}
				ch.setMode(letter)
				plus.WriteByte(letter)
			} else {
				if !ch.HasMode(letter) {
					continue
				}
				ch.unsetMode(letter)
				minus.WriteByte(letter)
			}
		}
	}

	change := formatModeChange(plus.String(), minus.String())
	if change == "" {
		return
	}

	allArgs := append([]string{ch.Name, change}, append(plusArgs, minusArgs...)...)
	for _, m := range ch.Members {
		s.Reply.FromUser(m.Conn, c.Usermask(), "MODE", allArgs...)
	}
}

func (s *Server) sendList(c *Connection, ch *Channel, letter byte) {
	list := ch.listFor(letter)
	if list == nil {
		return
	}

	startNum, endNum := RplBanList, RplEndOfBanList
	switch letter {
	case 'e':
		startNum, endNum = RplExceptList, RplEndOfExceptList
	case 'I':
		startNum, endNum = RplInviteList, RplEndOfInviteList
	}

	for _, e := range *list {
		s.Reply.Numeric(c, startNum, ch.Name, e.Mask, e.SetBy, strconv.FormatInt(e.SetAt.Unix(), 10))
	}
	s.Reply.Numeric(c, endNum, ch.Name, "End of list")
}
