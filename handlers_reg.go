package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/horgh/irc"
)

func nickOrStar(c *Connection) string {
	if c.Nick == "" {
		return "*"
	}
	return c.Nick
}

func handlePass(s *Server, c *Connection, msg irc.Message) {
	if c.Registered() {
		s.Reply.Numeric(c, ErrAlreadyRegistered, "You may not reregister")
		return
	}
	if s.Options.ServerPass == "" || msg.Params[0] == s.Options.ServerPass {
		c.PassOK = true
		return
	}
	// §7b: PASS failure during registration closes the link outright.
	c.State = StateClosing
	s.Reply.FromServer(c, "ERROR", "Bad Password")
	c.destroy()
}

func handleNick(s *Server, c *Connection, msg irc.Message) {
	if len(msg.Params) < 1 || msg.Params[0] == "" {
		s.Reply.Numeric(c, ErrNoNicknameGiven, "No nickname given")
		return
	}
	newNick := msg.Params[0]
	if !isValidNick(s.Options.Dialect, s.Options.MaxNickLength, newNick) {
		s.Reply.Numeric(c, ErrErroneusNickname, newNick, "Erroneous nickname")
		return
	}

	if !c.Registered() {
		if existing, taken := s.World.LookupNick(newNick); taken && existing != c {
			s.Reply.Numeric(c, ErrNicknameInUse, newNick, "Nickname is already in use")
			return
		}
		c.Nick = newNick
		if c.State < StateNickSeen {
			c.State = StateNickSeen
		}
		s.maybeCompleteRegistration(c)
		return
	}

	oldMask := c.Usermask()
	if err := s.World.RenameUser(c, newNick); err != nil {
		s.Reply.Numeric(c, ErrNicknameInUse, newNick, "Nickname is already in use")
		return
	}
	s.announceNickChange(c, oldMask)
}

// announceNickChange implements §4.6 NICK change: every user sharing any
// channel with the renamer, plus the renamer themself, sees the change.
func (s *Server) announceNickChange(c *Connection, oldMask string) {
	notified := map[ConnID]struct{}{c.ID: {}}
	s.Reply.FromUser(c, oldMask, "NICK", c.Nick)

	for _, m := range c.Channels {
		for _, member := range m.Channel.Members {
			if _, done := notified[member.Conn.ID]; done {
				continue
			}
			notified[member.Conn.ID] = struct{}{}
			s.Reply.FromUser(member.Conn, oldMask, "NICK", c.Nick)
		}
	}
}

func handleUser(s *Server, c *Connection, msg irc.Message) {
	if c.Registered() {
		s.Reply.Numeric(c, ErrAlreadyRegistered, "You may not reregister")
		return
	}

	user := msg.Params[0]
	if !isValidUser(len(user)+1, user) {
		user = "user"
	}
	c.User = user

	realName := msg.Params[len(msg.Params)-1]
	if len(realName) > maxRealNameLength {
		realName = realName[:maxRealNameLength]
	}
	c.RealName = realName

	if c.State < StateUserSeen {
		c.State = StateUserSeen
	}
	s.maybeCompleteRegistration(c)
}

func handleCap(s *Server, c *Connection, msg irc.Message) {
	if len(msg.Params) == 0 {
		return
	}
	switch strings.ToUpper(msg.Params[0]) {
	case "LS":
		c.CapNegotiating = true
		s.Reply.FromServer(c, "CAP", nickOrStar(c), "LS", "")
	case "LIST":
		s.Reply.FromServer(c, "CAP", nickOrStar(c), "LIST", "")
	case "REQ":
		requested := ""
		if len(msg.Params) > 1 {
			requested = msg.Params[1]
		}
		// No capabilities are offered, so every request is NAKed.
		s.Reply.FromServer(c, "CAP", nickOrStar(c), "NAK", requested)
	case "END":
		c.CapNegotiating = false
		s.maybeCompleteRegistration(c)
	}
}

func handleQuit(s *Server, c *Connection, msg irc.Message) {
	reason := "Client Quit"
	if len(msg.Params) > 0 && msg.Params[0] != "" {
		reason = msg.Params[0]
	}
	s.disconnect(c, reason)
}

func handlePing(s *Server, c *Connection, msg irc.Message) {
	token := s.Options.ServerName
	if len(msg.Params) > 0 {
		token = msg.Params[0]
	}
	s.Reply.FromServer(c, "PONG", s.Options.ServerName, token)
}

func handlePong(s *Server, c *Connection, msg irc.Message) {
	// Liveness is already recorded by Connection.touch() in the reactor;
	// PONG itself needs no further action.
}

// handleError receives a peer's ERROR notification. It carries no reply of
// its own (§4.6): the sender is already tearing the link down.
func handleError(s *Server, c *Connection, msg irc.Message) {
	reason := "Remote ERROR"
	if len(msg.Params) > 0 && msg.Params[0] != "" {
		reason = msg.Params[0]
	}
	s.disconnect(c, reason)
}

// maybeCompleteRegistration advances Accepted/NickSeen/UserSeen to
// Registered once PASS/NICK/USER are all satisfied and CAP negotiation (if
// any) has ended (§4.11).
func (s *Server) maybeCompleteRegistration(c *Connection) {
	if c.Registered() || c.CapNegotiating {
		return
	}
	if !c.PassOK || c.Nick == "" || c.User == "" {
		return
	}

	if err := s.World.InsertUser(c); err != nil {
		attempted := c.Nick
		c.Nick = ""
		c.State = StateUserSeen
		s.Reply.FromServer(c, ErrNicknameInUse, nickOrStar(c), attempted, "Nickname is already in use")
		return
	}

	c.State = StateRegistered
	s.sendWelcome(c)
}

func (s *Server) sendWelcome(c *Connection) {
	o := s.Options

	s.Reply.Numeric(c, RplWelcome, "Welcome to the "+o.ServerName+" IRC Network "+c.Usermask())
	s.Reply.Numeric(c, RplYourHost, "Your host is "+o.ServerName+", running version "+o.Version)
	s.Reply.Numeric(c, RplCreated, "This server was created "+s.startedAt.Format(time.RFC1123))
	s.Reply.Numeric(c, RplMyInfo, o.ServerName+" "+o.Version+" o "+modeLetters(s.Modes))

	if o.Dialect.atLeast(Modern) {
		s.Reply.Numeric(c,
			RplISupport,
			"NICKLEN="+strconv.Itoa(o.MaxNickLength),
			"CHANNELLEN="+strconv.Itoa(o.MaxChannelNameLength),
			"CHANTYPES=#",
			"are supported by this server")
	}

	s.sendMotd(c)

	if m := c.ModeString(); m != "" {
		s.Reply.FromUser(c, c.Usermask(), "MODE", c.Nick, m)
	}
}

func (s *Server) sendMotd(c *Connection) {
	if s.Options.MOTD == nil || len(s.Options.MOTD.Lines) == 0 {
		s.Reply.Numeric(c, ErrNoMotd, "MOTD File is missing")
		return
	}

	s.Reply.Numeric(c, RplMotdStart, "- "+s.Options.ServerName+" Message of the day -")
	for _, line := range s.Options.MOTD.Lines {
		s.Reply.Numeric(c, RplMotd, "- "+line)
	}
	s.Reply.Numeric(c, RplEndOfMotd, "End of MOTD command")
}

func modeLetters(reg *ModeRegistry) string {
	var b strings.Builder
	for letter := range reg.userModes {
		b.WriteByte(letter)
	}
	return b.String()
}
