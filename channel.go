package main

import "time"

// ListEntry is one mask in a ban/ban-exception/invite-exception list, or one
// nick in a channel's invite list (§3 "Mode instance", §4.4 list modes).
type ListEntry struct {
	Mask  string
	SetBy string
	SetAt time.Time
}

// Membership is the (connection, channel) edge of §3's "Member entry". It
// carries the subset of ranks the dialect permits.
type Membership struct {
	Conn    *Connection
	Channel *Channel
	Ranks   map[byte]struct{}
}

func newMembership(c *Connection, ch *Channel) *Membership {
	return &Membership{Conn: c, Channel: ch, Ranks: map[byte]struct{}{}}
}

// HasRank reports whether the member holds the given rank letter (I4: at
// most one copy, so this is a set membership test).
func (m *Membership) HasRank(letter byte) bool {
	_, ok := m.Ranks[letter]
	return ok
}

func (m *Membership) grant(letter byte)  { m.Ranks[letter] = struct{}{} }
func (m *Membership) revoke(letter byte) { delete(m.Ranks, letter) }

// HighestRank returns the member's most privileged rank, if any, used to
// compute the NAMES/WHO display prefix.
func (m *Membership) HighestRank(reg *ModeRegistry) (Rank, bool) {
	for _, rk := range reg.RanksByLevel() {
		if m.HasRank(rk.Letter) {
			return rk, true
		}
	}
	return Rank{}, false
}

// Channel is the §3/§4.4 channel record. Canonicalized name is the map key
// in World; Name retains the form the creator supplied.
type Channel struct {
	Name      string
	Type      ChannelType
	CreatedAt time.Time

	Topic      string
	TopicSetBy string
	TopicSetAt time.Time

	// Members is keyed by canonical nick (I2 mirrors Connection.Channels).
	Members map[string]*Membership

	// Modes is the set of boolean channel modes currently active (i, m, n, s,
	// p, t, c, T — anything without its own dedicated field below).
	Modes map[byte]struct{}

	Key   string // non-empty iff +k is set (I5)
	Limit int    // >0 iff +l is set (I5)

	Bans             []ListEntry
	BanExceptions    []ListEntry
	InviteExceptions []ListEntry

	// Invited holds nicks (canonical) that have been INVITEd, letting them
	// bypass +i once. Not itself a mode letter.
	Invited map[string]struct{}
}

func newChannel(name string, t ChannelType) *Channel {
	return &Channel{
		Name:      name,
		Type:      t,
		CreatedAt: time.Now(),
		Members:   map[string]*Membership{},
		Modes:     map[byte]struct{}{},
		Invited:   map[string]struct{}{},
	}
}

func (c *Channel) HasMode(letter byte) bool {
	_, ok := c.Modes[letter]
	return ok
}

func (c *Channel) setMode(letter byte)   { c.Modes[letter] = struct{}{} }
func (c *Channel) unsetMode(letter byte) { delete(c.Modes, letter) }

// Empty reports whether the channel has no members (I3: such a channel must
// not be reachable via World.channels once observed).
func (c *Channel) Empty() bool { return len(c.Members) == 0 }

// listFor returns a pointer to the slice backing a list-mode letter, so
// callers can append/filter it in place.
func (c *Channel) listFor(letter byte) *[]ListEntry {
	switch letter {
	case 'b':
		return &c.Bans
	case 'e':
		return &c.BanExceptions
	case 'I':
		return &c.InviteExceptions
	default:
		return nil
	}
}

// addListEntry appends a mask to a list mode, deduplicating by mask (I6).
func (c *Channel) addListEntry(letter byte, mask, setBy string) bool {
	list := c.listFor(letter)
	if list == nil {
		return false
	}
	for _, e := range *list {
		if e.Mask == mask {
			return false
		}
	}
	*list = append(*list, ListEntry{Mask: mask, SetBy: setBy, SetAt: time.Now()})
	return true
}

// removeListEntry removes a mask from a list mode. Reports whether it was
// present.
func (c *Channel) removeListEntry(letter byte, mask string) bool {
	list := c.listFor(letter)
	if list == nil {
		return false
	}
	for i, e := range *list {
		if e.Mask == mask {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Channel) isInvited(nick string) bool {
	_, ok := c.Invited[nick]
	return ok
}
