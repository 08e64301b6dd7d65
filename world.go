package main

import (
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// World is the C4 component: the live graph of connections, nicks, and
// channels, plus the typed mutation operations (insert_user, rename_user,
// remove_user, join, part, ...) that restore invariants I1-I7 before
// returning, per §4.4. Grounded on the index trio horgh-catbox's Server
// keeps (ircd.go's Clients/nicks-style maps), generalized from that
// single-struct design into its own collaborator so the reactor (C8) can
// stay a thin driver.
type World struct {
	Options   *Options
	Modes     *ModeRegistry
	ChanTypes *ChannelTypeRegistry
	Whowas    *WhowasRing

	conns    map[ConnID]*Connection
	nicks    map[string]*Connection // canonical nick -> connection
	channels map[string]*Channel    // canonical name -> channel

	Log hclog.Logger
}

func NewWorld(opts *Options, modes *ModeRegistry, chanTypes *ChannelTypeRegistry, log hclog.Logger) *World {
	return &World{
		Options:   opts,
		Modes:     modes,
		ChanTypes: chanTypes,
		Whowas:    newWhowasRing(opts.WhowasHistorySize),
		conns:     map[ConnID]*Connection{},
		nicks:     map[string]*Connection{},
		channels:  map[string]*Channel{},
		Log:       log,
	}
}

func (w *World) canon(nick string) string     { return canonicalizeNick(w.Options.Dialect, nick) }
func (w *World) canonChan(name string) string { return canonicalizeChannel(w.Options.Dialect, name) }

// InsertConn registers a freshly accepted connection under the socket index.
// Listening sockets never pass through here (I7).
func (w *World) InsertConn(c *Connection) { w.conns[c.ID] = c }

// LookupConn finds a connection by ID.
func (w *World) LookupConn(id ConnID) (*Connection, bool) {
	c, ok := w.conns[id]
	return c, ok
}

// LookupNick returns the connection currently holding a nick (I1).
func (w *World) LookupNick(nick string) (*Connection, bool) {
	c, ok := w.nicks[w.canon(nick)]
	return c, ok
}

// LookupChannel returns a channel by name.
func (w *World) LookupChannel(name string) (*Channel, bool) {
	c, ok := w.channels[w.canonChan(name)]
	return c, ok
}

// InsertUser claims a nick for a connection that has just completed
// registration (I1).
func (w *World) InsertUser(c *Connection) error {
	key := w.canon(c.Nick)
	if existing, exists := w.nicks[key]; exists && existing != c {
		return errors.Errorf("nick already in use: %s", c.Nick)
	}
	w.nicks[key] = c
	return nil
}

// RenameUser atomically swaps a nick in the index (L1): either both the nick
// index and c.Nick change, or neither does.
func (w *World) RenameUser(c *Connection, newNick string) error {
	newKey := w.canon(newNick)
	if existing, exists := w.nicks[newKey]; exists && existing != c {
		return errors.Errorf("nick already in use: %s", newNick)
	}

	oldKey := w.canon(c.Nick)
	delete(w.nicks, oldKey)
	w.nicks[newKey] = c
	c.Nick = newNick

	// Mirror membership map keys so lookups by nick stay consistent;
	// membership itself is keyed by channel, not nick, so nothing else moves.
	return nil
}

// RemoveUser tears down a registered connection: every channel membership
// (I2/I3), the nick index entry (I1), and records WHOWAS history (§4.6).
func (w *World) RemoveUser(c *Connection, reason string) []*Channel {
	if c.Nick != "" {
		w.Whowas.Record(WhowasEntry{
			Nick:     c.Nick,
			User:     c.User,
			RealName: c.RealName,
			Host:     c.RemoteHost(),
			When:     time.Now(),
		})
	}

	var affected []*Channel
	for key := range c.Channels {
		if ch, ok := w.channels[key]; ok {
			affected = append(affected, ch)
			w.removeMember(ch, c)
		}
	}

	delete(w.nicks, w.canon(c.Nick))
	delete(w.conns, c.ID)
	return affected
}

// Join adds c to the named channel, creating it if absent and granting the
// creator the highest rank the dialect offers (§4.6 JOIN; half-op is never
// granted on creation). Returns the channel and whether it was just created.
// A rejoin by an existing member is a no-op (L2).
func (w *World) Join(c *Connection, name string) (ch *Channel, created bool, alreadyMember bool, err error) {
	key := w.canonChan(name)
	ch, existed := w.channels[key]
	if !existed {
		t, ok := w.ChanTypes.Lookup(name[0])
		if !ok {
			return nil, false, false, errors.Errorf("unknown channel type for %s", name)
		}
		ch = newChannel(name, t)
		w.channels[key] = ch
	}

	nickKey := w.canon(c.Nick)
	if _, already := ch.Members[nickKey]; already {
		return ch, false, true, nil
	}

	m := newMembership(c, ch)
	if !existed {
		m.grant(w.Modes.HighestRank().Letter)
	}
	ch.Members[nickKey] = m
	c.Channels[key] = m
	delete(ch.Invited, nickKey)

	return ch, !existed, false, nil
}

// Part removes c from the named channel, freeing it if it becomes empty
// (I3). ok is false if c was not a member (L2: callers must not treat this
// as an error needing a numeric beyond 442).
func (w *World) Part(c *Connection, name string) (ch *Channel, ok bool) {
	key := w.canonChan(name)
	ch, exists := w.channels[key]
	if !exists {
		return nil, false
	}
	if _, member := ch.Members[w.canon(c.Nick)]; !member {
		return ch, false
	}
	w.removeMember(ch, c)
	return ch, true
}

func (w *World) removeMember(ch *Channel, c *Connection) {
	nickKey := w.canon(c.Nick)
	chanKey := w.canonChan(ch.Name)
	delete(ch.Members, nickKey)
	delete(c.Channels, chanKey)
	if ch.Empty() {
		delete(w.channels, chanKey)
	}
}

// GrantRank adds a rank to a member, respecting I4 (set semantics already
// dedupe).
func (w *World) GrantRank(m *Membership, letter byte) { m.grant(letter) }

// RevokeRank removes a rank from a member.
func (w *World) RevokeRank(m *Membership, letter byte) { m.revoke(letter) }

// Invite records that nick has been invited to ch, letting them bypass +i
// once (§4.6 JOIN invite-list check).
func (w *World) Invite(ch *Channel, nick string) {
	ch.Invited[w.canon(nick)] = struct{}{}
}

// ChannelsSharedWith returns every channel c1 and c2 are both members of,
// used to scope NICK-change and QUIT announcements (§4.6).
func (w *World) ChannelsSharedWith(c1, c2 *Connection) []*Channel {
	var shared []*Channel
	for key := range c1.Channels {
		if _, ok := c2.Channels[key]; ok {
			if ch, exists := w.channels[key]; exists {
				shared = append(shared, ch)
			}
		}
	}
	return shared
}

// AllConns returns every connection, registered or not, for the reactor's
// ping sweep and shutdown broadcast.
func (w *World) AllConns() []*Connection {
	out := make([]*Connection, 0, len(w.conns))
	for _, c := range w.conns {
		out = append(out, c)
	}
	return out
}

// AllChannels returns every live channel, for LIST/STATS.
func (w *World) AllChannels() []*Channel {
	out := make([]*Channel, 0, len(w.channels))
	for _, ch := range w.channels {
		out = append(out, ch)
	}
	return out
}

// NumUsers, NumInvisible, NumOperators, NumChannels, NumUnknown back C9
// Stats without caching (§4.9).
func (w *World) NumUsers() int { return len(w.nicks) }

func (w *World) NumInvisible() int {
	n := 0
	for _, c := range w.nicks {
		if c.IsInvisible() {
			n++
		}
	}
	return n
}

func (w *World) NumOperators() int {
	n := 0
	for _, c := range w.nicks {
		if c.IsOperator() {
			n++
		}
	}
	return n
}

func (w *World) NumChannels() int { return len(w.channels) }

func (w *World) NumUnknown() int { return len(w.conns) - len(w.nicks) }
