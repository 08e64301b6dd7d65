package main

import (
	"net"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

func newTestWorld(d Dialect) *World {
	modes := NewModeRegistry(d)
	chanTypes := NewChannelTypeRegistry()
	opts := &Options{Dialect: d, WhowasHistorySize: 10}
	return NewWorld(opts, modes, chanTypes, hclog.NewNullLogger())
}

func newTestConn(id ConnID, nick string) *Connection {
	client, _ := net.Pipe()
	c := NewConnection(id, client, 0, hclog.NewNullLogger())
	c.Nick = nick
	c.User = "u"
	c.State = StateRegistered
	return c
}

func TestWorldInsertUserRejectsDuplicateNick(t *testing.T) {
	w := newTestWorld(Rfc1459)
	a := newTestConn(1, "alice")
	b := newTestConn(2, "alice")

	require.NoError(t, w.InsertUser(a))
	require.Error(t, w.InsertUser(b))
}

func TestWorldRenameUserRoundTrip(t *testing.T) {
	w := newTestWorld(Rfc1459)
	a := newTestConn(1, "alice")
	require.NoError(t, w.InsertUser(a))

	require.NoError(t, w.RenameUser(a, "bob"))

	_, foundOld := w.LookupNick("alice")
	require.False(t, foundOld, "old nick must no longer resolve")

	found, ok := w.LookupNick("bob")
	require.True(t, ok)
	require.Equal(t, a, found)
}

func TestWorldJoinGrantsCreatorHighestRank(t *testing.T) {
	w := newTestWorld(Modern)
	a := newTestConn(1, "alice")
	require.NoError(t, w.InsertUser(a))

	ch, created, already, err := w.Join(a, "#room")
	require.NoError(t, err)
	require.True(t, created)
	require.False(t, already)

	m := ch.Members[w.canon("alice")]
	require.True(t, m.HasRank('o'))
}

func TestWorldJoinIsIdempotentForExistingMember(t *testing.T) {
	w := newTestWorld(Rfc1459)
	a := newTestConn(1, "alice")
	require.NoError(t, w.InsertUser(a))

	_, _, _, err := w.Join(a, "#room")
	require.NoError(t, err)

	_, created, already, err := w.Join(a, "#room")
	require.NoError(t, err)
	require.False(t, created)
	require.True(t, already)
}

func TestWorldPartFreesEmptyChannel(t *testing.T) {
	w := newTestWorld(Rfc1459)
	a := newTestConn(1, "alice")
	require.NoError(t, w.InsertUser(a))

	_, _, _, err := w.Join(a, "#room")
	require.NoError(t, err)

	_, ok := w.Part(a, "#room")
	require.True(t, ok)

	_, exists := w.LookupChannel("#room")
	require.False(t, exists, "empty channel must be removed (I3)")
}

func TestWorldRemoveUserSweepsMemberships(t *testing.T) {
	w := newTestWorld(Rfc1459)
	a := newTestConn(1, "alice")
	b := newTestConn(2, "bob")
	require.NoError(t, w.InsertUser(a))
	require.NoError(t, w.InsertUser(b))

	_, _, _, err := w.Join(a, "#room")
	require.NoError(t, err)
	_, _, _, err = w.Join(b, "#room")
	require.NoError(t, err)

	affected := w.RemoveUser(a, "bye")
	require.Len(t, affected, 1)

	ch, ok := w.LookupChannel("#room")
	require.True(t, ok, "channel should survive since bob remains")
	_, stillMember := ch.Members[w.canon("alice")]
	require.False(t, stillMember)

	_, found := w.LookupNick("alice")
	require.False(t, found)
}
