package main

import (
	"net"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/horgh/irc"
)

func newChannelTestServer(d Dialect) *Server {
	opts := &Options{
		Dialect:              d,
		ServerName:           "test.server",
		MaxChannelsPerUser:   10,
		MaxChannelNameLength: 50,
	}
	return &Server{
		Options:   opts,
		World:     newTestWorld(d),
		Modes:     NewModeRegistry(d),
		ChanTypes: NewChannelTypeRegistry(),
		Reply:     NewReplier(opts.ServerName),
		Commands:  NewCommandRegistry(),
		Log:       hclog.NewNullLogger(),
	}
}

func newChannelTestConn(id ConnID, nick string) *Connection {
	client, _ := net.Pipe()
	c := NewConnection(id, client, 0, hclog.NewNullLogger())
	c.Nick = nick
	c.User = "u"
	c.State = StateRegistered
	return c
}

func drainAll(c *Connection) []irc.Message {
	var out []irc.Message
	for {
		select {
		case m := <-c.WriteChan:
			out = append(out, m)
		default:
			return out
		}
	}
}

func TestJoinCreatesChannelAndGrantsOp(t *testing.T) {
	s := newChannelTestServer(Modern)
	alice := newChannelTestConn(1, "alice")
	requireNoError(t, s.World.InsertUser(alice))

	s.joinOne(alice, "#room", "")

	ch, ok := s.World.LookupChannel("#room")
	if !ok {
		t.Fatalf("expected #room to exist after JOIN")
	}
	m := ch.Members[s.World.canon("alice")]
	if !m.HasRank('o') {
		t.Errorf("expected channel creator to hold op")
	}

	msgs := drainAll(alice)
	foundJoin := false
	for _, msg := range msgs {
		if msg.Command == "JOIN" {
			foundJoin = true
		}
	}
	if !foundJoin {
		t.Errorf("expected a JOIN announcement to be queued for the joiner, got %v", msgs)
	}
}

func TestJoinRejectsBannedUser(t *testing.T) {
	s := newChannelTestServer(Modern)
	alice := newChannelTestConn(1, "alice")
	bob := newChannelTestConn(2, "bob")
	requireNoError(t, s.World.InsertUser(alice))
	requireNoError(t, s.World.InsertUser(bob))

	s.joinOne(alice, "#room", "")
	ch, _ := s.World.LookupChannel("#room")
	ch.addListEntry('b', bob.Usermask(), alice.Usermask())

	drainAll(alice)
	s.joinOne(bob, "#room", "")

	msgs := drainAll(bob)
	if len(msgs) != 1 || msgs[0].Command != ErrBannedFromChan {
		t.Fatalf("expected a single %s reply, got %v", ErrBannedFromChan, msgs)
	}

	if _, onChan := ch.Members[s.World.canon("bob")]; onChan {
		t.Errorf("banned user should not have become a member")
	}
}

func TestTopicLockRequiresOp(t *testing.T) {
	s := newChannelTestServer(Modern)
	alice := newChannelTestConn(1, "alice")
	bob := newChannelTestConn(2, "bob")
	requireNoError(t, s.World.InsertUser(alice))
	requireNoError(t, s.World.InsertUser(bob))

	s.joinOne(alice, "#room", "")
	ch, _ := s.World.LookupChannel("#room")
	ch.setMode('t')

	_, _, _, err := s.World.Join(bob, "#room")
	requireNoError(t, err)
	drainAll(alice)
	drainAll(bob)

	handleTopic(s, bob, irc.Message{Params: []string{"#room", "new topic"}})

	msgs := drainAll(bob)
	if len(msgs) != 1 || msgs[0].Command != ErrChanOPrivsNeeded {
		t.Fatalf("expected %s, got %v", ErrChanOPrivsNeeded, msgs)
	}
	if ch.Topic != "" {
		t.Errorf("topic should not have changed, got %q", ch.Topic)
	}
}

func TestPartFreesEmptyChannelAfterAnnouncement(t *testing.T) {
	s := newChannelTestServer(Modern)
	alice := newChannelTestConn(1, "alice")
	requireNoError(t, s.World.InsertUser(alice))

	s.joinOne(alice, "#room", "")
	drainAll(alice)

	handlePart(s, alice, irc.Message{Params: []string{"#room", "bye"}})

	msgs := drainAll(alice)
	if len(msgs) != 1 || msgs[0].Command != "PART" {
		t.Fatalf("expected a single PART announcement, got %v", msgs)
	}

	if _, exists := s.World.LookupChannel("#room"); exists {
		t.Errorf("channel should have been freed once empty (I3)")
	}
}

func requireNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}
