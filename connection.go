package main

import (
	"bufio"
	"net"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/horgh/irc"
	"github.com/pkg/errors"
)

// conn wraps a net.Conn with the buffered read/write and deadline handling
// horgh-catbox's net.go uses, adapted to read/write whole lines rather than
// irc.Message directly (the line parser, C5, is a separate component here).
type conn struct {
	raw    net.Conn
	rw     *bufio.ReadWriter
	ioWait time.Duration
	ip     net.IP
}

func newConn(c net.Conn, ioWait time.Duration) conn {
	ip := net.IP{}
	if tcpAddr, ok := c.RemoteAddr().(*net.TCPAddr); ok {
		ip = tcpAddr.IP
	}
	return conn{
		raw:    c,
		rw:     bufio.NewReadWriter(bufio.NewReader(c), bufio.NewWriter(c)),
		ioWait: ioWait,
		ip:     ip,
	}
}

func (c conn) Close() error { return c.raw.Close() }

func (c conn) RemoteAddr() net.Addr { return c.raw.RemoteAddr() }

// readLine reads one line (including its terminator) from the connection.
func (c conn) readLine() (string, error) {
	if err := c.raw.SetReadDeadline(time.Now().Add(c.ioWait)); err != nil {
		return "", errors.Wrap(err, "setting read deadline")
	}
	line, err := c.rw.ReadString('\n')
	if err != nil {
		return line, errors.Wrap(err, "reading line")
	}
	return line, nil
}

// writeLine writes a raw line (already CRLF-terminated) to the connection.
func (c conn) writeLine(s string) error {
	if err := c.raw.SetWriteDeadline(time.Now().Add(c.ioWait)); err != nil {
		return errors.Wrap(err, "setting write deadline")
	}
	if _, err := c.rw.WriteString(s); err != nil {
		return errors.Wrap(err, "writing line")
	}
	if err := c.rw.Flush(); err != nil {
		return errors.Wrap(err, "flushing connection")
	}
	return nil
}

// ConnID uniquely identifies a connection for the lifetime of the process.
type ConnID uint64

// RegState is the connection-lifecycle state machine of spec §4.11:
// Accepted -> PassSeen? -> NickSeen -> UserSeen -> Registered -> Closing.
type RegState int

const (
	StateAccepted RegState = iota
	StateNickSeen
	StateUserSeen
	StateRegistered
	StateClosing
)

// Connection is the per-socket record described in spec §3. It is created
// on accept and, if it completes registration, is wrapped by a *User (see
// user.go) without losing its identity — the Connection stays the single
// owner of the socket and pending-output buffer throughout.
type Connection struct {
	ID ConnID

	Conn conn

	// IsListen distinguishes listening sockets from client sockets (I7). The
	// reactor never constructs a Connection for a listening socket in this
	// implementation (listeners are tracked separately in reactor.go); the
	// field exists to satisfy spec §3's data model and to make that invariant
	// checkable in tests.
	IsListen bool

	State RegState

	// Registration fields, populated incrementally by PASS/NICK/USER.
	PassOK   bool
	Nick     string
	User     string
	RealName string

	// CapNegotiating is true between CAP LS/REQ and CAP END (Modern only);
	// registration completion is suspended while true.
	CapNegotiating bool

	// Modes is the user's active mode set (user-mode letters, C2).
	Modes map[byte]struct{}

	// Channels holds this user's membership back-links, keyed by
	// canonicalized channel name (I2: mirrored by Channel.Members).
	Channels map[string]*Membership

	// OperName is set once OPER succeeds, used for STATS/log attribution.
	OperName string

	// Away holds the AWAY message, if any; empty means not away.
	Away string

	// Silence holds masks this user has asked never to receive PRIVMSG/NOTICE
	// from (Modern SILENCE, §4.6).
	Silence []string

	LastAction time.Time
	LastAlive  time.Time
	LastPing   time.Time

	// WriteChan is how other goroutines hand this connection's write-loop a
	// message to deliver, mirroring horgh-catbox's Client.WriteChan. This is
	// the "pending-output buffer" of spec §3: the buffer is the channel
	// itself plus whatever the OS socket buffer holds once written.
	WriteChan chan irc.Message

	// closed is set once destroy() has run, to make double-destroy a no-op.
	closed bool

	Log hclog.Logger
}

// NewConnection creates an unregistered Connection wrapping an accepted
// net.Conn.
func NewConnection(id ConnID, nc net.Conn, ioWait time.Duration, log hclog.Logger) *Connection {
	now := time.Now()
	return &Connection{
		ID:         id,
		Conn:       newConn(nc, ioWait),
		State:      StateAccepted,
		Modes:      map[byte]struct{}{},
		Channels:   map[string]*Membership{},
		LastAction: now,
		LastAlive:  now,
		LastPing:   now,
		WriteChan:  make(chan irc.Message, 64),
		Log:        log.With("conn_id", id),
	}
}

// RemoteAddr returns the remote address string for logging/usermask use.
func (c *Connection) RemoteHost() string {
	addr := c.Conn.RemoteAddr()
	if addr == nil {
		return "unknown"
	}
	if tcpAddr, ok := addr.(*net.TCPAddr); ok {
		return tcpAddr.IP.String()
	}
	return addr.String()
}

// touch records that the connection said something to us just now.
func (c *Connection) touch() {
	c.LastAction = time.Now()
	c.LastAlive = time.Now()
}

// readLoop continuously reads lines and hands them to deliver. It runs in
// its own goroutine per connection, the same shape as horgh-catbox's
// Client.readLoop, and reports termination via done.
func (c *Connection) readLoop(deliver func(ConnID, string), dead func(ConnID, error), done func()) {
	defer done()
	for {
		line, err := c.Conn.readLine()
		if err != nil {
			dead(c.ID, err)
			return
		}
		deliver(c.ID, line)
	}
}

// writeLoop drains WriteChan to the socket, encoding each message with
// github.com/horgh/irc. It stops when WriteChan is closed.
func (c *Connection) writeLoop(dead func(ConnID, error), done func()) {
	defer done()
	for msg := range c.WriteChan {
		line, err := msg.Encode()
		// ErrTruncated still yields a usable line; only a hard error aborts.
		if err != nil && errors.Cause(err) != irc.ErrTruncated {
			dead(c.ID, err)
			return
		}
		if werr := c.Conn.writeLine(line); werr != nil {
			dead(c.ID, werr)
			return
		}
	}
}

// enqueue appends a message to the connection's pending-output buffer. It
// never blocks indefinitely: WriteChan is buffered, and a full buffer
// indicates a stuck/abusive client, which we drop rather than let back-
// pressure stall the reactor (ordering guarantee O2 is preserved for
// clients that keep up; a dropped client will be reaped by the next
// transport error or ping timeout).
func (c *Connection) enqueue(msg irc.Message) {
	if c.closed {
		return
	}
	select {
	case c.WriteChan <- msg:
	default:
		c.Log.Warn("dropping message to slow client", "command", msg.Command)
	}
}

// destroy closes the write channel and the socket. Safe to call more than
// once.
func (c *Connection) destroy() {
	if c.closed {
		return
	}
	c.closed = true
	close(c.WriteChan)
	if err := c.Conn.Close(); err != nil {
		c.Log.Debug("error closing connection", "error", err)
	}
}

// Registered reports whether this connection completed the handshake.
func (c *Connection) Registered() bool {
	return c.State == StateRegistered
}

// IsOperator reports whether the user mode 'o' is set.
func (c *Connection) IsOperator() bool {
	_, ok := c.Modes['o']
	return ok
}

// IsInvisible reports whether the user mode 'i' is set.
func (c *Connection) IsInvisible() bool {
	_, ok := c.Modes['i']
	return ok
}

// Usermask computes nick!user@host on demand, per spec §3 ("Identity is by
// socket handle; the derived usermask is recomputed on demand").
func (c *Connection) Usermask() string {
	return c.Nick + "!" + c.User + "@" + c.RemoteHost()
}

// OnChannel reports whether this connection is a member of the channel.
func (c *Connection) OnChannel(ch *Channel) bool {
	_, ok := c.Channels[ch.Name]
	return ok
}

// ModeString renders the current user modes as "+<letters>" (empty string
// if none set).
func (c *Connection) ModeString() string {
	if len(c.Modes) == 0 {
		return ""
	}
	s := "+"
	for m := range c.Modes {
		s += string(m)
	}
	return s
}
