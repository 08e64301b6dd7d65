package main

import (
	"net"
	"strings"
	"time"

	"github.com/horgh/irc"
	"github.com/pkg/errors"
)

// ioTimeout bounds a single read or write syscall so a hung socket can't
// leak its goroutine forever. Liveness itself is judged by pingSweep against
// Options.PingTime/DeadTime, not by this value.
const ioTimeout = 10 * time.Minute

// Run is the C8 reactor entry point: bind listeners, drive the event loop
// until stopped, perform orderly shutdown, and re-enter if a restart was
// requested (§4.8).
func (s *Server) Run() error {
	for {
		if err := s.listen(); err != nil {
			return err
		}

		s.loop()
		s.shutdownAll()

		if !s.restart {
			return nil
		}
		s.restart = false
		s.stop = make(chan struct{})
	}
}

func (s *Server) listen() error {
	for _, port := range s.Options.ListenPorts {
		ln, err := net.Listen("tcp", net.JoinHostPort(s.Options.ListenHost, port))
		if err != nil {
			return errors.Wrapf(err, "listening on port %s", port)
		}
		s.listeners = append(s.listeners, ln)
		s.Log.Info("listening", "host", s.Options.ListenHost, "port", port)
		go s.acceptLoop(ln)
	}
	return nil
}

func (s *Server) acceptLoop(ln net.Listener) {
	for {
		nc, err := ln.Accept()
		if err != nil {
			s.Log.Debug("accept loop ending", "error", err)
			return
		}
		select {
		case s.acceptChan <- nc:
		case <-s.stop:
			_ = nc.Close()
			return
		}
	}
}

// loop is the single-threaded cooperative scheduler (§5): every World
// mutation happens here, so nothing else may touch s.World.
func (s *Server) loop() {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case nc := <-s.acceptChan:
			s.handleAccept(nc)
		case ev := <-s.lineChan:
			s.handleLine(ev)
		case ev := <-s.deadChan:
			s.handleDead(ev)
		case <-ticker.C:
			s.pingSweep()
		case <-s.stop:
			return
		}
	}
}

func (s *Server) handleAccept(nc net.Conn) {
	s.nextConnID++
	id := s.nextConnID

	conn := NewConnection(id, nc, ioTimeout, s.Log.Named("conn"))
	if s.Options.ServerPass == "" {
		conn.PassOK = true
	}
	s.World.InsertConn(conn)

	go conn.readLoop(
		func(id ConnID, line string) { s.lineChan <- lineEvent{id, line} },
		func(id ConnID, err error) { s.deadChan <- deadEvent{id, err} },
		func() {},
	)
	go conn.writeLoop(
		func(id ConnID, err error) { s.deadChan <- deadEvent{id, err} },
		func() {},
	)

	s.Log.Debug("accepted connection", "conn_id", id, "remote", conn.RemoteHost())
}

func (s *Server) handleLine(ev lineEvent) {
	conn, ok := s.World.LookupConn(ev.id)
	if !ok {
		return
	}

	line := strings.TrimRight(ev.line, "\r\n")
	if line == "" {
		return
	}

	msg, err := parseLine(s.Options.MaxLineLength, conn.Usermask(), line)
	if err != nil {
		s.Log.Debug("dropping line", "conn_id", ev.id, "error", err)
		return
	}

	conn.touch()
	s.dispatchSafely(conn, msg)
}

// dispatchSafely runs one dispatch with a recover guard: no handler panic
// may escape the reactor loop and take down every connection (§7).
func (s *Server) dispatchSafely(conn *Connection, msg irc.Message) {
	defer func() {
		if r := recover(); r != nil {
			s.Log.Error("recovered from panic handling command", "conn_id", conn.ID, "command", msg.Command, "panic", r)
		}
	}()
	s.Commands.Dispatch(s, conn, msg)
}

func (s *Server) handleDead(ev deadEvent) {
	conn, ok := s.World.LookupConn(ev.id)
	if !ok {
		return
	}
	s.disconnect(conn, classifyConnError(ev.err))
}

// disconnect implements §3's destruction path: announce to every shared
// channel, sweep World state, send the goodbye, release the socket.
func (s *Server) disconnect(c *Connection, reason string) {
	if c.State == StateClosing {
		return
	}
	c.State = StateClosing

	if c.Registered() {
		s.announceQuit(c, reason)
	}
	s.World.RemoveUser(c, reason)

	s.Reply.FromServer(c, "ERROR", "Closing Link: "+c.RemoteHost()+" ("+reason+")")
	c.destroy()
}

func (s *Server) announceQuit(c *Connection, reason string) {
	notified := map[ConnID]struct{}{}
	for _, m := range c.Channels {
		for _, member := range m.Channel.Members {
			if member.Conn == c {
				continue
			}
			if _, done := notified[member.Conn.ID]; done {
				continue
			}
			notified[member.Conn.ID] = struct{}{}
			s.Reply.FromUser(member.Conn, c.Usermask(), "QUIT", reason)
		}
	}
}

// pingSweep implements §4.8 step 3: a connection silent for PingTime gets a
// PING; one silent for DeadTime is removed.
func (s *Server) pingSweep() {
	now := time.Now()
	for _, c := range s.World.AllConns() {
		if !c.Registered() {
			continue
		}
		if now.Sub(c.LastAction) < s.Options.PingTime && now.Sub(c.LastAlive) < s.Options.PingTime {
			continue
		}
		if now.Sub(c.LastAlive) >= s.Options.DeadTime {
			s.disconnect(c, "Ping Timeout")
			continue
		}
		if now.Sub(c.LastPing) >= s.Options.PingTime {
			s.Reply.FromServer(c, "PING", s.Options.ServerName)
			c.LastPing = now
		}
	}
}

// shutdownAll implements §4.8's shutdown: goodbye to every connection, then
// release every listener. Connections drain their already-buffered output
// before destroy's channel close takes effect.
func (s *Server) shutdownAll() {
	for _, c := range s.World.AllConns() {
		s.Reply.FromServer(c, "ERROR", "Server Shutdown")
		c.destroy()
	}
	for _, ln := range s.listeners {
		_ = ln.Close()
	}
	s.listeners = nil
}

// Stop breaks the reactor loop without requesting a restart (DIE).
func (s *Server) Stop() {
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
}

// RequestRestart breaks the reactor loop and has Run re-enter it (RESTART).
func (s *Server) RequestRestart() {
	s.restart = true
	s.Stop()
}
