package main

import (
	"net"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Server ties every collaborator together: it is what handlers and the
// reactor loop both receive, mirroring the single Server horgh-catbox's
// ircd.go threads through its event loop.
type Server struct {
	Options   *Options
	World     *World
	Modes     *ModeRegistry
	ChanTypes *ChannelTypeRegistry
	Reply     *Replier
	Commands  *CommandRegistry
	Log       hclog.Logger

	listeners  []net.Listener
	nextConnID ConnID

	lineChan   chan lineEvent
	deadChan   chan deadEvent
	acceptChan chan net.Conn

	stop    chan struct{}
	restart bool

	startedAt time.Time
}

// NewServer wires C1-C3, C4, C7, and C6 (empty until registerCommands runs)
// into a Server ready for Run.
func NewServer(opts *Options, log hclog.Logger) *Server {
	modes := NewModeRegistry(opts.Dialect)
	chanTypes := NewChannelTypeRegistry()
	world := NewWorld(opts, modes, chanTypes, log.Named("world"))

	s := &Server{
		Options:    opts,
		World:      world,
		Modes:      modes,
		ChanTypes:  chanTypes,
		Reply:      NewReplier(opts.ServerName),
		Commands:   NewCommandRegistry(),
		Log:        log,
		lineChan:   make(chan lineEvent, 256),
		deadChan:   make(chan deadEvent, 256),
		acceptChan: make(chan net.Conn, 64),
		stop:       make(chan struct{}),
		startedAt:  time.Now(),
	}

	registerCommands(s)

	return s
}

type lineEvent struct {
	id   ConnID
	line string
}

type deadEvent struct {
	id  ConnID
	err error
}
