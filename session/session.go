package session

import (
	"fmt"
	"io"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"abvt/protocol"
	"abvt/sim"
)

type Option func(*options)

type options struct {
	interval time.Duration
	src      sim.Source
	logger   *log.Logger
}

func WithTickInterval(d time.Duration) Option {
	return func(o *options) { o.interval = d }
}

// WithSource replaces the per-session PCG generator.
func WithSource(src sim.Source) Option {
	return func(o *options) { o.src = src }
}

func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{interval: protocol.TickInterval}
	for _, opt := range opts {
		opt(&o)
	}
	if o.src == nil {
		o.src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}

// Session is one connection's private simulation. Only Run touches the
// agent tables, so nothing here is locked; the counters are atomic for
// readers on other goroutines.
type Session struct {
	ID        string
	StartedAt time.Time

	conn     Conn
	params   sim.Params
	interval time.Duration
	src      sim.Source
	logger   *log.Logger

	agents *sim.Agents
	buf    []byte

	tick   atomic.Uint64
	frames atomic.Uint64
	state  atomic.Int32
}

func New(id string, conn Conn, p sim.Params, opts ...Option) (*Session, error) {
	o := buildOptions(opts)
	s := &Session{
		ID:        id,
		StartedAt: time.Now(),
		conn:      conn,
		params:    p,
		interval:  o.interval,
		src:       o.src,
		logger:    o.logger.With("session", id),
	}
	s.state.Store(int32(Initializing))

	agents, err := sim.NewAgents(p, s.src)
	if err != nil {
		return nil, fmt.Errorf("init session %s: %w", id, err)
	}
	s.agents = agents
	s.buf = make([]byte, 0, protocol.FrameSize(agents.Len()))
	return s, nil
}

func (s *Session) Tick() uint64       { return s.tick.Load() }
func (s *Session) FramesSent() uint64 { return s.frames.Load() }
func (s *Session) State() State       { return State(s.state.Load()) }

// Run streams one frame per tick until a send fails, then returns the
// wrapped send error. It does not close the conn.
// Ticks are paced by a time.Ticker: a tick that overruns the interval is
// followed immediately by the next one, missed beats are not replayed.
func (s *Session) Run() error {
	s.logger.Info("Initiating new simulation",
		"agents", s.params.AgentCount,
		"scaleX", s.params.ScaleX, "scaleY", s.params.ScaleY,
		"simDim", s.params.SimDim,
	)
	s.state.Store(int32(Running))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.buf = protocol.AppendFrame(s.buf[:0], s.snapshot())
		if err := s.conn.Send(s.buf); err != nil {
			s.state.Store(int32(Terminated))
			s.logger.Info("Socket connection closed. Terminating simulation",
				"tick", s.tick.Load(), "err", err)
			return fmt.Errorf("%w at tick %d: %w", ErrSendFailed, s.tick.Load(), err)
		}
		s.frames.Add(1)

		s.tick.Add(1)
		sim.Step(s.agents, s.src)

		<-ticker.C
	}
}

func (s *Session) snapshot() protocol.Snapshot {
	return protocol.Snapshot{
		Tick:      s.tick.Load(),
		Positions: s.agents.Positions,
		Scores:    s.agents.Scores,
		DimX:      s.agents.DimX,
		DimY:      s.agents.DimY,
		SimDim:    s.agents.SimDim,
	}
}
