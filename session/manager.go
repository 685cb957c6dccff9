package session

import (
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"abvt/sim"
)

// Info is returned by the API for the session list.
type Info struct {
	ID         string    `json:"id"`
	Tick       uint64    `json:"tick"`
	FramesSent uint64    `json:"framesSent"`
	State      string    `json:"state"`
	StartedAt  time.Time `json:"startedAt"`
}

// Manager starts one independent session per connection and keeps a
// registry of the live ones. Sessions share no simulation state; the
// registry is only read for listing.
type Manager struct {
	params   sim.Params
	interval time.Duration
	logger   *log.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager takes the tick interval and logger from opts. WithSource is
// ignored: every session seeds its own generator.
func NewManager(p sim.Params, opts ...Option) *Manager {
	o := buildOptions(opts)
	return &Manager{
		params:   p,
		interval: o.interval,
		logger:   o.logger,
		sessions: make(map[string]*Session),
	}
}

// Serve runs a fresh session on conn until it terminates and returns the
// error that ended it. The caller owns closing conn.
func (m *Manager) Serve(conn Conn) error {
	s, err := New(uuid.NewString(), conn, m.params,
		WithTickInterval(m.interval),
		WithLogger(m.logger),
	)
	if err != nil {
		return err
	}

	m.add(s)
	defer m.remove(s.ID)

	err = s.Run()
	s.logger.Info("Terminated simulation", "frames", s.FramesSent())
	return err
}

func (m *Manager) add(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ListSessions returns the live sessions, oldest first.
func (m *Manager) ListSessions() []Info {
	m.mu.RLock()
	out := make([]Info, 0, len(m.sessions))
	for id, s := range m.sessions {
		out = append(out, Info{
			ID:         id,
			Tick:       s.Tick(),
			FramesSent: s.FramesSent(),
			State:      s.State().String(),
			StartedAt:  s.StartedAt,
		})
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out
}
