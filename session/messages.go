package session

import "errors"

// Conn is the transport a session streams frames over.
// Send reports an error once the peer is gone; the session never retries.
type Conn interface {
	Send([]byte) error
	Close() error
}

var ErrSendFailed = errors.New("send failed")

type State int32

const (
	Initializing State = iota
	Running
	Terminated
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}
