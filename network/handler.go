package network

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"abvt/session"
)

var upgrader = websocket.Upgrader{
	// The feed is public and read-only; accept any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades the request and streams an independent simulation over
// it until the peer goes away.
func WSHandler(m *session.Manager, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already written the HTTP error.
			logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
			return
		}
		conn := newWSConn(c)
		defer conn.Close()

		go conn.readPump(func(err error) {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("read", "remote", r.RemoteAddr, "err", err)
			}
		})
		go conn.pingLoop()

		if err := m.Serve(conn); err != nil {
			logger.Debug("session ended", "remote", r.RemoteAddr, "err", err)
		}
	}
}
