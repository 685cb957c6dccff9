package network

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	readLimit    = 1 << 20 // 1MB
)

// wsConn adapts a gorilla connection to session.Conn. Send is only called
// from the session goroutine; pings go through WriteControl, which gorilla
// allows concurrently with other writes.
type wsConn struct {
	conn      *websocket.Conn
	done      chan struct{}
	closeOnce sync.Once
}

func newWSConn(c *websocket.Conn) *wsConn {
	return &wsConn{conn: c, done: make(chan struct{})}
}

func (w *wsConn) Send(b []byte) error {
	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.conn.WriteMessage(websocket.BinaryMessage, b)
}

func (w *wsConn) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.conn.Close()
	})
	return err
}

// readPump drains client messages so control frames get handled. The feed
// is one-way; anything the client sends is dropped. A read error means the
// peer is gone, so the conn is closed and the session's next Send fails.
func (w *wsConn) readPump(onErr func(error)) {
	w.conn.SetReadLimit(readLimit)
	_ = w.conn.SetReadDeadline(time.Now().Add(pongWait))
	w.conn.SetPongHandler(func(string) error {
		_ = w.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := w.conn.ReadMessage(); err != nil {
			onErr(err)
			_ = w.Close()
			return
		}
	}
}

func (w *wsConn) pingLoop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := w.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-w.done:
			return
		}
	}
}
