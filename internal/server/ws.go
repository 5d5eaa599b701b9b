package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The progress feed is read-only and carries no credentials.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const wsWriteTimeout = 10 * time.Second

// handleProgressWS streams valuation progress events over a websocket
// until the client disconnects.
func (s *Server) handleProgressWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	sub := s.hub.Subscribe()
	defer sub.Close()

	s.logger.Debug("progress subscriber connected", "remote", conn.RemoteAddr())

	// Read pump: we expect no client messages, but reading detects
	// disconnects and unblocks the event loop below via sub.Close.
	go func() {
		defer sub.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		event, ok := sub.Next()
		if !ok {
			return
		}

		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(event); err != nil {
			s.logger.Debug("progress subscriber dropped", "err", err)
			return
		}
	}
}
