package server

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/cosine-software/tdl/cerrs"
)

// wsMessage is one inbound frame on /ws: the full current buffer text,
// sent by the host on every edit. Each frame gets one Analyze response
// frame back; there is no incremental/diff protocol.
type wsMessage struct {
	Source string `json:"source"`
}

// handleWebSocket upgrades the connection and runs Analyze once per
// inbound text frame until the client disconnects or sends a close frame.
// This is the only place in the engine that holds a connection open
// across multiple calls; each call is still a stateless Analyze.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrade.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			s.log.WithFields(logrus.Fields{"error": err}).Debug(cerrs.ErrWebSocketClosed.Error())
			return
		}

		result := s.analyze.Analyze(msg.Source)
		if err := conn.WriteJSON(result); err != nil {
			s.log.WithError(err).Warn("websocket write failed")
			return
		}
	}
}
