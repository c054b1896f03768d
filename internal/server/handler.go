package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/soar/xgamepad/internal/hub"
	"github.com/soar/xgamepad/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local status page only
	},
}

func handleWebSocket(h *hub.Hub, b *hub.Broadcaster, loop hub.Poster, controls hub.Controls) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warningf("websocket upgrade failed: %v", err)
			return
		}

		client := hub.NewClient(h, conn)
		h.Register(client)
		b.SendInitialState(client)

		go client.WritePump()
		go client.ReadPumpWithHandler(loop, controls)
	}
}

func handleSnapshot(source hub.SnapshotSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if err := json.NewEncoder(w).Encode(source.Latest()); err != nil {
			logger.Debugf("writing snapshot: %v", err)
		}
	}
}
