package web

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/chucky-1/papertrade/internal/model"
)

const writeTimeout = 5 * time.Second

// Hub fans each refresh cycle's quote snapshot out to websocket subscribers
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewHub is constructor
func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]struct{})}
}

// HandleSnapshot implements market.SnapshotHandler
func (h *Hub) HandleSnapshot(stocks []model.Stock) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			log.Error(err)
		}
		if err := conn.WriteJSON(stocks); err != nil {
			log.Errorf("push quotes: %v", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
}

// Close drops every subscriber
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.Close()
		delete(h.conns, conn)
	}
}
