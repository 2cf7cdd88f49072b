package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/smasonuk/geomap3d"
)

const queueSize = 64

// Hub fans pick events out to websocket clients. A client that connects gets the latest
// event straight away.
type Hub struct {
	clients      map[*websocket.Conn]bool
	clientsMutex sync.Mutex

	current    *geomap3d.PickEvent
	currentMux sync.RWMutex

	events   chan geomap3d.PickEvent
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		events:  make(chan geomap3d.PickEvent, queueSize),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Publish queues ev for broadcast without blocking. Events are dropped while the queue
// is full.
func (h *Hub) Publish(ev geomap3d.PickEvent) {
	h.currentMux.Lock()
	h.current = &ev
	h.currentMux.Unlock()

	select {
	case h.events <- ev:
	default:
		log.WithField("name", ev.Name).Warn("Pick feed queue full, dropping event")
	}
}

// Run broadcasts queued events until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case ev := <-h.events:
			h.broadcast(ev)
		}
	}
}

func (h *Hub) broadcast(ev geomap3d.PickEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.WithError(err).Error("Error marshaling pick event")
		return
	}

	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()
	for client := range h.clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			log.WithError(err).Debug("WebSocket write error")
			client.Close()
			delete(h.clients, client)
		}
	}
}

func (h *Hub) closeAll() {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()
	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and keeps the client until it disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("WebSocket upgrade error")
		return
	}

	h.clientsMutex.Lock()
	h.currentMux.RLock()
	current := h.current
	h.currentMux.RUnlock()
	if current != nil {
		if data, err := json.Marshal(current); err == nil {
			conn.WriteMessage(websocket.TextMessage, data)
		}
	}
	h.clients[conn] = true
	h.clientsMutex.Unlock()

	log.Debug("New WebSocket client connected")

	defer func() {
		h.clientsMutex.Lock()
		delete(h.clients, conn)
		h.clientsMutex.Unlock()
		conn.Close()
		log.Debug("WebSocket client disconnected")
	}()

	// Clients only listen; reading keeps the connection's control frames flowing.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
