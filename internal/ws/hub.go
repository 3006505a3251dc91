// Package ws pushes booking lifecycle events to connected browsers.
package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"courtbook/internal/domain"
	"courtbook/internal/domain/models"
	"courtbook/internal/utils"
)

const writeWait = 10 * time.Second

type newBookingEvent struct {
	Event   string         `json:"event"`
	Booking models.Booking `json:"booking"`
}

type statusUpdateEvent struct {
	Event     string        `json:"event"`
	BookingID int64         `json:"booking_id"`
	Status    domain.Status `json:"status"`
}

// Hub tracks connected clients and fans events out to them. Clients only
// listen; anything they send is read and dropped to keep the connection
// alive.
type Hub struct {
	upgrader websocket.Upgrader

	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Serve upgrades the request and blocks until the client goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return errors.New("hub is shut down")
	}
	h.conns[conn] = struct{}{}
	total := len(h.conns)
	h.mu.Unlock()

	utils.LogEventf("ws", "connect", "client connected, %d active", total)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(conn)
	return nil
}

// BroadcastNewBooking announces a freshly scheduled booking.
func (h *Hub) BroadcastNewBooking(b models.Booking) {
	h.broadcast(newBookingEvent{Event: "new_booking", Booking: b})
}

// BroadcastStatusUpdate announces a booking status change.
func (h *Hub) BroadcastStatusUpdate(bookingID int64, status domain.Status) {
	h.broadcast(statusUpdateEvent{Event: "status_update", BookingID: bookingID, Status: status})
}

func (h *Hub) broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		utils.LogEventf("ws", "broadcast", "encode event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// Count reports how many clients are connected.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close disconnects every client and rejects future connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		delete(h.conns, conn)
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
	}
	total := len(h.conns)
	closed := h.closed
	h.mu.Unlock()

	conn.Close()
	if !closed {
		utils.LogEventf("ws", "disconnect", "client disconnected, %d active", total)
	}
}
