package handlers

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// TrackingHub fans vehicle events out to every websocket subscribed to that
// vehicle's tracking page. Connections are keyed by vehicle id so a status
// update only wakes the customers watching that vehicle.
type TrackingHub struct {
	mu      sync.RWMutex
	clients map[string]map[*websocket.Conn]bool
}

// trackingHub is the process-wide hub used by the HTTP handlers.
var trackingHub = NewTrackingHub()

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewTrackingHub creates an empty hub
func NewTrackingHub() *TrackingHub {
	return &TrackingHub{
		clients: make(map[string]map[*websocket.Conn]bool),
	}
}

func (h *TrackingHub) register(vehicleID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[vehicleID] == nil {
		h.clients[vehicleID] = make(map[*websocket.Conn]bool)
	}
	h.clients[vehicleID][conn] = true
}

func (h *TrackingHub) unregister(vehicleID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[vehicleID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.clients, vehicleID)
		}
	}
	conn.Close()
}

// Broadcast sends an event payload to every connection watching vehicleID.
// Connections that fail the write are dropped from the hub.
func (h *TrackingHub) Broadcast(vehicleID string, payload interface{}) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients[vehicleID]))
	for conn := range h.clients[vehicleID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(payload); err != nil {
			zap.S().Debugw("dropping stale tracking connection",
				"vehicleId", vehicleID,
				"error", err,
			)
			h.unregister(vehicleID, conn)
		}
	}
}

// HandleTrackingWebSocket upgrades the request and subscribes the connection
// to the vehicle named by the vehicle_id query param. The read loop exists
// only to detect the client going away; inbound messages are discarded.
func HandleTrackingWebSocket(w http.ResponseWriter, r *http.Request) {
	vehicleID := r.URL.Query().Get("vehicle_id")
	if vehicleID == "" {
		http.Error(w, "vehicle_id query parameter required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade failed", "error", err)
		return
	}

	trackingHub.register(vehicleID, conn)
	zap.S().Debugw("tracking client connected", "vehicleId", vehicleID)

	go func() {
		defer trackingHub.unregister(vehicleID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// broadcastVehicleEvent pushes a typed event to the vehicle's tracking page
func broadcastVehicleEvent(vehicleID, event string, data interface{}) {
	trackingHub.Broadcast(vehicleID, map[string]interface{}{
		"event": event,
		"data":  data,
	})
}
