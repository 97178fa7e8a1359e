package websocket

import (
	"encoding/json"
	"log"
	"time"

	"careclock-backend/internal/geo"
	"careclock-backend/internal/services"
	"careclock-backend/internal/store"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 2048 // Increased for location_update messages
)

// Client represents a WebSocket client connection
type Client struct {
	ID       string
	UserID   string
	UserRole string // "CAREWORKER" or "MANAGER"
	conn     *websocket.Conn
	hub      *Hub
	send     chan []byte

	geofence        *services.GeofenceService
	workerLocations store.WorkerLocationStore
}

// IncomingMessage represents a message from the client
type IncomingMessage struct {
	Type      string                 `json:"type"`
	Timestamp string                 `json:"timestamp"`
	Data      map[string]interface{} `json:"data"` // For location_update data
}

// NewClient creates a new WebSocket client
func NewClient(userID string, userRole string, conn *websocket.Conn, hub *Hub, geofence *services.GeofenceService, workerLocations store.WorkerLocationStore) *Client {
	return &Client{
		UserID:          userID,
		UserRole:        userRole,
		conn:            conn,
		hub:             hub,
		send:            make(chan []byte, 256),
		geofence:        geofence,
		workerLocations: workerLocations,
	}
}

// ReadPump pumps messages from the WebSocket connection to the hub
func (c *Client) ReadPump() {
	defer func() {
		// Preserve the worker's last position but flag them offline
		c.markAsDisconnected()
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		// Parse incoming message
		var msg IncomingMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Invalid message format: %v", err)
			continue
		}

		// Handle different message types
		switch msg.Type {
		case "ping":
			// Respond with pong
			response := map[string]interface{}{
				"type":      "pong",
				"timestamp": time.Now().Format(time.RFC3339),
			}
			responseData, _ := json.Marshal(response)
			c.send <- responseData

		case "location_update":
			// Handle care worker location update
			c.handleLocationUpdate(msg.Data)
		}
	}
}

// WritePump pumps messages from the hub to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleLocationUpdate feeds a live coordinate into the geofence pipeline.
// The geofence service persists the position, rebroadcasts it to managers
// and emits entry/exit events when a zone boundary is crossed.
func (c *Client) handleLocationUpdate(data map[string]interface{}) {
	log.Printf("📍 Received location_update from worker %s", c.UserID)

	latitude, ok := data["latitude"].(float64)
	if !ok {
		log.Printf("❌ Invalid latitude in location update")
		return
	}

	longitude, ok := data["longitude"].(float64)
	if !ok {
		log.Printf("❌ Invalid longitude in location update")
		return
	}

	var accuracy *float64
	if a, ok := data["accuracy"].(float64); ok {
		accuracy = &a
	}

	timestamp := time.Now().Unix()
	if t, ok := data["timestamp"].(float64); ok {
		timestamp = int64(t)
	}

	if c.geofence == nil {
		log.Printf("❌ Geofence service not available")
		return
	}

	coord := geo.Coordinate{
		Latitude:  latitude,
		Longitude: longitude,
		Accuracy:  accuracy,
	}

	if _, err := c.geofence.ProcessLocation(c.UserID, coord, timestamp); err != nil {
		log.Printf("❌ Error processing location update: %v", err)
	}
}

// markAsDisconnected flags the worker as offline in the database
// while preserving their last known location for managers to see
func (c *Client) markAsDisconnected() {
	// Only workers report positions
	if c.UserRole != "CAREWORKER" {
		return
	}
	if c.workerLocations == nil {
		return
	}

	if err := c.workerLocations.MarkDisconnected(c.UserID); err != nil {
		log.Printf("❌ Error marking worker as disconnected: %v", err)
		return
	}

	log.Printf("🔴 Worker %s marked as disconnected (last position preserved)", c.UserID)
}
