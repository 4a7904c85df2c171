package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/quizdeck/triviacast/go/internal/outbox"
	"github.com/rs/zerolog/log"
)

// ConnectionManager manages the WebSocket connections of all stations. There
// is one shared game, so every connection is in a single broadcast pool.
type ConnectionManager struct {
	connections map[*Connection]bool
	mu          sync.RWMutex

	upgrader websocket.Upgrader
	config   ConnectionConfig

	broadcastCh chan []byte
}

// Connection is one station's WebSocket connection.
type Connection struct {
	ID      string
	Station string
	Conn    *websocket.Conn
	Send    chan []byte
	Manager *ConnectionManager

	ConnectedAt time.Time
}

// ConnectionConfig holds configuration for WebSocket connections.
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultConnectionConfig returns default WebSocket configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			// Stations run on the venue LAN; restrict when exposed.
			return true
		},
	}
}

func NewConnectionManager(config ConnectionConfig) *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		broadcastCh: make(chan []byte, 256),
	}
}

// Start begins processing broadcast messages until ctx is cancelled.
func (cm *ConnectionManager) Start(ctx context.Context) {
	log.Info().Msg("connection manager started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("connection manager shutting down")
			return
		case data := <-cm.broadcastCh:
			cm.fanout(data)
		}
	}
}

// UpgradeConnection upgrades an HTTP request to a WebSocket connection and
// immediately queues initial messages (the current snapshot) for it.
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request, station string, initial ...[]byte) error {
	conn, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection := &Connection{
		ID:          uuid.New().String(),
		Station:     station,
		Conn:        conn,
		Send:        make(chan []byte, 64),
		Manager:     cm,
		ConnectedAt: time.Now(),
	}
	for _, data := range initial {
		connection.Send <- data
	}

	cm.register(connection)

	go connection.writePump()
	go connection.readPump()

	log.Info().
		Str("connection_id", connection.ID).
		Str("station", station).
		Msg("WebSocket connection established")
	return nil
}

func (cm *ConnectionManager) register(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.connections[conn] = true
}

func (cm *ConnectionManager) unregister(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.connections[conn] {
		delete(cm.connections, conn)
		close(conn.Send)
		log.Info().
			Str("connection_id", conn.ID).
			Str("station", conn.Station).
			Msg("connection unregistered")
	}
}

// BroadcastSnapshot sends a rebuilt snapshot to every station.
func (cm *ConnectionManager) BroadcastSnapshot(snap *GameSnapshot) {
	cm.broadcast(WSMessage{Type: MessageTypeSnapshot, Snapshot: snap})
}

// BroadcastEvent forwards a change-feed event to every station.
func (cm *ConnectionManager) BroadcastEvent(env *outbox.Envelope) {
	cm.broadcast(WSMessage{Type: MessageTypeEvent, Event: env})
}

func (cm *ConnectionManager) broadcast(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("type", msg.Type).Msg("failed to marshal broadcast message")
		return
	}
	select {
	case cm.broadcastCh <- data:
	default:
		log.Warn().Str("type", msg.Type).Msg("broadcast channel full, dropping message")
	}
}

// fanout sends under the read lock so a disconnecting station cannot close
// its Send channel mid-broadcast; unregister needs the write lock.
func (cm *ConnectionManager) fanout(data []byte) {
	var slow []*Connection

	cm.mu.RLock()
	for conn := range cm.connections {
		select {
		case conn.Send <- data:
		default:
			slow = append(slow, conn)
		}
	}
	cm.mu.RUnlock()

	for _, conn := range slow {
		// Slow or dead station; it resyncs on reconnect.
		log.Warn().
			Str("connection_id", conn.ID).
			Str("station", conn.Station).
			Msg("connection send buffer full, closing connection")
		cm.unregister(conn)
		conn.Conn.Close()
	}
}

// ConnectionCount returns the number of connected stations.
func (cm *ConnectionManager) ConnectionCount() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}

// writePump sends queued messages and pings to the station.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.Manager.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.Manager.unregister(c)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().Err(err).Str("connection_id", c.ID).Msg("failed to write message")
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains the connection. Stations never send application messages;
// reading only services pongs and detects disconnects.
func (c *Connection) readPump() {
	defer func() {
		c.Manager.unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.Manager.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("connection_id", c.ID).Msg("unexpected WebSocket close")
			}
			return
		}
	}
}
