package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"skillbarter/pkg/logger"
)

// Client represents a WebSocket connection client
type Client struct {
	UserID     string
	Conn       *websocket.Conn
	Send       chan []byte
	ActiveChat string
}

// Manager tracks all active WebSocket connections and the chat rooms
// they have joined.
type Manager struct {
	clients    map[string]*Client
	rooms      map[string]map[string]bool
	Register   chan *Client
	Unregister chan *Client
	// OnMessage is invoked for every frame read from a client. Set once
	// at startup by the WebSocket handler.
	OnMessage func(client *Client, message []byte)
	mutex     sync.RWMutex
}

// NewManager creates a new WebSocket connection manager
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine. Send channels are
// closed here and nowhere else, always under the mutex, so a close can
// never race a concurrent send.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				if old, ok := m.clients[client.UserID]; ok && old != client {
					// A newer connection replaces the old one. Room
					// memberships are per user, so the new connection
					// must re-join rather than inherit them.
					for chatID := range m.rooms {
						delete(m.rooms[chatID], client.UserID)
					}
					close(old.Send)
				}
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Info("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				// Only the connection that still owns the registration
				// is torn down; a stale unregister from a replaced
				// connection must not touch the live one.
				if current, ok := m.clients[client.UserID]; ok && current == client {
					delete(m.clients, client.UserID)
					for chatID := range m.rooms {
						delete(m.rooms[chatID], client.UserID)
					}
					close(client.Send)
					logger.Info("Client unregistered: %s", client.UserID)
				}
				m.mutex.Unlock()

			case <-ctx.Done():
				return
			}
		}
	}()
}

// JoinRoom subscribes a connected user to a chat room.
func (m *Manager) JoinRoom(chatID, userID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.rooms[chatID] == nil {
		m.rooms[chatID] = make(map[string]bool)
	}
	m.rooms[chatID][userID] = true
}

// LeaveRoom unsubscribes a user from a chat room.
func (m *Manager) LeaveRoom(chatID, userID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.rooms[chatID], userID)
}

// SendToUser sends a message to a specific connected user. Delivery is
// fire-and-forget: a slow consumer is dropped rather than retried.
func (m *Manager) SendToUser(userID string, message []byte) {
	// The send happens while the read lock is held: the manager loop
	// closes Send only under the write lock, so the channel cannot be
	// closed mid-send.
	m.mutex.RLock()
	client, ok := m.clients[userID]
	if !ok {
		m.mutex.RUnlock()
		return
	}

	select {
	case client.Send <- message:
		m.mutex.RUnlock()
		return
	default:
	}
	m.mutex.RUnlock()

	logger.Warn("Client %s send buffer full, dropping connection", userID)
	m.Unregister <- client
}

// SendToChatRoom broadcasts a message to every connection subscribed to
// the chat room, optionally excluding one user (usually the sender).
func (m *Manager) SendToChatRoom(chatID string, message []byte, excludeUserID string) {
	m.mutex.RLock()
	members := make([]string, 0, len(m.rooms[chatID]))
	for userID := range m.rooms[chatID] {
		if userID != excludeUserID {
			members = append(members, userID)
		}
	}
	m.mutex.RUnlock()

	for _, userID := range members {
		m.SendToUser(userID, message)
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket read error: %v", err)
			}
			break
		}

		if m.OnMessage != nil {
			m.OnMessage(c, message)
		}
	}
}

// WritePump sends messages to the WebSocket connection
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Error("WebSocket write error: %v", err)
			return
		}
	}
}
