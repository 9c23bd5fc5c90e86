package websockets

import (
	"time"

	"sanitrack/config"
	"sanitrack/internal/database"
	"sanitrack/internal/events"
	"sanitrack/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	PING_INTERVAL     = 30 * time.Second
	PONG_TIMEOUT      = 60 * time.Second
	WRITE_TIMEOUT     = 10 * time.Second
	MAX_MESSAGE_SIZE  = 64 * 1024
	SEND_CHANNEL_SIZE = 16
)

const (
	MESSAGE_TYPE_PING          = "ping"
	MESSAGE_TYPE_PONG          = "pong"
	MESSAGE_TYPE_STATUS_UPDATE = "toilet_status_update"
	MESSAGE_TYPE_ERROR         = "error"
)

type Message struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	ToiletID  int            `json:"toilet_id,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type Client struct {
	ID         string
	UserID     uuid.UUID
	UserName   string
	Connection *websocket.Conn
	Manager    *Manager
	send       chan Message
}

// Manager fans toilet status change events out to the connected admin and
// cleaner panels so they refresh without polling.
type Manager struct {
	hub          *Hub
	db           database.DB
	eventBus     *events.EventBus
	tokenService *services.TokenService
	config       config.Config
	log          logger.Logger
}

func New(
	db database.DB,
	eventBus *events.EventBus,
	config config.Config,
	tokenService *services.TokenService,
) (*Manager, error) {
	log := logger.New("websockets")

	manager := &Manager{
		hub:          newHub(),
		db:           db,
		eventBus:     eventBus,
		tokenService: tokenService,
		config:       config,
		log:          log,
	}

	go manager.hub.run(manager)

	if err := eventBus.Subscribe(events.STATUS_CHANNEL, manager.handleStatusEvent); err != nil {
		return nil, log.Err("failed to subscribe to status channel", err)
	}

	return manager, nil
}

// handleStatusEvent converts a bus event into a panel-facing message.
func (m *Manager) handleStatusEvent(event events.Event) error {
	m.hub.broadcast <- Message{
		ID:        event.ID,
		Type:      MESSAGE_TYPE_STATUS_UPDATE,
		ToiletID:  event.ToiletID,
		Data:      event.Data,
		Timestamp: event.Timestamp,
	}
	return nil
}

// HandleWebSocket runs the read loop for one connection. The token query
// parameter must carry a valid session token; anonymous connections are
// rejected before any message flows.
func (m *Manager) HandleWebSocket(conn *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	token := conn.Query("token")
	claims, err := m.tokenService.Validate(token)
	if err != nil {
		log.Warn("rejecting websocket connection with invalid token")
		_ = conn.WriteJSON(Message{
			ID:        uuid.New().String(),
			Type:      MESSAGE_TYPE_ERROR,
			Data:      map[string]any{"message": "invalid token"},
			Timestamp: time.Now(),
		})
		_ = conn.Close()
		return
	}

	client := &Client{
		ID:         uuid.New().String(),
		UserID:     claims.UserID,
		UserName:   claims.Name,
		Connection: conn,
		Manager:    m,
		send:       make(chan Message, SEND_CHANNEL_SIZE),
	}

	m.hub.register <- client

	go client.writePump()
	client.readPump()
}

func (c *Client) readPump() {
	log := c.Manager.log.Function("readPump")

	defer func() {
		c.Manager.hub.unregister <- c
		_ = c.Connection.Close()
	}()

	c.Connection.SetReadLimit(MAX_MESSAGE_SIZE)
	_ = c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT))
	c.Connection.SetPongHandler(func(string) error {
		return c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT))
	})

	for {
		var message Message
		if err := c.Connection.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("unexpected websocket close", "clientID", c.ID, "error", err)
			}
			return
		}

		if message.Type == MESSAGE_TYPE_PING {
			c.send <- Message{
				ID:        uuid.New().String(),
				Type:      MESSAGE_TYPE_PONG,
				Timestamp: time.Now(),
			}
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(PING_INTERVAL)

	defer func() {
		ticker.Stop()
		_ = c.Connection.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))
			if !ok {
				_ = c.Connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Connection.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))
			if err := c.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
