package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"devonaut-be/internal/model"
	"devonaut-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisChannel carries {target_user_id, message} envelopes between
// instances. target_user_id "*" means broadcast.
const redisChannel = "platform_events"

// Hub tracks live websocket connections per user and delivers notifications
// to them. With Redis configured it also fans deliveries out to other
// instances, so a student connected elsewhere still receives the notice.
type Hub struct {
	// UserID -> connections, one user may have several tabs open
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast delivers a notification to every connected client, local and
// remote. Used for class-wide notices such as a new assignment.
func (h *Hub) Broadcast(notification model.Notification) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})

	h.deliverAll(data)
	h.publish("*", data)
}

// Send delivers a notification to one user's connections on every instance.
func (h *Hub) Send(userID uuid.UUID, notification model.Notification) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})

	h.deliverTo(userID, data)
	h.publish(userID.String(), data)
}

// deliverAll pushes to every local client. Stale clients are collected and
// unregistered only after the read lock is released; Run needs the write
// lock to process an unregister, so handing off under the lock would
// deadlock.
func (h *Hub) deliverAll(data []byte) {
	var stale []*Client

	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			if !h.deliver(client, data) {
				stale = append(stale, client)
			}
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.unregister <- client
	}
}

func (h *Hub) deliverTo(userID uuid.UUID, data []byte) {
	h.mu.RLock()
	clients := append([]*Client(nil), h.clients[userID]...)
	h.mu.RUnlock()

	for _, client := range clients {
		if !h.deliver(client, data) {
			h.unregister <- client
		}
	}
}

// deliver pushes to a client's send buffer. A full buffer means the reader
// is gone; the caller must unregister the client. Only Run's unregister
// branch closes the Send channel, so a connection torn down here and by its
// own readPump is still closed exactly once.
func (h *Hub) deliver(client *Client, data []byte) bool {
	select {
	case client.Send <- data:
		return true
	default:
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": client.UserID})
		return false
	}
}

func (h *Hub) publish(targetUserID string, data []byte) {
	if h.rdb == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"target_user_id": targetUserID,
		"message":        json.RawMessage(data),
	})
	h.rdb.Publish(context.Background(), redisChannel, payload)
}

// subscribeToRedis receives envelopes published by other instances and
// delivers the ones addressed to locally connected users.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Bad cluster payload", map[string]interface{}{"error": err.Error()})
			continue
		}

		if payload.TargetUserID == "*" {
			h.deliverAll(payload.Message)
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}
		h.deliverTo(uid, payload.Message)
	}
}
