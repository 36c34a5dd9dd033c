package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"devonaut-be/internal/model"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestHub() *Hub {
	h := NewHub(nil, nopLogger{})
	go h.Run()
	return h
}

func (h *Hub) connectedClients(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func waitForClients(t *testing.T, h *Hub, userID uuid.UUID, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.connectedClients(userID) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("user %s has %d clients, want %d", userID, h.connectedClients(userID), want)
}

func TestSendDeliversToConnectedClient(t *testing.T) {
	h := newTestHub()
	userID := uuid.New()
	client := &Client{Hub: h, UserID: userID, Send: make(chan []byte, 4)}
	h.register <- client
	waitForClients(t, h, userID, 1)

	h.Send(userID, model.Notification{ID: uuid.New(), Title: "hello"})

	select {
	case data := <-client.Send:
		var envelope struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			t.Fatalf("bad frame: %v", err)
		}
		if envelope.Type != "notification" {
			t.Errorf("frame type = %q, want %q", envelope.Type, "notification")
		}
	case <-time.After(time.Second):
		t.Fatal("no frame delivered")
	}
}

// A client whose reader stopped draining gets torn down, and the teardown
// must not kill the process: the Send channel is closed exactly once, by the
// unregister branch.
func TestFullBufferDropsConnection(t *testing.T) {
	h := newTestHub()
	userID := uuid.New()
	client := &Client{Hub: h, UserID: userID, Send: make(chan []byte, 1)}
	client.Send <- []byte("stuck")
	h.register <- client
	waitForClients(t, h, userID, 1)

	h.Send(userID, model.Notification{ID: uuid.New(), Title: "dropped"})
	waitForClients(t, h, userID, 0)

	// The pre-filled frame is still readable, then the channel is closed.
	if _, ok := <-client.Send; !ok {
		t.Fatal("queued frame lost during teardown")
	}
	if _, ok := <-client.Send; ok {
		t.Fatal("Send channel not closed after unregister")
	}
}

// Broadcast holds the read lock while walking clients; tearing down slow
// ones must happen after the lock is released or the hub deadlocks against
// its own Run loop.
func TestBroadcastWithSlowClientsCompletes(t *testing.T) {
	h := newTestHub()
	userA := uuid.New()
	userB := uuid.New()
	for _, id := range []uuid.UUID{userA, userB} {
		client := &Client{Hub: h, UserID: id, Send: make(chan []byte, 1)}
		client.Send <- []byte("stuck")
		h.register <- client
		waitForClients(t, h, id, 1)
	}

	done := make(chan struct{})
	go func() {
		h.Broadcast(model.Notification{ID: uuid.New(), Title: "class notice"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast did not return with slow clients connected")
	}

	waitForClients(t, h, userA, 0)
	waitForClients(t, h, userB, 0)
}

// Unregistering twice (send-side teardown racing the readPump's own
// unregister) must be harmless.
func TestDoubleUnregisterIsHarmless(t *testing.T) {
	h := newTestHub()
	userID := uuid.New()
	client := &Client{Hub: h, UserID: userID, Send: make(chan []byte, 1)}
	h.register <- client
	waitForClients(t, h, userID, 1)

	h.unregister <- client
	h.unregister <- client
	waitForClients(t, h, userID, 0)

	if _, ok := <-client.Send; ok {
		t.Fatal("Send channel not closed after unregister")
	}
}
