package chatclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devonaut-be/pkg/appstate"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// streamServer answers /ai/chat with the given chunks, flushing between
// them so the client sees them incrementally.
func streamServer(t *testing.T, chunks ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			t.Fatal("response writer does not support flushing")
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		for _, chunk := range chunks {
			w.Write([]byte(chunk))
			flusher.Flush()
		}
	}))
}

func TestSendConcatenatesChunks(t *testing.T) {
	srv := streamServer(t, "Hel", "lo")
	defer srv.Close()

	var updates []Record
	c := New(srv.URL, "u1", WithOnUpdate(func(r Record) {
		updates = append(updates, r)
	}))

	userID, assistantID, err := c.Send(context.Background(), "hi")
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, userID)
	assert.NotEqual(t, uuid.Nil, assistantID)

	records := c.Records()
	assert.Len(t, records, 2)
	assert.Equal(t, RoleUser, records[0].Role)
	assert.Equal(t, "hi", records[0].Content)
	assert.Equal(t, RoleAssistant, records[1].Role)
	assert.Equal(t, "Hello", records[1].Content)
	assert.False(t, records[1].Failed)

	// The observer saw the user record and at least one assistant growth.
	assert.NotEmpty(t, updates)
	assert.Equal(t, userID, updates[0].ID)
	last := updates[len(updates)-1]
	assert.Equal(t, assistantID, last.ID)
	assert.Equal(t, "Hello", last.Content)
}

func TestSendBlankPromptIsNoop(t *testing.T) {
	c := New("http://unused", "u1")

	for _, prompt := range []string{"", "   ", "\n\t "} {
		userID, assistantID, err := c.Send(context.Background(), prompt)
		assert.NoError(t, err)
		assert.Equal(t, uuid.Nil, userID)
		assert.Equal(t, uuid.Nil, assistantID)
	}
	assert.Empty(t, c.Records())
}

func TestSendFailureStillAppendsTwoRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Question limit reached."})
	}))
	defer srv.Close()

	c := New(srv.URL, "u1")

	_, assistantID, err := c.Send(context.Background(), "one more question")
	assert.Error(t, err)
	assert.EqualError(t, err, "Question limit reached.")

	records := c.Records()
	assert.Len(t, records, 2)
	assert.Equal(t, "one more question", records[0].Content)
	assert.Equal(t, assistantID, records[1].ID)
	assert.True(t, records[1].Failed)
	assert.Equal(t, "Error: Question limit reached.", records[1].Content)
}

func TestChunksTargetRecordByID(t *testing.T) {
	srv := streamServer(t, "first ", "reply")
	defer srv.Close()

	c := New(srv.URL, "u1")

	_, firstAssistant, err := c.Send(context.Background(), "q1")
	assert.NoError(t, err)

	// A second completed exchange must not disturb the first one's reply.
	_, secondAssistant, err := c.Send(context.Background(), "q2")
	assert.NoError(t, err)
	assert.NotEqual(t, firstAssistant, secondAssistant)

	records := c.Records()
	assert.Len(t, records, 4)
	assert.Equal(t, "first reply", records[1].Content)
	assert.Equal(t, "first reply", records[3].Content)

	// Appending by ID touches exactly the addressed record.
	c.appendChunk(firstAssistant, "!")
	records = c.Records()
	assert.Equal(t, "first reply!", records[1].Content)
	assert.Equal(t, "first reply", records[3].Content)
}

func TestSendWhileStreamingReturnsBusy(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("thinking"))
		w.(http.Flusher).Flush()
		close(started)
		<-release
	}))
	defer srv.Close()

	c := New(srv.URL, "u1")

	done := make(chan error, 1)
	go func() {
		_, _, err := c.Send(context.Background(), "slow question")
		done <- err
	}()

	<-started
	_, _, err := c.Send(context.Background(), "impatient question")
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	assert.NoError(t, <-done)
}

func TestSendHonorsCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("partial"))
		w.(http.Flusher).Flush()
		// Hold the stream open until the client gives up.
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := New(srv.URL, "u1")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, assistantID, err := c.Send(ctx, "never finishes")
	assert.ErrorIs(t, err, context.Canceled)

	records := c.Records()
	assert.Len(t, records, 2)
	assert.Equal(t, assistantID, records[1].ID)
	assert.True(t, records[1].Failed)
	// Chunks received before the cancel stay in the transcript.
	assert.Equal(t, "partial", records[1].Content)
}

func TestSendRaisesChatPanelFlag(t *testing.T) {
	srv := streamServer(t, "ok")
	defer srv.Close()

	st := appstate.New(map[string]any{appstate.KeyChatPanelOpen: false})
	c := New(srv.URL, "u1", WithStateStore(st))

	_, _, err := c.Send(context.Background(), "hi")
	assert.NoError(t, err)
	assert.True(t, st.GetBool(appstate.KeyChatPanelOpen))
}
