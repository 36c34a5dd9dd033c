// Package chatclient is the consuming side of the streamed tutor chat. It
// owns the visible transcript: each Send appends exactly two records, one
// for the student's prompt and one for the tutor's reply, and the reply
// record grows in place as chunks arrive. Records are addressed by ID, never
// by position, so concurrent appends cannot corrupt an in-flight exchange.
package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"devonaut-be/pkg/appstate"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Record is one transcript line.
type Record struct {
	ID      uuid.UUID
	Role    string
	Content string
	// Failed marks an assistant record whose stream did not complete; its
	// Content holds the error text shown in the transcript.
	Failed bool
}

// ErrBusy is returned when Send is called while a stream is already
// running.
var ErrBusy = errors.New("chat exchange already in progress")

// UpdateFunc observes transcript changes, one call per mutated record.
type UpdateFunc func(r Record)

type Client struct {
	baseURL  string
	userID   string
	http     *http.Client
	onUpdate UpdateFunc
	state    *appstate.Store

	mu        sync.Mutex
	records   []Record
	streaming bool
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithOnUpdate registers a transcript observer (the UI redraw hook).
func WithOnUpdate(fn UpdateFunc) Option {
	return func(c *Client) { c.onUpdate = fn }
}

// WithStateStore ties the client to the shell's UI flags: a Send raises the
// chat panel flag so the view showing this transcript is visible.
func WithStateStore(st *appstate.Store) Option {
	return func(c *Client) { c.state = st }
}

func New(baseURL, userID string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		userID:  userID,
		http:    &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Records returns a copy of the transcript.
func (c *Client) Records() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Send runs one exchange. A blank prompt is a no-op. The returned IDs
// identify the two appended records; on a failed stream both records still
// exist, with the assistant one marked Failed. Cancelling ctx aborts the
// stream and fails the exchange.
func (c *Client) Send(ctx context.Context, prompt string) (userID, assistantID uuid.UUID, err error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return uuid.Nil, uuid.Nil, nil
	}

	c.mu.Lock()
	if c.streaming {
		c.mu.Unlock()
		return uuid.Nil, uuid.Nil, ErrBusy
	}
	c.streaming = true

	userRecord := Record{ID: uuid.New(), Role: RoleUser, Content: prompt}
	assistantRecord := Record{ID: uuid.New(), Role: RoleAssistant}
	c.records = append(c.records, userRecord, assistantRecord)
	c.mu.Unlock()

	if c.state != nil {
		c.state.Set(appstate.KeyChatPanelOpen, true)
	}
	c.notify(userRecord)

	defer func() {
		c.mu.Lock()
		c.streaming = false
		c.mu.Unlock()
	}()

	if err := c.stream(ctx, prompt, assistantRecord.ID); err != nil {
		c.failRecord(assistantRecord.ID, err)
		return userRecord.ID, assistantRecord.ID, err
	}
	return userRecord.ID, assistantRecord.ID, nil
}

// stream POSTs the prompt and folds each arriving chunk into the assistant
// record.
func (c *Client) stream(ctx context.Context, prompt string, assistantID uuid.UUID) error {
	payload, err := json.Marshal(map[string]string{
		"user_id": c.userID,
		"prompt":  prompt,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ai/chat", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.decodeError(resp)
	}

	buf := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			c.appendChunk(assistantID, string(buf[:n]))
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return readErr
		}
	}
}

// decodeError extracts the {detail} body, falling back to the status code.
func (c *Client) decodeError(resp *http.Response) error {
	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&detail); err == nil && detail.Detail != "" {
		return errors.New(detail.Detail)
	}
	return fmt.Errorf("chat request failed with status %d", resp.StatusCode)
}

// appendChunk grows the identified record. Lookup is by ID: if another
// exchange has appended records meanwhile, the right line still receives
// the text.
func (c *Client) appendChunk(id uuid.UUID, text string) {
	c.mu.Lock()
	var updated *Record
	for i := range c.records {
		if c.records[i].ID == id {
			c.records[i].Content += text
			snapshot := c.records[i]
			updated = &snapshot
			break
		}
	}
	c.mu.Unlock()

	if updated != nil {
		c.notify(*updated)
	}
}

func (c *Client) failRecord(id uuid.UUID, err error) {
	c.mu.Lock()
	var updated *Record
	for i := range c.records {
		if c.records[i].ID == id {
			c.records[i].Failed = true
			if c.records[i].Content == "" {
				c.records[i].Content = fmt.Sprintf("Error: %s", err.Error())
			}
			snapshot := c.records[i]
			updated = &snapshot
			break
		}
	}
	c.mu.Unlock()

	if updated != nil {
		c.notify(*updated)
	}
}

func (c *Client) notify(r Record) {
	if c.onUpdate != nil {
		c.onUpdate(r)
	}
}
