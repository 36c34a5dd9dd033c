// Package appstate holds the small pile of cross-cutting editor flags
// (console open, preview visible, active assignment, and so on) behind one
// mutex instead of scattering them across components. Every mutation goes
// through the store, so there is a single place to observe or reset the
// whole set.
package appstate

import "sync"

// Known flag keys. Callers may register ad-hoc keys too; these are the ones
// the editor shell reads.
const (
	KeyConsoleOpen      = "console_open"
	KeyPreviewVisible   = "preview_visible"
	KeyChatPanelOpen    = "chat_panel_open"
	KeyActiveAssignment = "active_assignment"
	KeyEditorTheme      = "editor_theme"
)

// Store is a concurrency-safe key/value state holder. Zero value is not
// usable; construct with New.
type Store struct {
	mu       sync.RWMutex
	values   map[string]any
	defaults map[string]any
}

// New builds a store seeded with defaults. Reset returns every key to these
// values.
func New(defaults map[string]any) *Store {
	values := make(map[string]any, len(defaults))
	saved := make(map[string]any, len(defaults))
	for k, v := range defaults {
		values[k] = v
		saved[k] = v
	}
	return &Store{values: values, defaults: saved}
}

// Get returns the current value and whether the key is set.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// GetBool returns the value as a bool, false when unset or not a bool.
func (s *Store) GetBool(key string) bool {
	v, ok := s.Get(key)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// GetString returns the value as a string, "" when unset or not a string.
func (s *Store) GetString(key string) string {
	v, ok := s.Get(key)
	if !ok {
		return ""
	}
	str, _ := v.(string)
	return str
}

// Set stores a value.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Toggle flips a boolean flag and returns the new value. A missing or
// non-bool value toggles to true.
func (s *Store) Toggle(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, _ := s.values[key].(bool)
	next := !cur
	s.values[key] = next
	return next
}

// Reset restores every key to the defaults passed to New. Ad-hoc keys set
// after construction are dropped.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]any, len(s.defaults))
	for k, v := range s.defaults {
		s.values[k] = v
	}
}

// Snapshot returns a copy of the current state for export or debugging.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
