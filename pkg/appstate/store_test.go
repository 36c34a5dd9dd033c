package appstate

import (
	"sync"
	"testing"
)

func newEditorStore() *Store {
	return New(map[string]any{
		KeyConsoleOpen:    false,
		KeyPreviewVisible: true,
		KeyEditorTheme:    "dark",
	})
}

func TestGetAndSet(t *testing.T) {
	s := newEditorStore()

	if got := s.GetString(KeyEditorTheme); got != "dark" {
		t.Errorf("GetString = %q, want %q", got, "dark")
	}

	s.Set(KeyEditorTheme, "light")
	if got := s.GetString(KeyEditorTheme); got != "light" {
		t.Errorf("GetString after Set = %q, want %q", got, "light")
	}

	if _, ok := s.Get("unknown"); ok {
		t.Error("Get on unknown key reported present")
	}
}

func TestToggle(t *testing.T) {
	s := newEditorStore()

	if got := s.Toggle(KeyConsoleOpen); !got {
		t.Error("first Toggle = false, want true")
	}
	if got := s.Toggle(KeyConsoleOpen); got {
		t.Error("second Toggle = true, want false")
	}

	// Toggling a key that was never set starts from false.
	if got := s.Toggle("brand_new_flag"); !got {
		t.Error("Toggle on unset key = false, want true")
	}
}

func TestResetRestoresDefaultsAndDropsAdhocKeys(t *testing.T) {
	s := newEditorStore()

	s.Set(KeyEditorTheme, "light")
	s.Set(KeyActiveAssignment, "a1")
	s.Reset()

	if got := s.GetString(KeyEditorTheme); got != "dark" {
		t.Errorf("theme after Reset = %q, want %q", got, "dark")
	}
	if _, ok := s.Get(KeyActiveAssignment); ok {
		t.Error("ad-hoc key survived Reset")
	}
	if !s.GetBool(KeyPreviewVisible) {
		t.Error("preview default lost after Reset")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newEditorStore()

	snap := s.Snapshot()
	snap[KeyEditorTheme] = "mutated"

	if got := s.GetString(KeyEditorTheme); got != "dark" {
		t.Errorf("store changed through snapshot: %q", got)
	}
}

func TestConcurrentToggles(t *testing.T) {
	s := newEditorStore()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Toggle(KeyConsoleOpen)
		}()
	}
	wg.Wait()

	// An even number of toggles lands back on the default.
	if s.GetBool(KeyConsoleOpen) {
		t.Error("console flag = true after even toggle count")
	}
}
