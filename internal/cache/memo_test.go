package cache

import (
	"testing"
	"time"
)

func TestMemoLifecycle(t *testing.T) {
	clock := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemo[string](time.Minute)
	m.now = func() time.Time { return clock }

	if _, ok := m.Get(); ok {
		t.Fatal("empty memo must miss")
	}

	m.Set("hello")
	if v, ok := m.Get(); !ok || v != "hello" {
		t.Fatalf("got %q/%v, want fresh hit", v, ok)
	}

	clock = clock.Add(2 * time.Minute)
	if _, ok := m.Get(); ok {
		t.Fatal("expired memo must miss")
	}

	m.Set("again")
	m.Invalidate()
	if _, ok := m.Get(); ok {
		t.Fatal("invalidated memo must miss")
	}
}
