package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	c.Set("k", "value")
	got, found := c.Get("k")
	if !found {
		t.Fatal("expected hit after Set")
	}
	if got != "value" {
		t.Errorf("expected %q, got %q", "value", got)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 item, got %d", c.Len())
	}

	c.Clear()
	if _, found := c.Get("k"); found {
		t.Error("expected miss after Clear")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(10*time.Millisecond, time.Minute)
	c.Set("k", "value")

	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("expected expired entry to miss")
	}
}

func TestKey(t *testing.T) {
	a := Key("<p>one</p>")
	b := Key("<p>two</p>")
	if a == b {
		t.Error("expected distinct keys for distinct fragments")
	}
	if a != Key("<p>one</p>") {
		t.Error("expected stable key for equal fragments")
	}
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	c.Set("k", "v")
	if _, found := c.Get("k"); found {
		t.Error("expected Noop cache to never hit")
	}
}
