package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	a := Key(NamespaceResult, "The tenant must pay.")
	b := Key(NamespaceResult, "The tenant must pay.")
	c := Key(NamespaceRobots, "The tenant must pay.")

	if a != b {
		t.Error("Expected identical keys for identical content")
	}
	if a == c {
		t.Error("Expected different keys across namespaces")
	}
	if !strings.HasPrefix(a, "legalparse:v1:result:") {
		t.Errorf("Unexpected key prefix: %s", a)
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}

	value := []byte("payload")
	if err := c.Set("k", value, 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value[0] = 'X'

	got, found := c.Get("k")
	if !found {
		t.Fatal("Expected hit")
	}
	if string(got) != "payload" {
		t.Errorf("Expected stored copy to be unaffected, got %q", got)
	}

	got[0] = 'Y'
	again, _ := c.Get("k")
	if string(again) != "payload" {
		t.Errorf("Expected returned copy to be independent, got %q", again)
	}

	if c.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", c.Len())
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("Expected entry to expire")
	}
}

func TestMemoryCache_DeleteClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("a", []byte("1"), 0)
	_ = c.Set("b", []byte("2"), 0)

	_ = c.Delete("a")
	if _, found := c.Get("a"); found {
		t.Error("Expected deleted entry to be gone")
	}

	_ = c.Clear()
	if _, found := c.Get("b"); found {
		t.Error("Expected cleared cache to be empty")
	}
}

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	_ = c.Set("k", []byte("v"), 0)
	if _, found := c.Get("k"); found {
		t.Error("Nop cache should never hit")
	}
}
