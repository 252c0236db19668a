// Package cache memoizes classification results and fetched robots.txt
// bodies for the lifetime of the process. Nothing is written to disk.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Namespaces keep keys for different payloads apart
const (
	NamespaceResult = "result"
	NamespaceRobots = "robots"
)

// Key generates a cache key for content within a namespace
func Key(namespace, content string) string {
	hash := sha256.Sum256([]byte(content))
	return "legalparse:v1:" + namespace + ":" + hex.EncodeToString(hash[:])
}

// Nop is a cache that stores nothing, used when caching is disabled
type Nop struct{}

func (Nop) Get(string) ([]byte, bool)              { return nil, false }
func (Nop) Set(string, []byte, time.Duration) error { return nil }
func (Nop) Delete(string) error                     { return nil }
func (Nop) Clear() error                            { return nil }
