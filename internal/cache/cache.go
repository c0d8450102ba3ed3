package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Cache memoizes derived text keyed by its source fragment
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string)
	Len() int
	Clear()
}

// Key generates a cache key from a source fragment
func Key(fragment string) string {
	hash := sha256.Sum256([]byte(fragment))
	return "qticonv:v1:" + hex.EncodeToString(hash[:])
}

// Noop is a Cache that stores nothing
type Noop struct{}

func (Noop) Get(string) (string, bool) { return "", false }
func (Noop) Set(string, string)        {}
func (Noop) Len() int                  { return 0 }
func (Noop) Clear()                    {}
