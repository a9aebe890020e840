// Package cache provides a bounded in-memory cache of compile results.
package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/shaderplay/shaderplay/internal/application/ports"
	"github.com/shaderplay/shaderplay/internal/domain/compiler"
)

// DefaultSize is the number of results kept when no size is configured.
const DefaultSize = 128

// Ensure interface compliance
var _ ports.ResultCache = (*ResultCache)(nil)

// ResultCache is an LRU cache of compile results keyed by a content hash.
type ResultCache struct {
	entries *lru.Cache[string, *compiler.Result]
}

// NewResultCache creates a cache holding at most size results.
func NewResultCache(size int) (*ResultCache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[string, *compiler.Result](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}
	return &ResultCache{entries: entries}, nil
}

// Get returns a copy of the cached result for key.
func (c *ResultCache) Get(key string) (*compiler.Result, bool) {
	result, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	return result.Clone(), true
}

// Add stores a copy of result under key, evicting the least recently used entry when full.
func (c *ResultCache) Add(key string, result *compiler.Result) {
	c.entries.Add(key, result.Clone())
}

// Len returns the number of cached results.
func (c *ResultCache) Len() int {
	return c.entries.Len()
}
