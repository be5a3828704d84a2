// Package httpcache caches rendered responses in memory.
package httpcache

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/maypok86/otter/v2"
)

// Entry is one cached response body.
type Entry struct {
	ExpiresAt   time.Time
	ContentType string
	ETag        string
	Data        []byte
}

// OtterCache is a size-bounded response cache with a fixed TTL.
// It is safe for concurrent use.
type OtterCache struct {
	cache  *otter.Cache[string, Entry]
	logger *slog.Logger
	ttl    time.Duration
}

// NewOtterCache returns a cache holding up to size entries for ttl each.
func NewOtterCache(size int, ttl time.Duration, logger *slog.Logger) *OtterCache {
	if logger == nil {
		logger = slog.Default()
	}
	cache := otter.Must(&otter.Options[string, Entry]{
		MaximumSize:      size,
		ExpiryCalculator: otter.ExpiryWriting[string, Entry](ttl),
	})
	logger.Info("response cache initialized", "size", size, "ttl", ttl)
	return &OtterCache{cache: cache, ttl: ttl, logger: logger}
}

// Get returns the entry stored under key.
func (c *OtterCache) Get(key string) (Entry, bool) {
	h := hash(key)
	entry, found := c.cache.GetIfPresent(h)
	if !found {
		c.logger.Debug("cache miss", "key", key, "reason", "not_found")
		return Entry{}, false
	}

	// otter expires lazily; don't serve an entry past its deadline.
	if time.Now().After(entry.ExpiresAt) {
		c.logger.Debug("cache miss", "key", key, "reason", "expired", "expired_at", entry.ExpiresAt)
		c.cache.Invalidate(h)
		return Entry{}, false
	}

	return entry, true
}

// Set stores data under key and returns the stored entry, whose ETag is
// derived from the body.
func (c *OtterCache) Set(key, contentType string, data []byte) Entry {
	entry := Entry{
		Data:        data,
		ContentType: contentType,
		ETag:        `"` + hash(string(data))[:16] + `"`,
		ExpiresAt:   time.Now().Add(c.ttl),
	}
	c.cache.Set(hash(key), entry)
	c.logger.Debug("cache set", "key", key, "expires_at", entry.ExpiresAt, "size", len(data))
	return entry
}

// Len returns the approximate number of stored entries.
func (c *OtterCache) Len() int {
	return c.cache.EstimatedSize()
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
