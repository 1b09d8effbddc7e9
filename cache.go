package filesig

import (
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/gobeaver/filesig/signature"
)

// ============================================================================
// Result Cache
// ============================================================================

// Cache stores detection results by key. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns the cached result for key, if present and not expired.
	Get(key string) (signature.Result, bool)

	// Set caches res under key. A ttl of 0 keeps the entry until it is
	// deleted or the cache is cleared.
	Set(key string, res signature.Result, ttl time.Duration)

	Delete(key string)

	// Clear drops every entry. Detectors call it when their catalog changes.
	Clear()
}

// CacheStats is implemented by caches that count their lookups
type CacheStats interface {
	Stats() CacheStatistics
}

// CacheStatistics is a snapshot of cache counters
type CacheStatistics struct {
	Hits    int64
	Misses  int64
	Size    int64
	HitRate float64
}

type cachedResult struct {
	res     signature.Result
	expires time.Time // zero when the entry never expires
}

func (e cachedResult) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

// MemoryCache keeps results in a map with optional per-entry expiry. Results
// are copied in and out, so callers never share a pattern with the cache.
// Expired entries are dropped lazily on Get or in bulk by Cleanup.
type MemoryCache struct {
	mu      sync.Mutex
	results map[string]cachedResult
	hits    int64
	misses  int64
	now     func() time.Time
}

// NewMemoryCache returns an empty MemoryCache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		results: make(map[string]cachedResult),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(key string) (signature.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.results[key]
	if ok && e.expired(c.now()) {
		delete(c.results, key)
		ok = false
	}
	if !ok {
		c.misses++
		return signature.Result{}, false
	}
	c.hits++
	res := e.res
	res.Record.Pattern = res.Record.Pattern.Clone()
	return res, true
}

func (c *MemoryCache) Set(key string, res signature.Result, ttl time.Duration) {
	res.Record.Pattern = res.Record.Pattern.Clone()
	e := cachedResult{res: res}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.results[key] = e
}

func (c *MemoryCache) Delete(key string) {
	c.mu.Lock()
	delete(c.results, key)
	c.mu.Unlock()
}

func (c *MemoryCache) Clear() {
	c.mu.Lock()
	clear(c.results)
	c.mu.Unlock()
}

// Stats returns the hit and miss counters and the current entry count
func (c *MemoryCache) Stats() CacheStatistics {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := CacheStatistics{Hits: c.hits, Misses: c.misses, Size: int64(len(c.results))}
	if total := c.hits + c.misses; total > 0 {
		stats.HitRate = float64(c.hits) / float64(total)
	}
	return stats
}

// Cleanup drops expired entries. Long-running processes with a TTL should
// call it periodically.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.results {
		if e.expired(now) {
			delete(c.results, key)
		}
	}
}

var (
	_ Cache      = (*MemoryCache)(nil)
	_ CacheStats = (*MemoryCache)(nil)
)

// ============================================================================
// Result keys
// ============================================================================

// resultKey identifies a lookup of one source version against one catalog.
// Including the catalog fingerprint keeps entries from a replaced catalog
// from ever being served.
func resultKey(c *signature.Catalog, parts ...string) string {
	h := xxhash.New()
	var fp [8]byte
	v := c.Fingerprint()
	for i := range fp {
		fp[i] = byte(v >> (8 * i))
	}
	_, _ = h.Write(fp[:])
	for _, p := range parts {
		_, _ = h.WriteString(p)
		_, _ = h.Write([]byte{0})
	}
	return "filesig:" + strconv.FormatUint(h.Sum64(), 16)
}

// fileKeyParts identifies a file version by path, size and modification time
func fileKeyParts(path string, size int64, modTime time.Time) []string {
	return []string{"file", path, strconv.FormatInt(size, 10), strconv.FormatInt(modTime.UnixNano(), 10)}
}

// objectKeyParts identifies an S3 object version by bucket, key and ETag
func objectKeyParts(bucket, key, etag string) []string {
	return []string{"s3", bucket, key, etag}
}
