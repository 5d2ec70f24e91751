package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// PageCache holds fully rendered page bodies keyed by request URL. Entries
// live until the TTL runs out or Clear wipes the whole cache. Writing a post
// does not touch the cache, readers see stale pages until expiry.
type PageCache struct {
	store *gocache.Cache
	ttl   time.Duration
}

// NewPageCache builds a cache whose entries expire after ttl.
func NewPageCache(ttl time.Duration) *PageCache {
	return &PageCache{
		store: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// Get returns the cached body for key, or false when absent or expired.
func (p *PageCache) Get(key string) ([]byte, bool) {
	v, ok := p.store.Get(key)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

// Set stores body under key for the cache TTL.
func (p *PageCache) Set(key string, body []byte) {
	p.store.Set(key, body, p.ttl)
}

// Clear drops every cached page at once.
func (p *PageCache) Clear() {
	p.store.Flush()
}

// TTL reports how long entries live.
func (p *PageCache) TTL() time.Duration {
	return p.ttl
}
