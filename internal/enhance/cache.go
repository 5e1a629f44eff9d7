// File path: internal/enhance/cache.go
package enhance

import "sync"

// resultCache memoizes provider responses keyed by the content fingerprint of
// the step text. Keying on content rather than step index means an index
// reused across edits can never return a stale enhancement.
type resultCache struct {
	mu    sync.Mutex
	max   int
	order []string
	items map[string]Response
}

func newResultCache(max int) *resultCache {
	if max <= 0 {
		max = 256
	}
	return &resultCache{max: max, items: make(map[string]Response, max)}
}

func (c *resultCache) get(key string) (Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	resp, ok := c.items[key]
	return resp, ok
}

func (c *resultCache) put(key string, resp Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[key]; !exists {
		c.order = append(c.order, key)
		if len(c.order) > c.max {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.items, oldest)
		}
	}
	c.items[key] = resp
}
