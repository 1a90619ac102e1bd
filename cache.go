package railsim

import (
	"bytes"
	"time"

	"github.com/patrickmn/go-cache"
)

// ResponseCache memoizes serialized bodies. Keys carry the tick they were
// built from, so an entry is never served for a later tick.
type ResponseCache struct {
	c *cache.Cache
}

// NewResponseCache keeps entries for ttl.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &ResponseCache{c: cache.New(ttl, 2*ttl)}
}

func memoKey(args ...string) string {
	var b bytes.Buffer
	for i, a := range args {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(a)
	}
	return b.String()
}

// GetOrBuild returns the cached body for key or builds and stores it.
// Build errors are not cached.
func (rc *ResponseCache) GetOrBuild(key string, build func() ([]byte, error)) ([]byte, error) {
	if v, ok := rc.c.Get(key); ok {
		return v.([]byte), nil
	}
	buf, err := build()
	if err != nil {
		return nil, err
	}
	rc.c.SetDefault(key, buf)
	return buf, nil
}

// Len reports the number of live entries.
func (rc *ResponseCache) Len() int { return rc.c.ItemCount() }
