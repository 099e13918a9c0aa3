package generation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cached memoizes successful answers of an inner Backend. Failures are not
// cached so a later call can still succeed.
type Cached struct {
	inner Backend
	cache *lru.Cache[string, string]
}

// NewCached wraps inner with an LRU of the given size.
func NewCached(inner Backend, size int) (*Cached, error) {
	if size <= 0 {
		size = 128
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("create generation cache: %w", err)
	}
	return &Cached{inner: inner, cache: cache}, nil
}

// Generate returns a cached answer or delegates.
func (c *Cached) Generate(ctx context.Context, req Request) (string, error) {
	key := cacheKey(req)
	if text, ok := c.cache.Get(key); ok {
		return text, nil
	}
	text, err := c.inner.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, text)
	return text, nil
}

// Len reports the number of cached answers.
func (c *Cached) Len() int { return c.cache.Len() }

func cacheKey(req Request) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%d\x00%s", req.Specialization, req.Format, UserPrompt(req))
	return hex.EncodeToString(h.Sum(nil))
}
