// Package cache provides a write-through cache for embedding vectors.
// Identical input text must always map to the identical vector within a
// process lifetime; the cache enforces that and makes index rebuilds cheap.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Embedder is the minimal embedding surface the cache wraps.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

const (
	keyPrefix = "embed:"
	entryTTL  = 24 * time.Hour
)

// CachedEmbedder wraps an Embedder with a redis-backed cache. When no redis
// client is configured it falls back to an in-process map, which still
// guarantees embed determinism within the process.
type CachedEmbedder struct {
	inner Embedder
	rdb   *redis.Client

	mu    sync.RWMutex
	local map[string][]float32
}

// NewCachedEmbedder wraps inner with a cache. rdb may be nil.
func NewCachedEmbedder(inner Embedder, rdb *redis.Client) *CachedEmbedder {
	return &CachedEmbedder{
		inner: inner,
		rdb:   rdb,
		local: make(map[string][]float32),
	}
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Embed returns the cached vector for text, embedding and storing it on miss.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(text)

	if vector, ok := c.get(ctx, key); ok {
		return vector, nil
	}

	vector, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.put(ctx, key, vector)
	return vector, nil
}

// EmbedBatch resolves cached entries first and embeds only the misses,
// preserving input order.
func (c *CachedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	var missTexts []string
	var missIdx []int
	for i, text := range texts {
		if vector, ok := c.get(ctx, cacheKey(text)); ok {
			vectors[i] = vector
			continue
		}
		missTexts = append(missTexts, text)
		missIdx = append(missIdx, i)
	}

	if len(missTexts) == 0 {
		return vectors, nil
	}

	embedded, err := c.inner.EmbedBatch(ctx, missTexts)
	if err != nil {
		return nil, err
	}

	for j, vector := range embedded {
		vectors[missIdx[j]] = vector
		c.put(ctx, cacheKey(missTexts[j]), vector)
	}

	return vectors, nil
}

func (c *CachedEmbedder) get(ctx context.Context, key string) ([]float32, bool) {
	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var vector []float32
			if json.Unmarshal(data, &vector) == nil && len(vector) > 0 {
				return vector, true
			}
		}
		// Redis errors degrade to the local map; a cache miss is never fatal.
	}

	c.mu.RLock()
	vector, ok := c.local[key]
	c.mu.RUnlock()
	return vector, ok
}

func (c *CachedEmbedder) put(ctx context.Context, key string, vector []float32) {
	if c.rdb != nil {
		if data, err := json.Marshal(vector); err == nil {
			c.rdb.Set(ctx, key, data, entryTTL)
		}
	}

	c.mu.Lock()
	c.local[key] = vector
	c.mu.Unlock()
}
