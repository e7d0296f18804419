// Package retrieval implements exact brute-force nearest-neighbor search
// over catalog document embeddings. Catalog sizes are in the thousands, so
// exact squared-L2 scanning beats approximate indexing here; on normalized
// sentence embeddings L2 ordering approximates cosine similarity.
package retrieval

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"ctai_backend/internal/catalog"
	"ctai_backend/platform/apperr"
	"ctai_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Embedder provides fixed-dimensionality vectors for text. It must be
// deterministic for identical input within a process lifetime.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Sentinel errors surfaced to callers as service-unavailable conditions.
var (
	ErrEmptyCatalog  = apperr.Unavailable("no catalog documents to index")
	ErrIndexNotReady = apperr.Unavailable("retrieval index not ready")
)

const (
	defaultK       = 5
	embedBatchSize = 64
	buildWorkers   = 4
)

// Result is one search hit with its raw squared-L2 distance.
type Result struct {
	Entry    catalog.Entry
	Distance float32
}

// Index holds all catalog entries and their vectors. Built once at
// startup; read-only afterwards, safe for unlimited concurrent readers.
// Rebuilds are non-reentrant and reject queries instead of racing them.
type Index struct {
	embedder Embedder
	log      *logger.Logger

	ready atomic.Bool

	mu      sync.RWMutex
	dim     int
	entries []catalog.Entry
	vectors [][]float32
}

// New creates an unbuilt index. Searching before Build fails with
// ErrIndexNotReady.
func New(embedder Embedder, log *logger.Logger) *Index {
	return &Index{embedder: embedder, log: log}
}

// Ready reports whether the index can serve queries.
func (idx *Index) Ready() bool {
	return idx.ready.Load()
}

// Size returns the number of indexed entries.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Build embeds every entry's document text and stores vectors in entry
// order. It is blocking; queries arriving while it runs are rejected.
func (idx *Index) Build(ctx context.Context, entries []catalog.Entry) error {
	if len(entries) == 0 {
		return ErrEmptyCatalog
	}

	idx.ready.Store(false)
	idx.mu.Lock()
	defer idx.mu.Unlock()

	vectors := make([][]float32, len(entries))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(buildWorkers)

	for start := 0; start < len(entries); start += embedBatchSize {
		start := start
		end := start + embedBatchSize
		if end > len(entries) {
			end = len(entries)
		}

		group.Go(func() error {
			texts := make([]string, 0, end-start)
			for _, entry := range entries[start:end] {
				texts = append(texts, entry.Document.Text)
			}

			batch, err := idx.embedder.EmbedBatch(groupCtx, texts)
			if err != nil {
				return fmt.Errorf("embed batch at %d: %w", start, err)
			}
			if len(batch) != end-start {
				return fmt.Errorf("embed batch at %d: got %d vectors for %d texts", start, len(batch), end-start)
			}

			copy(vectors[start:end], batch)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	dim := len(vectors[0])
	for i, vector := range vectors {
		if len(vector) != dim {
			return fmt.Errorf("inconsistent embedding dimension at %d: %d != %d", i, len(vector), dim)
		}
	}

	idx.dim = dim
	idx.entries = entries
	idx.vectors = vectors
	idx.ready.Store(true)

	if idx.log != nil {
		idx.log.Info("index_built", "entries", len(entries), "dimension", dim)
	}
	return nil
}

// Search embeds the query and returns the k nearest entries by ascending
// squared-L2 distance. k is clamped to the catalog size; ties keep
// insertion order.
func (idx *Index) Search(ctx context.Context, query string, k int) ([]Result, error) {
	if !idx.ready.Load() {
		return nil, ErrIndexNotReady
	}

	if k <= 0 {
		k = defaultK
	}

	queryVector, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(queryVector) != idx.dim {
		return nil, fmt.Errorf("query dimension %d does not match index dimension %d", len(queryVector), idx.dim)
	}

	if k > len(idx.entries) {
		k = len(idx.entries)
	}

	order := make([]int, len(idx.entries))
	distances := make([]float32, len(idx.entries))
	for i, vector := range idx.vectors {
		order[i] = i
		distances[i] = squaredL2(queryVector, vector)
	}

	sort.SliceStable(order, func(a, b int) bool {
		return distances[order[a]] < distances[order[b]]
	})

	results := make([]Result, 0, k)
	for _, i := range order[:k] {
		results = append(results, Result{Entry: idx.entries[i], Distance: distances[i]})
	}
	return results, nil
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
