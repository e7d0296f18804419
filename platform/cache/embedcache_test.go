package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type countingEmbedder struct {
	calls      int
	batchCalls int
}

func (s *countingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.calls++
	return []float32{float32(len(text)), 1, 2}, nil
}

func (s *countingEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	s.batchCalls++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, _ := s.Embed(ctx, t)
		out[i] = v
	}
	return out, nil
}

func TestEmbedCachesSecondCall(t *testing.T) {
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	inner := &countingEmbedder{}
	cached := NewCachedEmbedder(inner, rdb)

	ctx := context.Background()

	first, err := cached.Embed(ctx, "portland cement")
	if err != nil {
		t.Fatalf("first embed: %v", err)
	}
	second, err := cached.Embed(ctx, "portland cement")
	if err != nil {
		t.Fatalf("second embed: %v", err)
	}

	if inner.calls != 1 {
		t.Fatalf("expected 1 inner call, got %d", inner.calls)
	}
	if len(first) != len(second) {
		t.Fatalf("vector length changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("vector differs at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestEmbedBatchOnlyEmbedsMisses(t *testing.T) {
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	inner := &countingEmbedder{}
	cached := NewCachedEmbedder(inner, rdb)

	ctx := context.Background()

	if _, err := cached.Embed(ctx, "tmt steel"); err != nil {
		t.Fatalf("seed embed: %v", err)
	}
	inner.calls = 0

	vectors, err := cached.EmbedBatch(ctx, []string{"tmt steel", "river sand"})
	if err != nil {
		t.Fatalf("batch embed: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 inner embed for the miss, got %d", inner.calls)
	}
	if vectors[0] == nil || vectors[1] == nil {
		t.Fatalf("nil vector in batch result: %v", vectors)
	}
}

func TestEmbedWithoutRedisUsesLocalMap(t *testing.T) {
	inner := &countingEmbedder{}
	cached := NewCachedEmbedder(inner, nil)

	ctx := context.Background()
	if _, err := cached.Embed(ctx, "fly ash bricks"); err != nil {
		t.Fatalf("embed: %v", err)
	}
	if _, err := cached.Embed(ctx, "fly ash bricks"); err != nil {
		t.Fatalf("embed: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 inner call, got %d", inner.calls)
	}
}
