package retrieval

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ctai_backend/internal/catalog"
	"ctai_backend/platform/apperr"
	"ctai_backend/platform/logger"
)

// axisEmbedder maps each known text to a fixed 3-dimensional vector so
// distances in tests are exact.
type axisEmbedder struct {
	vectors map[string][]float32
}

func (s *axisEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("no vector for %q", text)
}

func (s *axisEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func testEntries() []catalog.Entry {
	entries := make([]catalog.Entry, 4)
	for i, name := range []string{"cement", "steel", "sand", "bricks"} {
		entries[i] = catalog.Entry{
			Document: catalog.Document{ID: name, Text: name},
			Vendor:   catalog.VendorRecord{CompanyName: name + " co"},
		}
	}
	return entries
}

func testEmbedder() *axisEmbedder {
	return &axisEmbedder{vectors: map[string][]float32{
		"cement": {1, 0, 0},
		"steel":  {0, 1, 0},
		"sand":   {0, 0, 1},
		"bricks": {1, 1, 0},
		"query":  {1, 0.1, 0},
	}}
}

func builtIndex(t *testing.T) *Index {
	t.Helper()
	idx := New(testEmbedder(), logger.New("development"))
	if err := idx.Build(context.Background(), testEntries()); err != nil {
		t.Fatalf("build: %v", err)
	}
	return idx
}

func TestSearchSortedAscending(t *testing.T) {
	idx := builtIndex(t)

	results, err := idx.Search(context.Background(), "query", 4)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}

	if results[0].Entry.Document.ID != "cement" {
		t.Fatalf("nearest = %q, want cement", results[0].Entry.Document.ID)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Distance < results[i-1].Distance {
			t.Fatalf("distances not ascending at %d: %v", i, results)
		}
	}
}

func TestSearchClampsK(t *testing.T) {
	idx := builtIndex(t)

	results, err := idx.Search(context.Background(), "query", 100)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected k clamped to catalog size 4, got %d", len(results))
	}
}

func TestSearchStableTies(t *testing.T) {
	emb := &axisEmbedder{vectors: map[string][]float32{
		"a": {1, 0, 0},
		"b": {1, 0, 0},
		"c": {1, 0, 0},
		"q": {0, 0, 0},
	}}
	idx := New(emb, logger.New("development"))

	entries := []catalog.Entry{
		{Document: catalog.Document{ID: "a", Text: "a"}},
		{Document: catalog.Document{ID: "b", Text: "b"}},
		{Document: catalog.Document{ID: "c", Text: "c"}},
	}
	if err := idx.Build(context.Background(), entries); err != nil {
		t.Fatalf("build: %v", err)
	}

	results, err := idx.Search(context.Background(), "q", 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for i, want := range []string{"a", "b", "c"} {
		if results[i].Entry.Document.ID != want {
			t.Fatalf("tie order broken at %d: got %q, want %q", i, results[i].Entry.Document.ID, want)
		}
	}
}

func TestSearchUnbuiltIndex(t *testing.T) {
	idx := New(testEmbedder(), logger.New("development"))

	_, err := idx.Search(context.Background(), "query", 5)
	if !errors.Is(err, ErrIndexNotReady) {
		t.Fatalf("expected ErrIndexNotReady, got %v", err)
	}
	if apperr.GetKind(err) != apperr.KindUnavailable {
		t.Fatalf("expected KindUnavailable, got %v", apperr.GetKind(err))
	}
}

func TestBuildEmptyCatalog(t *testing.T) {
	idx := New(testEmbedder(), logger.New("development"))

	if err := idx.Build(context.Background(), nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
	if idx.Ready() {
		t.Fatal("index must not be ready after failed build")
	}
}
