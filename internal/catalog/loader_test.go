package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"ctai_backend/platform/logger"
)

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	listFile := `[
		{"title": "TMT Bars Fe500", "seller_info": {"seller_name": "Metro Steels", "location": "Pune"}},
		{"title": "TMT Bars Fe550", "seller_info": {"seller_name": "Apex Steel Corp", "location": "Thane"}}
	]`
	if err := os.WriteFile(filepath.Join(dir, "steel_links.json"), []byte(listFile), 0o644); err != nil {
		t.Fatal(err)
	}

	// Single-object file plus one empty record that must be skipped.
	singleFile := `{"title": "River Sand", "seller_info": {"seller_name": "Sagar Suppliers"}}`
	if err := os.WriteFile(filepath.Join(dir, "sand.json"), []byte(singleFile), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := LoadDir(dir, logger.New("development"))
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	categories := map[string]int{}
	for _, entry := range entries {
		categories[entry.Document.SourceCategory]++
	}
	if categories["Steel"] != 2 {
		t.Fatalf("expected 2 Steel entries, got %d", categories["Steel"])
	}
	if categories["Sand"] != 1 {
		t.Fatalf("expected 1 Sand entry, got %d", categories["Sand"])
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, err := LoadDir("/nonexistent/catalog", logger.New("development")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
