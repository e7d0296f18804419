package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ctai_backend/platform/logger"
)

// LoadDir reads every *.json file in dir and normalizes its records.
// Each file holds either a list of raw records or a single record; its
// category tag is derived from the filename. Malformed files and records
// are logged and skipped, never fatal.
func LoadDir(dir string, log *logger.Logger) ([]Entry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir %s: %w", dir, err)
	}

	var entries []Entry
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, file.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.CatalogSkip(file.Name(), err)
			continue
		}

		records, err := decodeRecords(data)
		if err != nil {
			log.CatalogSkip(file.Name(), err)
			continue
		}

		category := CategoryFromFilename(file.Name())
		for _, raw := range records {
			entry, err := Normalize(raw, category)
			if err != nil {
				log.CatalogSkip(file.Name(), err)
				continue
			}
			entries = append(entries, entry)
		}
	}

	log.Info("catalog_loaded", "dir", dir, "entries", len(entries))
	return entries, nil
}

// decodeRecords accepts both a JSON array of records and a single record.
func decodeRecords(data []byte) ([]RawRecord, error) {
	var list []RawRecord
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var single RawRecord
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return []RawRecord{single}, nil
}

// CategoryFromFilename derives a category tag from a catalog filename:
// "electrical_wire_links.json" becomes "Electrical Wire".
func CategoryFromFilename(name string) string {
	base := strings.TrimSuffix(name, ".json")
	base = strings.TrimSuffix(base, "_links")
	base = strings.ReplaceAll(base, "_", " ")

	words := strings.Fields(base)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
