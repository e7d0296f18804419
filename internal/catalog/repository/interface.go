package repository

import (
	"context"

	"ctai_backend/internal/catalog"
)

// Repository is the vendors table persistence surface. It backs the last
// vendor lookup fallback and the catalog importer.
type Repository interface {
	// SearchVendors LIKE-matches query against vendor name and category,
	// optionally narrowed by location, returning at most k rows.
	SearchVendors(ctx context.Context, query, location string, k int) ([]catalog.VendorRecord, error)
	// UpsertVendor inserts a vendor, ignoring duplicates on (name, location).
	// Returns true when a new row was written.
	UpsertVendor(ctx context.Context, vendor catalog.VendorRecord) (bool, error)
	// MergeVendorCategory appends a category to an existing vendor's
	// category list when it is not already present.
	MergeVendorCategory(ctx context.Context, companyName, location, category string) error
}
