package repository

import (
	"context"
	"fmt"

	"ctai_backend/internal/catalog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo implements the vendors repository over Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vendors repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// SearchVendors LIKE-matches query against vendor name and category,
// optionally narrowed by location.
func (r *Repo) SearchVendors(ctx context.Context, query, location string, k int) ([]catalog.VendorRecord, error) {
	pattern := "%" + query + "%"

	sql := `
		SELECT name, category, location, rating, gst, contact_person, email, phone, website
		FROM vendors
		WHERE (category ILIKE $1 OR name ILIKE $1)`
	args := []interface{}{pattern}

	if location != "" {
		sql += " AND location ILIKE $2 LIMIT $3"
		args = append(args, "%"+location+"%", k)
	} else {
		sql += " LIMIT $2"
		args = append(args, k)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search vendors: %w", err)
	}
	defer rows.Close()

	vendors := make([]catalog.VendorRecord, 0, k)
	for rows.Next() {
		var v catalog.VendorRecord
		if err := rows.Scan(
			&v.CompanyName, &v.Category, &v.Location, &v.Rating, &v.GSTStatus,
			&v.ContactPerson, &v.Email, &v.Phone, &v.SourceURL,
		); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate vendors: %w", rows.Err())
	}

	return vendors, nil
}

// UpsertVendor inserts a vendor, ignoring duplicates on (name, location).
func (r *Repo) UpsertVendor(ctx context.Context, vendor catalog.VendorRecord) (bool, error) {
	sql := `
		INSERT INTO vendors (name, category, location, rating, gst, contact_person, email, phone, website)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (name, location) DO NOTHING`

	result, err := r.pool.Exec(ctx, sql,
		vendor.CompanyName, vendor.Category, vendor.Location, vendor.Rating, vendor.GSTStatus,
		vendor.ContactPerson, vendor.Email, vendor.Phone, vendor.SourceURL,
	)
	if err != nil {
		return false, fmt.Errorf("upsert vendor: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// MergeVendorCategory appends a category to an existing vendor's category
// list when it is not already present.
func (r *Repo) MergeVendorCategory(ctx context.Context, companyName, location, category string) error {
	sql := `
		UPDATE vendors
		SET category = category || ', ' || $3
		WHERE name = $1 AND location = $2 AND position($3 in category) = 0`

	if _, err := r.pool.Exec(ctx, sql, companyName, location, category); err != nil {
		return fmt.Errorf("merge vendor category: %w", err)
	}
	return nil
}
