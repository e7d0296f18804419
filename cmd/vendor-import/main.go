// Command vendor-import seeds the vendors table from the JSON catalog so
// the DB fallback can answer lookups without the retrieval index.
package main

import (
	"context"

	"ctai_backend/internal/catalog"
	"ctai_backend/internal/catalog/repository"
	"ctai_backend/internal/config"
	"ctai_backend/migrations"
	"ctai_backend/platform/db"
	"ctai_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting vendor import", "dir", cfg.CatalogDir)

	if cfg.DatabaseURL == "" {
		panic("DATABASE_URL is required for vendor import")
	}

	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.DatabaseURL, migrations.FS, "."); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	entries, err := catalog.LoadDir(cfg.CatalogDir, log)
	if err != nil {
		log.Error("failed to load catalog", "error", err, "dir", cfg.CatalogDir)
		panic("failed to load catalog: " + err.Error())
	}

	repo := repository.New(pool)

	var inserted, merged, skipped int
	for _, entry := range entries {
		vendor := entry.Vendor
		if vendor.IdentityKey() == "" {
			skipped++
			continue
		}

		created, err := repo.UpsertVendor(ctx, vendor)
		if err != nil {
			log.Error("failed to upsert vendor", "error", err, "vendor", vendor.CompanyName)
			continue
		}
		if created {
			inserted++
			continue
		}

		// Existing vendor seen under another material file: merge categories.
		if vendor.Category != "" {
			if err := repo.MergeVendorCategory(ctx, vendor.CompanyName, vendor.Location, vendor.Category); err != nil {
				log.Error("failed to merge vendor category", "error", err, "vendor", vendor.CompanyName)
				continue
			}
			merged++
		}
	}

	log.Info("vendor import complete",
		"entries", len(entries), "inserted", inserted, "merged", merged, "skipped", skipped)
}
