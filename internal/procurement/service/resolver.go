package service

import (
	"context"

	"ctai_backend/internal/catalog"
	"ctai_backend/internal/procurement/transport"
	"ctai_backend/internal/retrieval"
	"ctai_backend/platform/vendorhook"
)

// Searcher is the retrieval index seam.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]retrieval.Result, error)
	Ready() bool
}

// WebhookClient is the external vendor lookup seam.
type WebhookClient interface {
	Search(ctx context.Context, productName, location string) ([]vendorhook.Vendor, error)
	Configured() bool
}

// VendorStore is the vendors DB fallback seam.
type VendorStore interface {
	SearchVendors(ctx context.Context, query, location string, k int) ([]catalog.VendorRecord, error)
}

// Queries with no extracted location are broadened across major metros.
const metroDisjunction = "Mumbai OR Delhi OR Bengaluru OR Chennai OR Hyderabad OR Pune"

// Overfetch factor to absorb duplicates before identity dedup.
const overfetchFactor = 3

// vendorStrategy is one step of the lookup cascade.
type vendorStrategy struct {
	name string
	run  func(ctx context.Context, term, location string, k int) ([]catalog.VendorRecord, error)
}

// vendorStrategies returns the ordered lookup cascade: retrieval index,
// then the vendor webhook, then the vendors DB table. The first strategy
// returning at least one candidate wins; failures are logged by the
// caller and never abort the report.
func (s *Service) vendorStrategies() []vendorStrategy {
	var strategies []vendorStrategy

	if s.index != nil {
		strategies = append(strategies, vendorStrategy{
			name: "index",
			run: func(ctx context.Context, term, location string, k int) ([]catalog.VendorRecord, error) {
				query := term
				if location != "" {
					query += " " + location
				} else {
					query += " in " + metroDisjunction
				}

				results, err := s.index.Search(ctx, query, overfetchFactor*k)
				if err != nil {
					return nil, err
				}

				vendors := make([]catalog.VendorRecord, 0, len(results))
				for _, result := range results {
					vendors = append(vendors, result.Entry.Vendor)
				}
				return vendors, nil
			},
		})
	}

	if s.webhook != nil && s.webhook.Configured() {
		strategies = append(strategies, vendorStrategy{
			name: "webhook",
			run: func(ctx context.Context, term, location string, _ int) ([]catalog.VendorRecord, error) {
				raw, err := s.webhook.Search(ctx, term, location)
				if err != nil {
					return nil, err
				}

				vendors := make([]catalog.VendorRecord, 0, len(raw))
				for _, v := range raw {
					vendors = append(vendors, webhookVendorToRecord(v, term))
				}
				return vendors, nil
			},
		})
	}

	if s.store != nil {
		strategies = append(strategies, vendorStrategy{
			name: "database",
			run: func(ctx context.Context, term, location string, k int) ([]catalog.VendorRecord, error) {
				return s.store.SearchVendors(ctx, term, location, overfetchFactor*k)
			},
		})
	}

	return strategies
}

// ResolveVendors finds up to k distinct vendors for a material search term.
// An empty result is valid; every lookup failure degrades to the next
// strategy in the cascade.
func (s *Service) ResolveVendors(ctx context.Context, term, location string, k int) []transport.Vendor {
	if k <= 0 {
		k = s.topVendors
	}

	for _, strategy := range s.vendorStrategies() {
		candidates, err := strategy.run(ctx, term, location, k)
		if err != nil {
			s.log.VendorLookup(strategy.name, term, 0)
			s.log.Warn("vendor_strategy_failed", "strategy", strategy.name, "term", term, "error", err.Error())
			continue
		}

		deduped := dedupeVendors(candidates, k)
		s.log.VendorLookup(strategy.name, term, len(deduped))
		if len(deduped) > 0 {
			return s.decorate(deduped)
		}
	}

	return []transport.Vendor{}
}

// dedupeVendors keeps the first occurrence of each vendor identity in rank
// order, skipping unresolvable identities, truncated to k.
func dedupeVendors(candidates []catalog.VendorRecord, k int) []catalog.VendorRecord {
	seen := make(map[string]struct{}, len(candidates))
	deduped := make([]catalog.VendorRecord, 0, k)

	for _, vendor := range candidates {
		key := vendor.IdentityKey()
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		deduped = append(deduped, vendor)
		if len(deduped) == k {
			break
		}
	}

	return deduped
}

func webhookVendorToRecord(v vendorhook.Vendor, fallbackCategory string) catalog.VendorRecord {
	category := v.Category
	if category == "" {
		category = fallbackCategory
	}

	return catalog.VendorRecord{
		CompanyName:   v.CompanyName,
		Location:      v.Location,
		GSTStatus:     "N/A",
		Rating:        "N/A",
		Availability:  v.Availability,
		SourceURL:     v.ProfileURL,
		Category:      category,
		ContactPerson: v.ContactPerson,
	}
}
