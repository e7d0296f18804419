package service

import (
	"fmt"
	"hash/fnv"

	"ctai_backend/internal/catalog"
	"ctai_backend/internal/procurement/transport"
)

// Presentation-only decoration bands. Derived from a hash of the vendor
// identity key so reports are deterministic; never an input to budget or
// schedule math.
var (
	stockStatuses = []string{"In Stock", "Limited Stock", "Made to Order"}
	leadTimeBands = []string{"1-2 weeks", "2-4 weeks", "4-8 weeks"}
)

// decorate maps vendor records to their transport shape with display
// decoration attached.
func (s *Service) decorate(vendors []catalog.VendorRecord) []transport.Vendor {
	out := make([]transport.Vendor, 0, len(vendors))
	for _, vendor := range vendors {
		out = append(out, decorateVendor(vendor))
	}
	return out
}

func decorateVendor(vendor catalog.VendorRecord) transport.Vendor {
	h := fnv.New32a()
	_, _ = h.Write([]byte(vendor.IdentityKey()))
	sum := h.Sum32()

	return transport.Vendor{
		CompanyName:   vendor.CompanyName,
		Location:      vendor.Location,
		GSTStatus:     vendor.GSTStatus,
		Rating:        vendor.Rating,
		Availability:  vendor.Availability,
		SourceURL:     vendor.SourceURL,
		Category:      vendor.Category,
		ContactPerson: vendor.ContactPerson,
		Phone:         vendor.Phone,
		SKU:           fmt.Sprintf("SKU-%06d", sum%1000000),
		StockStatus:   stockStatuses[sum%uint32(len(stockStatuses))],
		LeadTime:      leadTimeBands[(sum/7)%uint32(len(leadTimeBands))],
	}
}
