package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"ctai_backend/platform/apperr"
	"ctai_backend/platform/phone"
	"ctai_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Raw seller fields carrying this sentinel are excluded from searchable text.
const sellerUnavailableSentinel = "Seller information not available"

// RawRecord is one semi-structured record as scraped. Field access is
// optional-with-default at this boundary only; nothing past the normalizer
// sees loose maps.
type RawRecord map[string]any

// Normalize turns a raw record into a Document plus its VendorRecord.
// Records whose searchable text is empty after trimming are rejected with
// a KindValidation error; callers skip and log them, never abort the batch.
func Normalize(raw RawRecord, sourceCategory string) (Entry, error) {
	var parts []string

	if title := scalarString(raw["title"]); title != "" {
		parts = append(parts, "Title: "+title)
	}

	details := childMap(raw, "details")
	parts = append(parts, renderFields(details, "")...)

	if description := scalarString(raw["description"]); description != "" {
		parts = append(parts, "Description: "+description)
	}

	sellerInfo := childMap(raw, "seller_info")
	for _, part := range renderFields(sellerInfo, "Seller ") {
		if strings.HasSuffix(part, ": "+sellerUnavailableSentinel) || strings.HasPrefix(part, "Seller error:") {
			continue
		}
		parts = append(parts, part)
	}

	companyInfo := childMap(raw, "company_info")
	parts = append(parts, renderFields(companyInfo, "Company ")...)

	text := strings.TrimSpace(strings.Join(parts, " "))
	if text == "" {
		return Entry{}, apperr.Validation("record has no searchable content")
	}

	return Entry{
		Document: Document{
			ID:             uuid.NewString(),
			Text:           text,
			SourceCategory: sourceCategory,
		},
		Vendor: deriveVendor(raw, sellerInfo, companyInfo, details, sourceCategory),
	}, nil
}

// deriveVendor extracts the vendor identity fields from a raw record.
func deriveVendor(raw RawRecord, sellerInfo, companyInfo, details map[string]any, sourceCategory string) VendorRecord {
	name := scalarString(sellerInfo["seller_name"])
	if name == "" {
		name = scalarString(sellerInfo["contact_person"])
	}
	if name == "" {
		name = scalarString(companyInfo["company_name"])
	}

	location := scalarString(sellerInfo["location"])
	if location == "" {
		location = scalarString(sellerInfo["full_address"])
	}
	// Best-effort city/state: the last comma-separated segment of an address.
	if idx := strings.LastIndex(location, ","); idx >= 0 {
		location = strings.TrimSpace(location[idx+1:])
	}

	gst := scalarString(companyInfo["gst"])
	if gst == "" {
		gst = "N/A"
	}

	rating := "N/A"
	if reviews, ok := raw["reviews"].([]any); ok {
		for _, item := range reviews {
			review, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if scalarString(review["type"]) == "overall_rating" {
				if value := scalarString(review["value"]); value != "" {
					rating = value
				}
				break
			}
		}
	}

	return VendorRecord{
		CompanyName:   name,
		Location:      location,
		GSTStatus:     gst,
		Rating:        rating,
		Availability:  scalarString(details["availability"]),
		SourceURL:     scalarString(raw["url"]),
		Category:      sourceCategory,
		ContactPerson: scalarString(sellerInfo["contact_person"]),
		Email:         scalarString(sellerInfo["email"]),
		Phone:         phone.NormalizeE164(scalarString(sellerInfo["phone"])),
	}
}

// renderFields renders every non-empty scalar field as "key: value" in
// deterministic key order.
func renderFields(fields map[string]any, keyPrefix string) []string {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := scalarString(fields[key])
		if value == "" {
			continue
		}
		parts = append(parts, keyPrefix+key+": "+value)
	}
	return parts
}

func childMap(raw RawRecord, key string) map[string]any {
	if m, ok := raw[key].(map[string]any); ok {
		return m
	}
	return nil
}

// scalarString renders a scalar JSON value as trimmed text. Nested
// structures yield "" so only scalar fields reach the searchable text.
func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		// Scraped description fields can carry markup.
		return sanitize.Text(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return ""
	}
}

func normalizeKeyPart(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
