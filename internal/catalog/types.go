// Package catalog defines the normalized catalog domain types shared by
// ingestion, retrieval, and vendor lookup.
package catalog

// Document is the searchable text form of one raw catalog record.
// Immutable once built.
type Document struct {
	ID             string
	Text           string
	SourceCategory string
}

// VendorRecord is the vendor identity derived 1:1 from a raw catalog
// record at ingestion time. Never mutated after creation.
type VendorRecord struct {
	CompanyName   string
	Location      string
	GSTStatus     string
	Rating        string
	Availability  string
	SourceURL     string
	Category      string
	ContactPerson string
	Email         string
	Phone         string
}

// IdentityKey is the deduplication key for a vendor. Two records with the
// same key are the same vendor. An empty key marks an unresolvable identity.
func (v VendorRecord) IdentityKey() string {
	name := normalizeKeyPart(v.CompanyName)
	if name == "" {
		return ""
	}
	return name + "|" + normalizeKeyPart(v.Location)
}

// Entry pairs a document with the vendor derived from the same raw record.
type Entry struct {
	Document Document
	Vendor   VendorRecord
}
