package vendorhook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleItem = `{
	"product_details": {"product_type": "TMT Bars", "material_category": "Steel", "availability": "In Stock"},
	"seller_details": {
		"company_name": "SELLER CONTACT DETAILS Acme Steel Traders",
		"contact_person": "R. Kumar",
		"address": {"city": "Pune", "state": "Maharashtra", "pincode": "411001"},
		"links": {"profile_url": "https://example.com/acme"}
	}
}`

func TestParseResponseArray(t *testing.T) {
	vendors, err := parseResponse([]byte("[" + sampleItem + "]"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(vendors) != 1 {
		t.Fatalf("expected 1 vendor, got %d", len(vendors))
	}

	v := vendors[0]
	if v.CompanyName != "Acme Steel Traders" {
		t.Fatalf("banner prefix not stripped: %q", v.CompanyName)
	}
	if v.Location != "Pune, Maharashtra" {
		t.Fatalf("location = %q", v.Location)
	}
	if v.Category != "Steel" || v.ProfileURL != "https://example.com/acme" {
		t.Fatalf("unexpected vendor: %+v", v)
	}
}

func TestParseResponseOutputWrapper(t *testing.T) {
	vendors, err := parseResponse([]byte(`{"output": [` + sampleItem + `]}`))
	if err != nil {
		t.Fatalf("parse wrapped list: %v", err)
	}
	if len(vendors) != 1 {
		t.Fatalf("expected 1 vendor, got %d", len(vendors))
	}

	vendors, err = parseResponse([]byte(`{"output": ` + sampleItem + `}`))
	if err != nil {
		t.Fatalf("parse wrapped single: %v", err)
	}
	if len(vendors) != 1 || vendors[0].CompanyName != "Acme Steel Traders" {
		t.Fatalf("unexpected vendors: %+v", vendors)
	}
}

func TestParseResponseItemLevelOutput(t *testing.T) {
	vendors, err := parseResponse([]byte(`[{"output": ` + sampleItem + `}]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(vendors) != 1 || vendors[0].Location != "Pune, Maharashtra" {
		t.Fatalf("unexpected vendors: %+v", vendors)
	}
}

func TestParseResponseCityOnly(t *testing.T) {
	vendors, err := parseResponse([]byte(`[{"seller_details": {"company_name": "Solo", "address": {"city": "Chennai"}}}]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if vendors[0].Location != "Chennai" {
		t.Fatalf("location = %q", vendors[0].Location)
	}
}

func TestSearchSendsQueryParams(t *testing.T) {
	var gotProduct, gotLocation string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotProduct = r.URL.Query().Get("product_name")
		gotLocation = r.URL.Query().Get("location")
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewClient(Config{WebhookURL: server.URL})
	vendors, err := client.Search(context.Background(), "Cement", "Mumbai")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(vendors) != 0 {
		t.Fatalf("expected empty result, got %+v", vendors)
	}
	if gotProduct != "Cement" || gotLocation != "Mumbai" {
		t.Fatalf("params = %q / %q", gotProduct, gotLocation)
	}
}

func TestSearchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(Config{WebhookURL: server.URL})
	if _, err := client.Search(context.Background(), "Cement", ""); err == nil {
		t.Fatal("expected error on upstream failure")
	}
}

func TestConfigured(t *testing.T) {
	if NewClient(Config{}).Configured() {
		t.Fatal("client without URL must not report configured")
	}
	if !NewClient(Config{WebhookURL: "https://example.com/hook"}).Configured() {
		t.Fatal("client with URL must report configured")
	}
}
