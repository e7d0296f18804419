// Package vendorhook provides a client for the external vendor lookup
// webhook. The webhook aggregates marketplace seller listings for a
// product query and returns them in a loosely structured JSON shape.
package vendorhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// The webhook occasionally prefixes company names with this banner text.
const sellerBannerPrefix = "SELLER CONTACT DETAILS"

// Vendor is one seller listing in the webhook response, flattened.
type Vendor struct {
	CompanyName   string
	ContactPerson string
	Product       string
	Category      string
	Grade         string
	Location      string
	Pincode       string
	FullAddress   string
	Availability  string
	GoogleMapsURL string
	ProfileURL    string
}

// Client calls the vendor lookup webhook.
type Client struct {
	webhookURL string
	httpClient *http.Client
}

// Config configures the webhook client.
type Config struct {
	WebhookURL string
	Timeout    time.Duration
}

// NewClient creates a new webhook client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		webhookURL: cfg.WebhookURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured reports whether a webhook URL is set.
func (c *Client) Configured() bool {
	return c != nil && c.webhookURL != ""
}

// Search queries the webhook for sellers of the given product, optionally
// scoped to a location. An empty result is not an error; transport and
// upstream failures are returned so the caller can decide to fall back.
func (c *Client) Search(ctx context.Context, productName, location string) ([]Vendor, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("vendorhook: webhook URL not configured")
	}

	params := url.Values{}
	params.Set("product_name", productName)
	if location != "" {
		params.Set("location", location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.webhookURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("vendorhook: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vendorhook: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("vendorhook: webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("vendorhook: read response: %w", err)
	}

	return parseResponse(body)
}

// parseResponse accepts both a raw JSON array of listings and an object
// wrapping the listings under "output".
func parseResponse(body []byte) ([]Vendor, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("vendorhook: decode response: %w", err)
	}

	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case map[string]any:
		if output, ok := v["output"]; ok {
			if list, ok := output.([]any); ok {
				items = list
			} else {
				items = []any{output}
			}
		} else {
			items = []any{v}
		}
	default:
		return nil, nil
	}

	vendors := make([]Vendor, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		vendors = append(vendors, parseItem(obj))
	}

	return vendors, nil
}

func parseItem(item map[string]any) Vendor {
	// Items may themselves wrap the payload under "output".
	if inner, ok := item["output"].(map[string]any); ok {
		item = inner
	}

	productDetails := childObject(item, "product_details")
	sellerDetails := childObject(item, "seller_details")
	address := childObject(sellerDetails, "address")
	links := childObject(sellerDetails, "links")

	companyName := stringField(sellerDetails, "company_name")
	if strings.HasPrefix(companyName, sellerBannerPrefix) {
		companyName = strings.TrimSpace(strings.TrimPrefix(companyName, sellerBannerPrefix))
	}

	city := stringField(address, "city")
	state := stringField(address, "state")
	location := city
	if city != "" && state != "" {
		location = city + ", " + state
	} else if location == "" {
		location = state
	}

	return Vendor{
		CompanyName:   companyName,
		ContactPerson: stringField(sellerDetails, "contact_person"),
		Product:       stringField(productDetails, "product_type"),
		Category:      stringField(productDetails, "material_category"),
		Grade:         stringField(productDetails, "grade"),
		Location:      location,
		Pincode:       stringField(address, "pincode"),
		FullAddress:   stringField(address, "full_text"),
		Availability:  stringField(productDetails, "availability"),
		GoogleMapsURL: stringField(links, "google_maps"),
		ProfileURL:    stringField(links, "profile_url"),
	}
}

func childObject(parent map[string]any, key string) map[string]any {
	if parent == nil {
		return nil
	}
	if obj, ok := parent[key].(map[string]any); ok {
		return obj
	}
	return nil
}

func stringField(obj map[string]any, key string) string {
	if obj == nil {
		return ""
	}
	if s, ok := obj[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
