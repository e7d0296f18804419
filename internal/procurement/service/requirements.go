package service

import (
	"regexp"
	"strconv"
	"strings"

	"ctai_backend/internal/procurement/transport"
)

// Project type enum values.
const (
	TypeResidential = "residential"
	TypeCommercial  = "commercial"
	TypeIndustrial  = "industrial"
	TypeDataCenter  = "data_center"
)

const (
	defaultAreaSqft = 50000.0
	defaultLocation = "Navi Mumbai"

	lakh = 100000.0
)

// Extraction grammar. Case-insensitive, first match wins per field except
// location, which takes the trailing "in <words>" clause.
var (
	powerPattern    = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:mega\s*watts?|mw)\b`)
	areaPattern     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(lacs?|lakhs?)?\s*(?:sq\.?\s*(?:ft|feet)|sqft|square\s*(?:foot|feet)|squarefoot|squarefeet)`)
	volumePattern   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:crores?|cr)\b(?:\s*(?:in\s+)?rupees)?`)
	locationPattern = regexp.MustCompile(`(?i)\bin\s+([A-Za-z][A-Za-z ]*?)(?:\s+area\b|\s+for\b|,|$)`)
)

// ExtractRequirements parses a free-text project description into a
// ProjectRequirements struct. Pure function.
func ExtractRequirements(query string) transport.ProjectRequirements {
	req := transport.ProjectRequirements{
		BuiltUpAreaSqft: defaultAreaSqft,
		Location:        defaultLocation,
	}

	if m := powerPattern.FindStringSubmatch(query); m != nil {
		if value, err := strconv.ParseFloat(m[1], 64); err == nil {
			req.PowerCapacityMW = &value
		}
	}

	if m := areaPattern.FindStringSubmatch(query); m != nil {
		if value, err := strconv.ParseFloat(m[1], 64); err == nil {
			if m[2] != "" {
				value *= lakh
			}
			req.BuiltUpAreaSqft = value
		}
	}

	if m := volumePattern.FindStringSubmatch(query); m != nil {
		if value, err := strconv.ParseFloat(m[1], 64); err == nil {
			req.ProjectVolumeCrore = &value
		}
	}

	if location := ExtractedLocation(query); location != "" {
		req.Location = location
	}

	req.ProjectType = extractProjectType(query, req.PowerCapacityMW != nil)

	return req
}

// ExtractedLocation returns the last "in <words>" clause, stopping at
// "area", "for", a comma, or end of string, or "" when the query names no
// location. Clauses that belong to the volume grammar ("in Rupees") are
// not locations. A "navi mumbai" substring anywhere wins.
func ExtractedLocation(query string) string {
	if strings.Contains(strings.ToLower(query), "navi mumbai") {
		return "Navi Mumbai"
	}
	matches := locationPattern.FindAllStringSubmatch(query, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		clause := strings.TrimSpace(matches[i][1])
		if strings.EqualFold(clause, "rupees") {
			continue
		}
		return clause
	}
	return ""
}

func extractProjectType(query string, hasPower bool) string {
	lower := strings.ToLower(query)

	switch {
	case strings.Contains(lower, "residential"):
		return TypeResidential
	case strings.Contains(lower, "industrial"):
		return TypeIndustrial
	case strings.Contains(lower, "data center"),
		strings.Contains(lower, "datacenter"),
		strings.Contains(lower, "data_center"):
		return TypeDataCenter
	case strings.Contains(lower, "commercial"):
		return TypeCommercial
	}

	if hasPower {
		return TypeDataCenter
	}
	return TypeCommercial
}
