package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ctai_backend/internal/procurement/transport"
)

// Completer is the AI advisor seam: single-turn prompt in, free text out.
// Output is untrusted and parsed defensively.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

const advisorMaxTokens = 1024

// CategoryAdvice is one advisor recommendation: a known catalog category
// plus the query to search vendors with.
type CategoryAdvice struct {
	Category    string `json:"category"`
	SearchQuery string `json:"search_query"`
	Priority    string `json:"priority"`
	Reason      string `json:"reason"`
}

// buildAdvisorPrompt asks for a JSON array of category recommendations
// restricted to the known catalog categories.
func buildAdvisorPrompt(req transport.ProjectRequirements, knownCategories []string) string {
	var sb strings.Builder

	sb.WriteString("You are a construction procurement advisor for Indian projects.\n")
	sb.WriteString("Project requirements:\n")
	fmt.Fprintf(&sb, "- Built-up area: %.0f sqft\n", req.BuiltUpAreaSqft)
	fmt.Fprintf(&sb, "- Project type: %s\n", req.ProjectType)
	fmt.Fprintf(&sb, "- Location: %s\n", req.Location)
	if req.PowerCapacityMW != nil {
		fmt.Fprintf(&sb, "- Power capacity: %.0f MW\n", *req.PowerCapacityMW)
	}
	if req.ProjectVolumeCrore != nil {
		fmt.Fprintf(&sb, "- Target budget: %.0f Crore\n", *req.ProjectVolumeCrore)
	}

	sb.WriteString("\nKnown material categories: ")
	sb.WriteString(strings.Join(knownCategories, ", "))
	sb.WriteString("\n\nSelect the categories that matter most for this project.\n")
	sb.WriteString("Respond with ONLY a JSON array of objects with keys ")
	sb.WriteString(`"category", "search_query", "priority" (high/medium/low), "reason". `)
	sb.WriteString("Every category must be one of the known categories listed above.\n")

	return sb.String()
}

// parseAdvisorResponse parses the advisor's output into usable advice.
// Code fences are stripped, the array is located inside surrounding prose,
// and entries naming unknown categories are dropped. Zero usable entries
// is an error so the caller falls through to the deterministic path.
func parseAdvisorResponse(text string, knownCategories []string) ([]CategoryAdvice, error) {
	payload := stripCodeFences(text)

	start := strings.Index(payload, "[")
	end := strings.LastIndex(payload, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in advisor response")
	}

	var parsed []CategoryAdvice
	if err := json.Unmarshal([]byte(payload[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("decode advisor response: %w", err)
	}

	known := make(map[string]string, len(knownCategories))
	for _, category := range knownCategories {
		known[strings.ToLower(category)] = category
	}

	advice := make([]CategoryAdvice, 0, len(parsed))
	for _, entry := range parsed {
		canonical, ok := known[strings.ToLower(strings.TrimSpace(entry.Category))]
		if !ok {
			continue
		}
		entry.Category = canonical
		if strings.TrimSpace(entry.SearchQuery) == "" {
			entry.SearchQuery = canonical
		}
		switch entry.Priority {
		case PriorityHigh, PriorityMedium, PriorityLow:
		default:
			entry.Priority = PriorityMedium
		}
		advice = append(advice, entry)
	}

	if len(advice) == 0 {
		return nil, fmt.Errorf("advisor returned no usable categories")
	}
	return advice, nil
}

// stripCodeFences unwraps ```json ... ``` and bare ``` ... ``` blocks.
func stripCodeFences(text string) string {
	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(text)
}

// adviceToEstimates maps advisor recommendations to symbolic material
// lines. Cost fields stay zero; the budget never consumes these.
func adviceToEstimates(advice []CategoryAdvice) []transport.MaterialEstimate {
	estimates := make([]transport.MaterialEstimate, 0, len(advice))
	for _, entry := range advice {
		estimates = append(estimates, transport.MaterialEstimate{
			MaterialName: entry.Category,
			QuantityText: "As per specification",
			Priority:     entry.Priority,
		})
	}
	return estimates
}
