package service

import (
	"testing"
)

var knownCategories = []string{"Cement", "Steel", "Electrical Wire", "Chillers / CRAHs"}

func TestParseAdvisorResponsePlainArray(t *testing.T) {
	text := `[{"category": "Cement", "search_query": "OPC 53 grade cement", "priority": "high", "reason": "structural"}]`

	advice, err := parseAdvisorResponse(text, knownCategories)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(advice) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(advice))
	}
	if advice[0].Category != "Cement" || advice[0].SearchQuery != "OPC 53 grade cement" {
		t.Fatalf("unexpected advice: %+v", advice[0])
	}
}

func TestParseAdvisorResponseCodeFence(t *testing.T) {
	text := "Here you go:\n```json\n[{\"category\": \"steel\", \"priority\": \"high\"}]\n```\nHope that helps."

	advice, err := parseAdvisorResponse(text, knownCategories)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if advice[0].Category != "Steel" {
		t.Fatalf("category = %q, want canonical Steel", advice[0].Category)
	}
	// Missing search_query falls back to the category name.
	if advice[0].SearchQuery != "Steel" {
		t.Fatalf("searchQuery = %q, want Steel", advice[0].SearchQuery)
	}
}

func TestParseAdvisorResponseProseWrapped(t *testing.T) {
	text := `Based on the requirements, I recommend: [{"category": "Electrical Wire", "priority": "urgent"}] as listed.`

	advice, err := parseAdvisorResponse(text, knownCategories)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if advice[0].Priority != PriorityMedium {
		t.Fatalf("priority = %q, want medium default for unknown value", advice[0].Priority)
	}
}

func TestParseAdvisorResponseDropsUnknownCategories(t *testing.T) {
	text := `[{"category": "Cement", "priority": "high"}, {"category": "Unobtainium", "priority": "high"}]`

	advice, err := parseAdvisorResponse(text, knownCategories)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(advice) != 1 || advice[0].Category != "Cement" {
		t.Fatalf("unexpected advice: %+v", advice)
	}
}

func TestParseAdvisorResponseNoUsableEntries(t *testing.T) {
	cases := []string{
		"I cannot help with that.",
		"[]",
		`[{"category": "Unobtainium"}]`,
		"```json\nnot json at all\n```",
	}
	for _, text := range cases {
		if _, err := parseAdvisorResponse(text, knownCategories); err == nil {
			t.Fatalf("expected error for %q", text)
		}
	}
}

func TestAdviceToEstimates(t *testing.T) {
	estimates := adviceToEstimates([]CategoryAdvice{
		{Category: "Cement", Priority: PriorityHigh},
	})

	if estimates[0].QuantityText != "As per specification" {
		t.Fatalf("quantityText = %q", estimates[0].QuantityText)
	}
	if estimates[0].TotalCost != 0 || estimates[0].UnitCost != 0 {
		t.Fatalf("advisor estimates must carry no costs: %+v", estimates[0])
	}
}
