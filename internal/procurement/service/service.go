// Package service implements the procurement estimation pipeline: free-text
// requirement extraction, material estimation with an AI-assisted fallback
// cascade, vendor resolution, budget decomposition, and phase scheduling.
package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"ctai_backend/internal/procurement/transport"
	"ctai_backend/platform/apperr"
	"ctai_backend/platform/logger"
)

// At most this many material categories drive vendor lookups per report.
const maxVendorCategories = 5

// Service orchestrates the pipeline. All computation is synchronous per
// request; the only shared state is the read-only retrieval index.
type Service struct {
	index      Searcher
	advisor    Completer
	webhook    WebhookClient
	store      VendorStore
	rates      []MaterialRate
	categories []string
	topVendors int
	log        *logger.Logger
	now        func() time.Time
}

// Deps wires the service collaborators. Advisor, webhook, and store are
// optional; each missing collaborator just shortens the fallback cascade.
type Deps struct {
	Index      Searcher
	Advisor    Completer
	Webhook    WebhookClient
	Store      VendorStore
	Rates      []MaterialRate
	Categories []string
	TopVendors int
	Logger     *logger.Logger
	Now        func() time.Time
}

// New creates the procurement service.
func New(deps Deps) *Service {
	rates := deps.Rates
	if len(rates) == 0 {
		rates = DefaultRates()
	}

	categories := deps.Categories
	if len(categories) == 0 {
		for _, rate := range rates {
			categories = append(categories, rate.Name)
		}
	}

	topVendors := deps.TopVendors
	if topVendors <= 0 {
		topVendors = 5
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		index:      deps.Index,
		advisor:    deps.Advisor,
		webhook:    deps.Webhook,
		store:      deps.Store,
		rates:      rates,
		categories: categories,
		topVendors: topVendors,
		log:        deps.Logger,
		now:        now,
	}
}

// GenerateReport runs the full pipeline for one free-text query.
func (s *Service) GenerateReport(ctx context.Context, query string, k int) (transport.ProcurementReport, error) {
	if strings.TrimSpace(query) == "" {
		return transport.ProcurementReport{}, apperr.Validation("query is required")
	}
	if k <= 0 {
		k = s.topVendors
	}

	req := ExtractRequirements(query)

	// The deterministic estimates are always computed: they are the sole
	// budget input even when the advisor supplies the displayed lines.
	deterministic := EstimateDeterministic(req, s.rates)
	display, searchTerms := s.estimateForDisplay(ctx, req, deterministic)

	searchLocation := ExtractedLocation(query)
	vendorsByCategory := make(map[string][]transport.Vendor, len(searchTerms))
	for i := range display {
		term, ok := searchTerms[display[i].MaterialName]
		if !ok {
			continue
		}
		vendors := s.ResolveVendors(ctx, term, searchLocation, k)
		vendorsByCategory[display[i].MaterialName] = vendors
		display[i].VendorCount = len(vendors)
	}

	budget := ComputeBudget(deterministic, req.BuiltUpAreaSqft, req.ProjectVolumeCrore)
	schedule := GenerateSchedule(req.BuiltUpAreaSqft, req.ProjectType, req.PowerCapacityMW, s.now())

	return AssembleReport(s.now(), req, display, vendorsByCategory, budget, schedule), nil
}

// estimateForDisplay applies the material estimation cascade: advisor
// recommendations first, the deterministic table on any advisor failure.
// It returns the displayed estimates plus the vendor search term for each
// material selected for lookup.
func (s *Service) estimateForDisplay(ctx context.Context, req transport.ProjectRequirements, deterministic []transport.MaterialEstimate) ([]transport.MaterialEstimate, map[string]string) {
	if s.advisor != nil {
		advice, err := s.adviseCategories(ctx, req)
		if err == nil {
			terms := make(map[string]string, len(advice))
			for _, entry := range selectTopAdvice(advice) {
				terms[entry.Category] = entry.SearchQuery
			}
			return adviceToEstimates(advice), terms
		}
		s.log.AdvisorFallback("deterministic path", err)
	}

	display := make([]transport.MaterialEstimate, len(deterministic))
	copy(display, deterministic)

	terms := make(map[string]string, maxVendorCategories)
	for _, estimate := range selectTopEstimates(display) {
		terms[estimate.MaterialName] = estimate.MaterialName
	}
	return display, terms
}

func (s *Service) adviseCategories(ctx context.Context, req transport.ProjectRequirements) ([]CategoryAdvice, error) {
	prompt := buildAdvisorPrompt(req, s.categories)
	text, err := s.advisor.Complete(ctx, prompt, advisorMaxTokens)
	if err != nil {
		return nil, err
	}
	return parseAdvisorResponse(text, s.categories)
}

var priorityRank = map[string]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// selectTopEstimates picks the materials that drive vendor lookups:
// highest priority first, original order within a priority.
func selectTopEstimates(estimates []transport.MaterialEstimate) []transport.MaterialEstimate {
	picked := make([]transport.MaterialEstimate, len(estimates))
	copy(picked, estimates)

	sort.SliceStable(picked, func(a, b int) bool {
		return priorityRank[picked[a].Priority] < priorityRank[picked[b].Priority]
	})

	if len(picked) > maxVendorCategories {
		picked = picked[:maxVendorCategories]
	}
	return picked
}

func selectTopAdvice(advice []CategoryAdvice) []CategoryAdvice {
	picked := make([]CategoryAdvice, len(advice))
	copy(picked, advice)

	sort.SliceStable(picked, func(a, b int) bool {
		return priorityRank[picked[a].Priority] < priorityRank[picked[b].Priority]
	})

	if len(picked) > maxVendorCategories {
		picked = picked[:maxVendorCategories]
	}
	return picked
}

// GenerateScheduleAt exposes the schedule engine for the schedule endpoint.
func (s *Service) GenerateScheduleAt(areaSqft float64, projectType string, powerMW *float64) (int, []transport.SchedulePhase) {
	if areaSqft <= 0 {
		areaSqft = defaultAreaSqft
	}
	if projectType == "" {
		projectType = TypeCommercial
	}
	totalDays := ScheduleMonths(areaSqft, powerMW) * 30
	return totalDays, GenerateSchedule(areaSqft, projectType, powerMW, s.now())
}

// AssembleReport composes the final report. Pure structural assembly: with
// frozen inputs and clock the result is byte-for-byte reproducible.
func AssembleReport(
	now time.Time,
	req transport.ProjectRequirements,
	estimates []transport.MaterialEstimate,
	vendorsByCategory map[string][]transport.Vendor,
	budget transport.BudgetBreakdown,
	schedule []transport.SchedulePhase,
) transport.ProcurementReport {
	return transport.ProcurementReport{
		GeneratedAt:       now.UTC().Format(time.RFC3339),
		Requirements:      req,
		MaterialEstimates: estimates,
		VendorsByCategory: vendorsByCategory,
		Budget:            budget,
		Schedule:          schedule,
	}
}
