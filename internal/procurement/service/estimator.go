package service

import (
	"fmt"
	"math"
	"os"

	"ctai_backend/internal/procurement/transport"

	"gopkg.in/yaml.v3"
)

// Priority levels for material lines.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

const crore = 10000000.0

// MaterialRate is one row of the deterministic estimation table:
// per-sqft consumption and unit pricing for a material type.
type MaterialRate struct {
	Name     string  `yaml:"name"`
	Unit     string  `yaml:"unit"`
	PerSqft  float64 `yaml:"per_sqft"`
	UnitCost float64 `yaml:"unit_cost"`
	Priority string  `yaml:"priority"`
}

// DefaultRates is the built-in estimation table, per Indian construction
// norms. Rates are rupees per unit.
func DefaultRates() []MaterialRate {
	return []MaterialRate{
		{Name: "Cement", Unit: "Bags", PerSqft: 0.4, UnitCost: 350, Priority: PriorityHigh},
		{Name: "Steel", Unit: "Kg", PerSqft: 3.5, UnitCost: 65, Priority: PriorityHigh},
		{Name: "Sand", Unit: "Cft", PerSqft: 1.8, UnitCost: 50, Priority: PriorityHigh},
		{Name: "Aggregate", Unit: "Cft", PerSqft: 1.35, UnitCost: 38, Priority: PriorityMedium},
		{Name: "Bricks", Unit: "Units", PerSqft: 8, UnitCost: 8, Priority: PriorityHigh},
		{Name: "Tiles", Unit: "Sqft", PerSqft: 1.3, UnitCost: 45, Priority: PriorityMedium},
		{Name: "Paint", Unit: "Litres", PerSqft: 0.18, UnitCost: 250, Priority: PriorityLow},
		{Name: "Electrical Wire", Unit: "Metres", PerSqft: 1.5, UnitCost: 35, Priority: PriorityMedium},
		{Name: "Plumbing Pipe", Unit: "Metres", PerSqft: 0.4, UnitCost: 120, Priority: PriorityMedium},
		{Name: "Doors", Unit: "Units", PerSqft: 0.008, UnitCost: 8500, Priority: PriorityLow},
		{Name: "Windows", Unit: "Units", PerSqft: 0.012, UnitCost: 6000, Priority: PriorityLow},
	}
}

// LoadRates reads a rate table override from a YAML file.
func LoadRates(path string) ([]MaterialRate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rates file: %w", err)
	}

	var rates []MaterialRate
	if err := yaml.Unmarshal(data, &rates); err != nil {
		return nil, fmt.Errorf("parse rates file: %w", err)
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("rates file %s contains no entries", path)
	}
	return rates, nil
}

var typeMultipliers = map[string]float64{
	TypeResidential: 1.0,
	TypeCommercial:  1.3,
	TypeIndustrial:  1.5,
	TypeDataCenter:  1.8,
}

// TypeMultiplier returns the consumption multiplier for a project type.
// Unknown types fall back to residential (1.0).
func TypeMultiplier(projectType string) float64 {
	if m, ok := typeMultipliers[projectType]; ok {
		return m
	}
	return 1.0
}

// EstimateDeterministic computes the per-area material estimates plus, when
// power capacity is set, the electrical and cooling equipment lines.
// The invariant TotalCost = Quantity * UnitCost holds exactly for every line.
func EstimateDeterministic(req transport.ProjectRequirements, rates []MaterialRate) []transport.MaterialEstimate {
	multiplier := TypeMultiplier(req.ProjectType)
	area := req.BuiltUpAreaSqft

	estimates := make([]transport.MaterialEstimate, 0, len(rates)+3)
	for _, rate := range rates {
		quantity := area * rate.PerSqft * multiplier
		estimates = append(estimates, transport.MaterialEstimate{
			MaterialName: rate.Name,
			Quantity:     quantity,
			QuantityText: fmt.Sprintf("%.0f %s", quantity, rate.Unit),
			Unit:         rate.Unit,
			UnitCost:     rate.UnitCost,
			TotalCost:    quantity * rate.UnitCost,
			Priority:     rate.Priority,
		})
	}

	if req.PowerCapacityMW != nil {
		estimates = append(estimates, powerEquipmentEstimates(*req.PowerCapacityMW)...)
	}

	return estimates
}

// powerEquipmentEstimates sizes the electrical and cooling plant from the
// stated power capacity. Unit costs are per-unit crore figures.
func powerEquipmentEstimates(powerMW float64) []transport.MaterialEstimate {
	switchgear := math.Max(5, powerMW/2.5)
	transformers := math.Max(3, powerMW/5)
	chillers := math.Max(10, powerMW*2)

	switchgearCost := 0.2 * crore
	transformerCost := 6.67 * crore
	chillerCost := 0.3 * crore

	return []transport.MaterialEstimate{
		{
			MaterialName: "Medium Voltage Switchgear",
			Quantity:     switchgear,
			QuantityText: fmt.Sprintf("%.0f LineUps", switchgear),
			Unit:         "LineUps",
			UnitCost:     switchgearCost,
			TotalCost:    switchgear * switchgearCost,
			Priority:     PriorityHigh,
		},
		{
			MaterialName: "Transformers",
			Quantity:     transformers,
			QuantityText: fmt.Sprintf("%.0f Units (%.1fMVA)", transformers, powerMW/transformers),
			Unit:         "Units",
			UnitCost:     transformerCost,
			TotalCost:    transformers * transformerCost,
			Priority:     PriorityHigh,
		},
		{
			MaterialName: "Chillers / CRAHs",
			Quantity:     chillers,
			QuantityText: fmt.Sprintf("%.0f Units", chillers),
			Unit:         "Units",
			UnitCost:     chillerCost,
			TotalCost:    chillers * chillerCost,
			Priority:     PriorityHigh,
		},
	}
}
