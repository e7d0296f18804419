package service

import (
	"ctai_backend/internal/procurement/transport"
)

// Cost component ratios relative to material cost, plus flat GST on the
// subtotal.
const (
	laborRatio     = 0.35
	equipmentRatio = 0.10
	overheadRatio  = 0.12
	profitRatio    = 0.10
	gstRate        = 0.18
)

// ComputeBudget decomposes the summed material costs into the full cost
// breakdown. When a target project volume is stated, every component is
// rescaled so the total matches the target exactly while preserving the
// proportional split. Scale-to-target takes precedence even when the
// target is inconsistent with the material-driven estimate; that is a
// policy choice, so costPerSqft follows the scaled total.
func ComputeBudget(materials []transport.MaterialEstimate, areaSqft float64, targetVolumeCrore *float64) transport.BudgetBreakdown {
	var materialCost float64
	for _, m := range materials {
		materialCost += m.TotalCost
	}

	laborCost := laborRatio * materialCost
	equipmentCost := equipmentRatio * materialCost
	overhead := overheadRatio * materialCost
	contractorProfit := profitRatio * materialCost
	subtotal := materialCost + laborCost + equipmentCost + overhead + contractorProfit
	gstCost := gstRate * subtotal
	totalCost := subtotal + gstCost

	if targetVolumeCrore != nil && totalCost > 0 {
		targetRupees := *targetVolumeCrore * crore
		factor := targetRupees / totalCost
		materialCost *= factor
		laborCost *= factor
		equipmentCost *= factor
		overhead *= factor
		contractorProfit *= factor
		gstCost *= factor
		totalCost = targetRupees
	}

	costPerSqft := 0.0
	if areaSqft > 0 {
		costPerSqft = totalCost / areaSqft
	}

	breakdown := map[string]float64{
		"materials": 0,
		"labor":     0,
		"equipment": 0,
		"overhead":  0,
		"profit":    0,
		"gst":       0,
	}
	if totalCost > 0 {
		breakdown["materials"] = materialCost / totalCost * 100
		breakdown["labor"] = laborCost / totalCost * 100
		breakdown["equipment"] = equipmentCost / totalCost * 100
		breakdown["overhead"] = overhead / totalCost * 100
		breakdown["profit"] = contractorProfit / totalCost * 100
		breakdown["gst"] = gstCost / totalCost * 100
	}

	return transport.BudgetBreakdown{
		MaterialCost:        materialCost,
		LaborCost:           laborCost,
		EquipmentCost:       equipmentCost,
		Overhead:            overhead,
		ContractorProfit:    contractorProfit,
		GSTCost:             gstCost,
		TotalCost:           totalCost,
		CostPerSqft:         costPerSqft,
		BreakdownPercentage: breakdown,
	}
}
