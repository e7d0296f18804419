// Package transport defines the request/response shapes of the procurement
// module. The service layer computes directly over these types.
package transport

// ReportRequest is the body of POST /procurement/report.
type ReportRequest struct {
	Query      string `json:"query" validate:"required"`
	TopVendors int    `json:"topVendors" validate:"omitempty,min=1,max=20"`
}

// ScheduleRequest is the body of POST /schedule.
type ScheduleRequest struct {
	BuiltUpAreaSqft float64  `json:"builtUpAreaSqft" validate:"omitempty,min=0"`
	ProjectType     string   `json:"projectType" validate:"omitempty,oneof=residential commercial industrial data_center"`
	PowerCapacityMW *float64 `json:"powerCapacityMw" validate:"omitempty"`
}

// ProjectRequirements is the structured form of a free-text project query.
type ProjectRequirements struct {
	PowerCapacityMW    *float64 `json:"powerCapacityMw,omitempty"`
	BuiltUpAreaSqft    float64  `json:"builtUpAreaSqft"`
	ProjectVolumeCrore *float64 `json:"projectVolumeCrore,omitempty"`
	Location           string   `json:"location"`
	ProjectType        string   `json:"projectType"`
}

// MaterialEstimate is one material line of the report. Quantity is numeric
// when produced by the deterministic path; AI-derived lines carry a
// symbolic QuantityText and zero cost fields.
type MaterialEstimate struct {
	MaterialName string  `json:"materialName"`
	Quantity     float64 `json:"quantity"`
	QuantityText string  `json:"quantityText"`
	Unit         string  `json:"unit"`
	UnitCost     float64 `json:"unitCost"`
	TotalCost    float64 `json:"totalCost"`
	Priority     string  `json:"priority"`
	VendorCount  int     `json:"vendorCount"`
}

// Vendor is one matched vendor including presentation-only decoration
// (SKU, stock status, lead time) that never feeds budget or schedule math.
type Vendor struct {
	CompanyName   string `json:"companyName"`
	Location      string `json:"location"`
	GSTStatus     string `json:"gstStatus"`
	Rating        string `json:"rating"`
	Availability  string `json:"availability,omitempty"`
	SourceURL     string `json:"sourceUrl,omitempty"`
	Category      string `json:"category"`
	ContactPerson string `json:"contactPerson,omitempty"`
	Phone         string `json:"phone,omitempty"`
	SKU           string `json:"sku"`
	StockStatus   string `json:"stockStatus"`
	LeadTime      string `json:"leadTime"`
}

// BudgetBreakdown is the cost decomposition of the project.
type BudgetBreakdown struct {
	MaterialCost        float64            `json:"materialCost"`
	LaborCost           float64            `json:"laborCost"`
	EquipmentCost       float64            `json:"equipmentCost"`
	Overhead            float64            `json:"overhead"`
	ContractorProfit    float64            `json:"contractorProfit"`
	GSTCost             float64            `json:"gstCost"`
	TotalCost           float64            `json:"totalCost"`
	CostPerSqft         float64            `json:"costPerSqft"`
	BreakdownPercentage map[string]float64 `json:"breakdownPercentage"`
}

// SchedulePhase is one time-boxed segment of the construction schedule.
// Dates are rendered as YYYY-MM-DD.
type SchedulePhase struct {
	Name            string `json:"name"`
	Owner           string `json:"owner"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	DurationDays    int    `json:"durationDays"`
	ProgressPercent int    `json:"progressPercent"`
	Status          string `json:"status"`
}

// ProcurementReport is the full response of POST /procurement/report.
type ProcurementReport struct {
	GeneratedAt       string              `json:"generatedAt"`
	Requirements      ProjectRequirements `json:"requirements"`
	MaterialEstimates []MaterialEstimate  `json:"materialEstimates"`
	VendorsByCategory map[string][]Vendor `json:"vendorsByCategory"`
	Budget            BudgetBreakdown     `json:"budget"`
	Schedule          []SchedulePhase     `json:"schedule"`
}

// VendorListResponse is the response of GET /vendors.
type VendorListResponse struct {
	Vendors []Vendor `json:"vendors"`
	Count   int      `json:"count"`
}

// ScheduleResponse is the response of POST /schedule.
type ScheduleResponse struct {
	TotalDays int             `json:"totalDays"`
	Schedule  []SchedulePhase `json:"schedule"`
}
