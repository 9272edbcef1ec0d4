package entity

// BudgetLine is a current/previous/change triple for one aggregate. Previous
// and ChangePercent are nil when there is no comparison period or no prior
// value to compare against; "no prior data" is distinct from a computed 0%
// change.
type BudgetLine struct {
	Current       float64  `json:"current"`
	Previous      *float64 `json:"previous,omitempty"`
	ChangePercent *float64 `json:"change_percent,omitempty"`
}

// CategoryDelta is a BudgetLine tagged with its category label.
type CategoryDelta struct {
	Category      string   `json:"category"`
	Current       float64  `json:"current"`
	Previous      *float64 `json:"previous,omitempty"`
	ChangePercent *float64 `json:"change_percent,omitempty"`
}

// StatementComparison compares one statement against an optional earlier one.
// Computed on demand; persisted only as a cache artifact, never authoritative.
type StatementComparison struct {
	PrimaryPeriod    string  `json:"primary_period"`
	ComparisonPeriod *string `json:"comparison_period,omitempty"`

	TotalReceipts BudgetLine `json:"total_receipts"`
	TotalOutlays  BudgetLine `json:"total_outlays"`
	Deficit       BudgetLine `json:"deficit"`

	Receipts []CategoryDelta `json:"receipts"`
	Outlays  []CategoryDelta `json:"outlays"`
}

// DepartmentTrend is one department's monthly spend across every collected
// period it appears in, oldest first. ChangePercent spans the first and last
// of those figures and is absent with fewer than two.
type DepartmentTrend struct {
	Department    string    `json:"department"`
	Periods       []string  `json:"periods"`
	ThisMonth     []float64 `json:"this_month"`
	ChangePercent *float64  `json:"change_percent,omitempty"`
}

// DepartmentComparison ranks one period's departments by ratio and carries the
// comparison period's records when available.
type DepartmentComparison struct {
	PrimaryPeriod    string  `json:"primary_period"`
	ComparisonPeriod *string `json:"comparison_period,omitempty"`

	Departments       []DepartmentRecord `json:"departments"`
	TopDepartments    []DepartmentRecord `json:"top_departments"`
	BottomDepartments []DepartmentRecord `json:"bottom_departments"`

	ComparisonDepartments []DepartmentRecord `json:"comparison_departments,omitempty"`
}
