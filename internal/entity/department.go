package entity

// DepartmentRecord is one department's figures for one period, recovered from
// the departments table by literal name anchor.
type DepartmentRecord struct {
	Department       string  `json:"department"`
	ThisMonth        float64 `json:"this_month"`
	FiscalYearToDate float64 `json:"fiscal_year_to_date"`
	PriorPeriod      float64 `json:"prior_period"`
	BudgetEstimate   float64 `json:"budget_estimate"`
	// RatioPercentage is this-month spend over the full-year estimate, as a
	// percentage rounded to two decimals; 0 when the estimate is not positive.
	RatioPercentage float64 `json:"ratio_percentage"`
}

// DepartmentSet is every department recovered for one period.
type DepartmentSet struct {
	Period      string             `json:"period"`
	Month       string             `json:"month"`
	Year        string             `json:"year"`
	Departments []DepartmentRecord `json:"departments"`
}

// PeriodCollection accumulates department sets across a directory of
// statements. Periods keeps document processing order; a department missing
// from one period's set may still appear in another (extraction fails per
// department per period independently).
type PeriodCollection struct {
	Periods     []string                      `json:"periods"`
	Departments map[string]map[string]Figures `json:"departments"`
}

// Figures is the per-period numeric tuple stored under a department name.
type Figures struct {
	ThisMonth        float64 `json:"this_month"`
	FiscalYearToDate float64 `json:"fiscal_year_to_date"`
	PriorPeriod      float64 `json:"prior_period"`
	BudgetEstimate   float64 `json:"budget_estimate"`
}

// NewPeriodCollection returns an empty collection ready for Add.
func NewPeriodCollection() *PeriodCollection {
	return &PeriodCollection{Departments: map[string]map[string]Figures{}}
}

// Add merges one period's department set into the collection.
func (c *PeriodCollection) Add(set DepartmentSet) {
	seen := false
	for _, p := range c.Periods {
		if p == set.Period {
			seen = true
			break
		}
	}
	if !seen {
		c.Periods = append(c.Periods, set.Period)
	}
	for _, d := range set.Departments {
		byPeriod, ok := c.Departments[d.Department]
		if !ok {
			byPeriod = map[string]Figures{}
			c.Departments[d.Department] = byPeriod
		}
		byPeriod[set.Period] = Figures{
			ThisMonth:        d.ThisMonth,
			FiscalYearToDate: d.FiscalYearToDate,
			PriorPeriod:      d.PriorPeriod,
			BudgetEstimate:   d.BudgetEstimate,
		}
	}
}
