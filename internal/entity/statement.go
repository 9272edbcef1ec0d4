package entity

// Metadata identifies one statement's reporting period and document facts.
// Month and Year are either both resolved or both the "Unknown" sentinel.
type Metadata struct {
	Filename  string `json:"filename"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Month     string `json:"month"`
	Year      string `json:"year"`
	PageCount int    `json:"page_count"`
}

// Period renders the human-readable period label, e.g. "February 2024".
func (m Metadata) Period() string {
	return m.Month + " " + m.Year
}

// CategoryRecord is one parsed table row. ThisPeriod and FiscalYearToDate are
// always present; PriorPeriod and BudgetEstimate are nil when the matched
// table variant did not carry those columns. Records are immutable once
// created by the classifier.
type CategoryRecord struct {
	Category         string   `json:"category"`
	ThisPeriod       float64  `json:"this_period"`
	FiscalYearToDate float64  `json:"fiscal_year_to_date"`
	PriorPeriod      *float64 `json:"prior_period,omitempty"`
	BudgetEstimate   *float64 `json:"budget_estimate,omitempty"`
}

// Sections holds the two ordered row lists of the summary table.
type Sections struct {
	Receipts []CategoryRecord `json:"receipts"`
	Outlays  []CategoryRecord `json:"outlays"`
}

// StatementDocument is one source document's extraction result, persisted as
// an immutable snapshot; re-running the pipeline supersedes it wholesale.
type StatementDocument struct {
	Metadata Metadata `json:"metadata"`
	Sections Sections `json:"sections"`
	// Unparsable marks a document where no extraction strategy yielded
	// data; Placeholder marks canned rows emitted in that case when the
	// deployment asked for them. Never both silently.
	Unparsable  bool `json:"unparsable,omitempty"`
	Placeholder bool `json:"placeholder,omitempty"`
}

// TotalReceipts returns the this-period value of the "Total Receipts" row,
// falling back to the first receipts row when the total line was not
// recovered.
func (d *StatementDocument) TotalReceipts() float64 {
	return totalOrFirst(d.Sections.Receipts, "Total Receipts")
}

// TotalOutlays mirrors TotalReceipts for the outlays section.
func (d *StatementDocument) TotalOutlays() float64 {
	return totalOrFirst(d.Sections.Outlays, "Total Outlays")
}

func totalOrFirst(records []CategoryRecord, total string) float64 {
	for _, r := range records {
		if r.Category == total {
			return r.ThisPeriod
		}
	}
	if len(records) > 0 {
		return records[0].ThisPeriod
	}
	return 0
}
