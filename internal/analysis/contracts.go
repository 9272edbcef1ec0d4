package analysis

import (
	"context"

	"github.com/fiscaldata/mts-tracker/internal/entity"
)

// Analysis types accepted by the API. Anything else gets the general prompt.
const (
	TypeBudgetComparison     = "budget_comparison"
	TypeDepartmentComparison = "department_comparison"
)

// Request carries the comparison data a narrative should be written from.
// Statements feeds the budget prompts, Departments the department prompts;
// either may be nil when the type does not need it.
type Request struct {
	Type        string
	Statements  *entity.StatementComparison
	Departments *entity.DepartmentComparison
}

// Analyzer turns comparison data into narrative text.
type Analyzer interface {
	Generate(ctx context.Context, req Request) (string, error)
}
