package analysis

import (
	"encoding/json"
	"strings"
)

// SystemPrompt frames every completion request.
const SystemPrompt = "You are a financial analyst specializing in government budget analysis."

// BuildPrompt renders the user message for a request. The comparison data is
// embedded as JSON so the model sees the exact figures the API serves.
func BuildPrompt(req Request) string {
	switch req.Type {
	case TypeBudgetComparison:
		return budgetComparisonPrompt(req)
	case TypeDepartmentComparison:
		return departmentComparisonPrompt(req)
	default:
		return generalPrompt(req)
	}
}

func budgetComparisonPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("Analyze the following Monthly Treasury Statement comparison data.\n")
	b.WriteString("Cover total receipts, total outlays, and the deficit, and call out ")
	b.WriteString("the categories with the largest changes between the two periods. ")
	b.WriteString("Figures are in millions of dollars.\n\n")
	writeJSONBlock(&b, "Comparison data", req.Statements)
	b.WriteString("\nProvide a concise analysis in 3-4 paragraphs.")
	return b.String()
}

func departmentComparisonPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("Analyze the following department-level spending data from the ")
	b.WriteString("Monthly Treasury Statement. The ratio_percentage field is each ")
	b.WriteString("department's monthly spend as a percentage of its full-year budget ")
	b.WriteString("estimate. Highlight which departments are spending fastest and ")
	b.WriteString("slowest relative to their estimates.\n\n")
	writeJSONBlock(&b, "Department data", req.Departments)
	b.WriteString("\nProvide a concise analysis in 3-4 paragraphs.")
	return b.String()
}

func generalPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("Summarize the following Monthly Treasury Statement data for a ")
	b.WriteString("general audience. Figures are in millions of dollars.\n\n")
	if req.Statements != nil {
		writeJSONBlock(&b, "Budget data", req.Statements)
	}
	if req.Departments != nil {
		writeJSONBlock(&b, "Department data", req.Departments)
	}
	b.WriteString("\nProvide a concise summary in 2-3 paragraphs.")
	return b.String()
}

func writeJSONBlock(b *strings.Builder, label string, v any) {
	if v == nil {
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return
	}
	b.WriteString(label)
	b.WriteString(":\n")
	b.Write(data)
	b.WriteString("\n")
}
