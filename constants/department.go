package constants

import "strings"

// Departments is the enumerated list of entities tracked in the
// "Summary of Receipts and Outlays" table. Department rows are matched by
// literal name anchor, so the list must carry the exact wording used by the
// statements.
var Departments = []string{
	"Legislative Branch",
	"Judicial Branch",
	"Department of Agriculture",
	"Department of Commerce",
	"Department of Defense",
	"Department of Education",
	"Department of Energy",
	"Department of Health and Human Services",
	"Department of Homeland Security",
	"Department of Housing and Urban Development",
	"Department of the Interior",
	"Department of Justice",
	"Department of Labor",
	"Department of State",
	"Department of Transportation",
	"Department of the Treasury",
	"Department of Veterans Affairs",
	"Environmental Protection Agency",
	"Social Security Administration",
	"Other Independent Agencies",
}

// IsDepartment reports whether name matches a known department, ignoring case
// and surrounding whitespace.
func IsDepartment(name string) bool {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, d := range Departments {
		if normalized == strings.ToLower(d) {
			return true
		}
	}
	return false
}
