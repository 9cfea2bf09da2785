package qagent

// Severity ranks a Finding.
type Severity string

// Severity constants, most severe first.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding categories.
const (
	CategoryFormValidation = "Form Validation"
	CategoryErrorHandling  = "Error Handling"
	CategoryDiscountCode   = "Discount Code"
	CategoryDocumentation  = "Documentation"
)

// Finding is one result of a validation rule.
type Finding struct {
	Category   string   `json:"category"`
	Issue      string   `json:"issue"`
	Suggestion string   `json:"suggestion"`
	Severity   Severity `json:"severity"`
}

// Validator inspects an HTML page against its documentation.
type Validator interface {
	// Validate returns findings in discovery order. It never fails:
	// unparseable HTML produces no findings.
	Validate(html, docs string) []Finding
}

// FindingGroups holds findings bucketed by severity, each bucket in
// discovery order.
type FindingGroups struct {
	Errors   []Finding
	Warnings []Finding
	Infos    []Finding
}

// Empty reports whether there are no findings at all.
func (g FindingGroups) Empty() bool {
	return len(g.Errors) == 0 && len(g.Warnings) == 0 && len(g.Infos) == 0
}

// GroupFindings buckets findings by severity. Findings with an unknown
// severity are treated as info.
func GroupFindings(findings []Finding) FindingGroups {
	var g FindingGroups
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			g.Errors = append(g.Errors, f)
		case SeverityWarning:
			g.Warnings = append(g.Warnings, f)
		default:
			g.Infos = append(g.Infos, f)
		}
	}
	return g
}
