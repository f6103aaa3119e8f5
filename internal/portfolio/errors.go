package portfolio

import (
	"errors"
	"fmt"
)

// Sentinel errors for portfolio validation. Every ValidationError unwraps to
// exactly one of these.
var (
	// ErrStructural indicates a document does not match the schema shape.
	ErrStructural = errors.New("schema violation")
	// ErrDuplicateID indicates an id is declared twice within one document.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrCrossDuplicateID indicates an id is declared by two companies.
	ErrCrossDuplicateID = errors.New("id declared by more than one company")
	// ErrBrokenEdge indicates an edge endpoint does not resolve.
	ErrBrokenEdge = errors.New("edge references unknown node")
	// ErrDeepDive indicates a project advertises deep-dive content that cannot be located.
	ErrDeepDive = errors.New("deep dive content unavailable")
	// ErrOrderConfig indicates the order config is internally inconsistent.
	ErrOrderConfig = errors.New("inconsistent order config")
	// ErrUnknownLane indicates a lane ordering names a project its company does not have.
	ErrUnknownLane = errors.New("lane order references unknown project")
	// ErrCatalog indicates a project references a tool or theme missing from the catalog.
	ErrCatalog = errors.New("catalog membership violation")
)

// Rule is the machine-readable identifier of a failed validation.
type Rule string

// Validation rules.
const (
	RuleSchema Rule = "SCHEMA"

	RuleDuplicateProjectID  Rule = "DUPLICATE_PROJECT_ID"
	RuleDuplicateImpactID   Rule = "DUPLICATE_IMPACT_ID"
	RuleDuplicateProblemID  Rule = "DUPLICATE_PROBLEM_ID"
	RuleDuplicateSolutionID Rule = "DUPLICATE_SOLUTION_ID"
	RuleDuplicateCompanyID  Rule = "DUPLICATE_COMPANY_ID"

	RuleCrossDuplicateProjectID  Rule = "CROSS_DUPLICATE_PROJECT_ID"
	RuleCrossDuplicateImpactID   Rule = "CROSS_DUPLICATE_IMPACT_ID"
	RuleCrossDuplicateProblemID  Rule = "CROSS_DUPLICATE_PROBLEM_ID"
	RuleCrossDuplicateSolutionID Rule = "CROSS_DUPLICATE_SOLUTION_ID"

	RuleBrokenEdge          Rule = "BROKEN_EDGE"
	RuleMissingDeepDiveSlug Rule = "MISSING_DEEPDIVE_SLUG"
	RuleMissingMDXFile      Rule = "MISSING_MDX_FILE"

	RuleDuplicateOrderCompany Rule = "DUPLICATE_ORDER_COMPANY"
	RuleDuplicateOrderLane    Rule = "DUPLICATE_ORDER_LANE"
	RuleUnknownLaneInOrder    Rule = "UNKNOWN_LANE_IN_ORDER"

	RuleCatalogMembership Rule = "CATALOG_MEMBERSHIP"
)

// sentinel maps a rule to its category error.
func (r Rule) sentinel() error {
	switch r {
	case RuleSchema:
		return ErrStructural
	case RuleDuplicateProjectID, RuleDuplicateImpactID, RuleDuplicateProblemID,
		RuleDuplicateSolutionID, RuleDuplicateCompanyID:
		return ErrDuplicateID
	case RuleCrossDuplicateProjectID, RuleCrossDuplicateImpactID,
		RuleCrossDuplicateProblemID, RuleCrossDuplicateSolutionID:
		return ErrCrossDuplicateID
	case RuleBrokenEdge:
		return ErrBrokenEdge
	case RuleMissingDeepDiveSlug, RuleMissingMDXFile:
		return ErrDeepDive
	case RuleDuplicateOrderCompany, RuleDuplicateOrderLane:
		return ErrOrderConfig
	case RuleUnknownLaneInOrder:
		return ErrUnknownLane
	case RuleCatalogMembership:
		return ErrCatalog
	default:
		return ErrStructural
	}
}

// Details is the structured payload attached to a ValidationError. Only the
// fields relevant to the rule are set.
type Details struct {
	IDs           []string `yaml:"ids,omitempty" json:"ids,omitempty"`
	ID            string   `yaml:"id,omitempty" json:"id,omitempty"`
	Companies     []string `yaml:"companies,omitempty" json:"companies,omitempty"`
	Files         []string `yaml:"files,omitempty" json:"files,omitempty"`
	Edge          *Edge    `yaml:"edge,omitempty" json:"edge,omitempty"`
	Endpoint      string   `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	KnownIDs      []string `yaml:"known_ids,omitempty" json:"known_ids,omitempty"`
	CompanyID     string   `yaml:"company_id,omitempty" json:"company_id,omitempty"`
	ProjectID     string   `yaml:"project_id,omitempty" json:"project_id,omitempty"`
	KnownProjects []string `yaml:"known_projects,omitempty" json:"known_projects,omitempty"`
	Slug          string   `yaml:"slug,omitempty" json:"slug,omitempty"`
	Field         string   `yaml:"field,omitempty" json:"field,omitempty"`
	Violations    []string `yaml:"violations,omitempty" json:"violations,omitempty"`
}

// ValidationError records a failed validation rule with source context.
type ValidationError struct {
	Rule       Rule
	SourceFile string
	Message    string
	Details    Details
	Err        error
}

// Error renders "<source>: [RULE] message".
func (e *ValidationError) Error() string {
	msg := "[" + string(e.Rule) + "] " + e.Message
	if e.SourceFile != "" {
		return e.SourceFile + ": " + msg
	}
	return msg
}

// Unwrap returns the category sentinel for use with errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewError builds a ValidationError whose Err is the rule's sentinel.
func NewError(rule Rule, source string, details Details, format string, args ...any) *ValidationError {
	return &ValidationError{
		Rule:       rule,
		SourceFile: source,
		Message:    fmt.Sprintf(format, args...),
		Details:    details,
		Err:        rule.sentinel(),
	}
}

// RuleOf returns the rule of err if it is (or wraps) a ValidationError.
func RuleOf(err error) (Rule, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Rule, true
	}
	return "", false
}
