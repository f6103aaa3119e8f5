// Package layout turns a validated portfolio into the lane structure the
// presentation layer renders: one lane per project, carrying its problem,
// solution and merged impacts. Every function here is pure.
package layout

import (
	"strings"

	"github.com/papapumpkin/starfolio/internal/portfolio"
)

// LaneImpact is one impact badge shown at the tail of a lane. Merged badges
// carry a "+"-joined id.
type LaneImpact struct {
	ID      string               `json:"id"`
	Label   string               `json:"label"`
	Type    portfolio.ImpactType `json:"type"`
	Metrics []string             `json:"metrics"`
}

// StarLane is the per-project row: problem, solution, then impacts.
type StarLane struct {
	ProjectID    string       `json:"projectId"`
	ProjectTitle string       `json:"projectTitle"`
	Summary      string       `json:"projectSummary"`
	DeepDiveSlug string       `json:"deepDiveSlug,omitempty"`
	ProblemID    string       `json:"problemId"`
	ProblemText  string       `json:"problemText"`
	SolutionID   string       `json:"solutionId"`
	SolutionText string       `json:"solutionText"`
	Tools        []string     `json:"tools"`
	Themes       []string     `json:"themes"`
	Impacts      []LaneImpact `json:"impacts"`
	// Index is the 0-based lane row.
	Index int `json:"index"`
}

// StarLayout is the computed layout for one company.
type StarLayout struct {
	CompanyID     string             `json:"companyId"`
	CompanyLabel  string             `json:"companyLabel"`
	CompanyRole   string             `json:"companyRole"`
	CompanyPeriod string             `json:"companyPeriod"`
	Lanes         []StarLane         `json:"lanes"`
	AllImpacts    []portfolio.Impact `json:"allImpacts"`
	// ImpactProjectMap indexes impact id to the ids of the projects that
	// reference it, in project order.
	ImpactProjectMap map[string][]string `json:"impactProjectMap"`
}

// ComputeLayout builds the StarLayout for doc. Impact ids that do not
// resolve to an impact in doc are dropped from the lane.
func ComputeLayout(doc *portfolio.Portfolio) StarLayout {
	byID := make(map[string]portfolio.Impact, len(doc.Impacts))
	for _, imp := range doc.Impacts {
		byID[imp.ID] = imp
	}

	impactProjects := make(map[string][]string)
	lanes := make([]StarLane, 0, len(doc.Projects))
	for i, proj := range doc.Projects {
		for _, iid := range proj.ImpactIDs {
			impactProjects[iid] = append(impactProjects[iid], proj.ID)
		}

		resolved := make([]LaneImpact, 0, len(proj.ImpactIDs))
		for _, iid := range proj.ImpactIDs {
			imp, ok := byID[iid]
			if !ok {
				continue
			}
			resolved = append(resolved, LaneImpact{
				ID:      imp.ID,
				Label:   imp.Label,
				Type:    imp.Type,
				Metrics: append([]string{}, imp.Metrics...),
			})
		}

		lane := StarLane{
			ProjectID:    proj.ID,
			ProjectTitle: proj.Title,
			Summary:      projectSummary(proj),
			ProblemID:    proj.Problem.ID,
			ProblemText:  proj.Problem.Statement,
			SolutionID:   proj.Solution.ID,
			SolutionText: proj.Solution.Statement,
			Tools:        append([]string{}, proj.Solution.Tools...),
			Themes:       append([]string{}, proj.Themes...),
			Impacts:      MergeImpactsByType(resolved),
			Index:        i,
		}
		if proj.DeepDive.Enabled {
			lane.DeepDiveSlug = proj.DeepDive.Slug
		}
		lanes = append(lanes, lane)
	}

	return StarLayout{
		CompanyID:        doc.Company.ID,
		CompanyLabel:     doc.Company.Label,
		CompanyRole:      doc.Company.Role,
		CompanyPeriod:    doc.Company.Period,
		Lanes:            lanes,
		AllImpacts:       append([]portfolio.Impact{}, doc.Impacts...),
		ImpactProjectMap: impactProjects,
	}
}

// ComputeLayouts computes a layout per portfolio, preserving order.
func ComputeLayouts(docs []*portfolio.Portfolio) []StarLayout {
	out := make([]StarLayout, 0, len(docs))
	for _, doc := range docs {
		out = append(out, ComputeLayout(doc))
	}
	return out
}

// projectSummary keeps an authored summary verbatim. Blank counts as unset.
func projectSummary(p portfolio.Project) string {
	if strings.TrimSpace(p.Summary) != "" {
		return p.Summary
	}
	return DeriveSummary(p.Solution.Statement)
}

// DeriveSummary returns the first sentence of statement, up to and including
// the first '.', '!' or '?'. Without a terminator the whole statement is
// returned unchanged.
func DeriveSummary(statement string) string {
	if i := strings.IndexAny(statement, ".!?"); i >= 0 {
		return statement[:i+1]
	}
	return statement
}
