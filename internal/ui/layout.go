package ui

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/starfolio/internal/layout"
)

// Layout prints one company's lanes: problem, solution, tools and impact
// badges grouped by type.
func (p *Printer) Layout(l layout.StarLayout) {
	fmt.Fprintf(p.w, "%s %s\n", p.s.title.Render(l.CompanyLabel),
		p.s.muted.Render(fmt.Sprintf("%s · %s · %s", l.CompanyID, l.CompanyRole, l.CompanyPeriod)))

	if len(l.Lanes) == 0 {
		fmt.Fprintln(p.w, p.s.muted.Render("  (no visible projects)"))
		return
	}
	for _, lane := range l.Lanes {
		p.lane(lane)
	}
}

func (p *Printer) lane(lane layout.StarLane) {
	title := fmt.Sprintf("%s %d. %s", iconLane, lane.Index+1, lane.ProjectTitle)
	fmt.Fprintf(p.w, "\n  %s %s\n", p.s.title.Render(title), p.s.id.Render("["+lane.ProjectID+"]"))
	if lane.DeepDiveSlug != "" {
		fmt.Fprintf(p.w, "    %s %s\n", p.s.muted.Render("deep dive:"), lane.DeepDiveSlug)
	}
	fmt.Fprintf(p.w, "    %s\n", lane.Summary)
	fmt.Fprintf(p.w, "    %s %s\n", p.s.muted.Render("problem: "), lane.ProblemText)
	fmt.Fprintf(p.w, "    %s %s\n", p.s.muted.Render("solution:"), lane.SolutionText)
	if len(lane.Tools) > 0 {
		fmt.Fprintf(p.w, "    %s %s\n", p.s.muted.Render("tools:   "), strings.Join(lane.Tools, ", "))
	}

	for _, g := range layout.GroupImpactsByType(lane.Impacts) {
		for _, imp := range g.Impacts {
			line := fmt.Sprintf("    %s %s", p.s.ok.Render(iconArrow+" "+string(g.Type)), imp.Label)
			if len(imp.Metrics) > 0 {
				line += " " + p.s.muted.Render("("+strings.Join(imp.Metrics, ", ")+")")
			}
			fmt.Fprintln(p.w, line)
		}
	}
}
