package loader

import (
	"fmt"
	"slices"

	"github.com/papapumpkin/starfolio/internal/portfolio"
)

// ValidateOrderConfig checks cfg against the discovered documents. Repeated
// companies or lane entries, and lane entries naming a project the company
// does not have (and that is not hidden), are errors. Companies listed without
// a document and hidden lanes found nowhere are returned as warnings. Lane
// lists for companies without a document are not checked.
func ValidateOrderConfig(cfg *portfolio.OrderConfig, docs []*portfolio.Portfolio) ([]Warning, error) {
	byID := indexByCompany(docs)
	hiddenCompanies := cfg.HiddenCompanies()
	hiddenLanes := cfg.HiddenLanes()

	seen := make(map[string]bool, len(cfg.Companies))
	for _, cid := range cfg.Companies {
		if seen[cid] {
			return nil, portfolio.NewError(portfolio.RuleDuplicateOrderCompany, cfg.SourceFile,
				portfolio.Details{CompanyID: cid},
				"Company ID %q appears multiple times in the companies list", cid)
		}
		seen[cid] = true
	}

	var warnings []Warning
	for _, cid := range cfg.Companies {
		if byID[cid] == nil && !hiddenCompanies[cid] {
			warnings = append(warnings, Warning{
				Code:      CodeUnknownOrderCompany,
				Source:    cfg.SourceFile,
				CompanyID: cid,
				Message:   fmt.Sprintf("company %q is listed but has no document", cid),
			})
		}
	}

	for _, cid := range sortedKeys(cfg.Lanes) {
		doc := byID[cid]
		if doc == nil {
			continue
		}
		known := doc.ProjectIDs()
		knownSet := make(map[string]bool, len(known))
		for _, id := range known {
			knownSet[id] = true
		}

		seenLane := make(map[string]bool)
		for _, pid := range cfg.Lanes[cid] {
			if seenLane[pid] {
				return nil, portfolio.NewError(portfolio.RuleDuplicateOrderLane, cfg.SourceFile,
					portfolio.Details{CompanyID: cid, ProjectID: pid},
					"Project ID %q appears multiple times in lanes.%s", pid, cid)
			}
			seenLane[pid] = true

			if !knownSet[pid] && !hiddenLanes[pid] {
				return nil, portfolio.NewError(portfolio.RuleUnknownLaneInOrder, cfg.SourceFile,
					portfolio.Details{CompanyID: cid, ProjectID: pid, KnownProjects: known},
					"Project ID %q in lanes.%s does not exist in company %q (known: %v)", pid, cid, cid, known)
			}
		}
	}

	for _, pid := range cfg.Hide.Lanes {
		if !anyProject(docs, pid) {
			warnings = append(warnings, Warning{
				Code:      CodeUnknownHiddenLane,
				Source:    cfg.SourceFile,
				ProjectID: pid,
				Message:   fmt.Sprintf("hidden lane %q is not found in any company", pid),
			})
		}
	}
	return warnings, nil
}

// ApplyOrdering returns the visible corpus. Companies listed in cfg come
// first in listed order, then the remaining companies in discovery order;
// hidden companies are dropped. Projects within a company follow the same
// rule using cfg.Lanes. Impacts no visible project references are pruned, and
// an edge survives only if it goes from the company to a visible project or
// starts at a visible project. docs is not modified.
func ApplyOrdering(docs []*portfolio.Portfolio, cfg *portfolio.OrderConfig) []*portfolio.Portfolio {
	byID := indexByCompany(docs)
	hiddenCompanies := cfg.HiddenCompanies()
	hiddenLanes := cfg.HiddenLanes()

	var ids []string
	listed := make(map[string]bool, len(cfg.Companies))
	for _, cid := range cfg.Companies {
		listed[cid] = true
		if byID[cid] != nil && !hiddenCompanies[cid] {
			ids = append(ids, cid)
		}
	}
	for _, doc := range docs {
		cid := doc.Company.ID
		if !listed[cid] && !hiddenCompanies[cid] {
			ids = append(ids, cid)
		}
	}

	out := make([]*portfolio.Portfolio, 0, len(ids))
	for _, cid := range ids {
		out = append(out, orderCompany(byID[cid], cfg.Lanes[cid], hiddenLanes))
	}
	return out
}

func orderCompany(doc *portfolio.Portfolio, laneOrder []string, hiddenLanes map[string]bool) *portfolio.Portfolio {
	src := doc.Clone()

	visible := make(map[string]int)
	for i, p := range src.Projects {
		if !hiddenLanes[p.ID] {
			visible[p.ID] = i
		}
	}

	projects := make([]portfolio.Project, 0, len(visible))
	placed := make(map[string]bool, len(laneOrder))
	for _, pid := range laneOrder {
		if i, ok := visible[pid]; ok && !placed[pid] {
			projects = append(projects, src.Projects[i])
			placed[pid] = true
		}
	}
	for _, p := range src.Projects {
		if _, ok := visible[p.ID]; ok && !placed[p.ID] {
			projects = append(projects, p)
		}
	}

	referenced := make(map[string]bool)
	projectIDs := make(map[string]bool, len(projects))
	for _, p := range projects {
		projectIDs[p.ID] = true
		for _, iid := range p.ImpactIDs {
			referenced[iid] = true
		}
	}

	impacts := make([]portfolio.Impact, 0, len(src.Impacts))
	for _, imp := range src.Impacts {
		if referenced[imp.ID] {
			impacts = append(impacts, imp)
		}
	}

	edges := make([]portfolio.Edge, 0, len(src.Edges))
	for _, e := range src.Edges {
		keep := projectIDs[e.From]
		if e.From == src.Company.ID {
			keep = projectIDs[e.To]
		}
		if keep {
			edges = append(edges, e)
		}
	}

	src.Projects = projects
	src.Impacts = impacts
	src.Edges = edges
	return src
}

func indexByCompany(docs []*portfolio.Portfolio) map[string]*portfolio.Portfolio {
	m := make(map[string]*portfolio.Portfolio, len(docs))
	for _, d := range docs {
		m[d.Company.ID] = d
	}
	return m
}

func anyProject(docs []*portfolio.Portfolio, pid string) bool {
	for _, d := range docs {
		if slices.Contains(d.ProjectIDs(), pid) {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
