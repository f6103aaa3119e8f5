package portfolio

import (
	"strings"
)

// ContentIndex answers whether a deep-dive document exists for a slug.
type ContentIndex interface {
	Exists(slug string) bool
}

// ValidateAndNormalize runs the semantic validators in order (uniqueness,
// edge integrity, deep dive) and returns the tool-normalized document. The
// first failing validator's error is returned unchanged.
func ValidateAndNormalize(doc *Portfolio, index ContentIndex) (*Portfolio, error) {
	if err := ValidateUniqueness(doc); err != nil {
		return nil, err
	}
	if err := ValidateEdgeIntegrity(doc); err != nil {
		return nil, err
	}
	if err := ValidateDeepDive(doc, index); err != nil {
		return nil, err
	}
	return NormalizeTools(doc), nil
}

// ValidateUniqueness checks that project, impact, problem and solution ids
// are each unique within the document. Id classes are checked in that order
// and the first class with duplicates fails, listing every duplicated id.
func ValidateUniqueness(doc *Portfolio) error {
	projectIDs := make([]string, len(doc.Projects))
	problemIDs := make([]string, len(doc.Projects))
	solutionIDs := make([]string, len(doc.Projects))
	for i, p := range doc.Projects {
		projectIDs[i] = p.ID
		problemIDs[i] = p.Problem.ID
		solutionIDs[i] = p.Solution.ID
	}
	impactIDs := make([]string, len(doc.Impacts))
	for i, imp := range doc.Impacts {
		impactIDs[i] = imp.ID
	}

	checks := []struct {
		rule Rule
		noun string
		ids  []string
	}{
		{RuleDuplicateProjectID, "project", projectIDs},
		{RuleDuplicateImpactID, "impact", impactIDs},
		{RuleDuplicateProblemID, "problem", problemIDs},
		{RuleDuplicateSolutionID, "solution", solutionIDs},
	}
	for _, c := range checks {
		if dupes := findDuplicates(c.ids); len(dupes) > 0 {
			return NewError(c.rule, doc.SourceFile, Details{IDs: dupes},
				"Duplicate %s IDs found: %s", c.noun, strings.Join(dupes, ", "))
		}
	}
	return nil
}

// findDuplicates returns each id that occurs more than once, in the order of
// its second occurrence.
func findDuplicates(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	reported := make(map[string]bool)
	var dupes []string
	for _, id := range ids {
		if seen[id] && !reported[id] {
			dupes = append(dupes, id)
			reported[id] = true
		}
		seen[id] = true
	}
	return dupes
}

// KnownIDs returns every node id an edge may reference: the company id, then
// each project with its problem and solution, then each impact. Order is
// document order with repeats removed.
func KnownIDs(doc *Portfolio) []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	add(doc.Company.ID)
	for _, p := range doc.Projects {
		add(p.ID)
		add(p.Problem.ID)
		add(p.Solution.ID)
	}
	for _, imp := range doc.Impacts {
		add(imp.ID)
	}
	return ids
}

// ValidateEdgeIntegrity checks that every edge endpoint names an entity
// declared in the same document. The first broken edge in document order
// fails, naming the missing endpoint.
func ValidateEdgeIntegrity(doc *Portfolio) error {
	known := KnownIDs(doc)
	valid := toSet(known)

	for _, e := range doc.Edges {
		endpoint, missing := "", ""
		switch {
		case !valid[e.From]:
			endpoint, missing = "from", e.From
		case !valid[e.To]:
			endpoint, missing = "to", e.To
		default:
			continue
		}
		edge := e
		return NewError(RuleBrokenEdge, doc.SourceFile,
			Details{Edge: &edge, Endpoint: endpoint, ID: missing, KnownIDs: known},
			"Edge references unknown '%s' node: %q -> %q (rel: %s)", endpoint, e.From, e.To, e.Rel)
	}
	return nil
}

// ValidateDeepDive checks that every project with deepDive.enabled names a
// slug and that the content index holds a document for it.
func ValidateDeepDive(doc *Portfolio, index ContentIndex) error {
	for _, p := range doc.Projects {
		if !p.DeepDive.Enabled {
			continue
		}
		if strings.TrimSpace(p.DeepDive.Slug) == "" {
			return NewError(RuleMissingDeepDiveSlug, doc.SourceFile, Details{ProjectID: p.ID},
				"Project %q has deepDive.enabled=true but no slug specified", p.ID)
		}
		if index == nil || !index.Exists(p.DeepDive.Slug) {
			return NewError(RuleMissingMDXFile, doc.SourceFile,
				Details{ProjectID: p.ID, Slug: p.DeepDive.Slug},
				"Project %q references deep-dive slug %q but no content document exists for it", p.ID, p.DeepDive.Slug)
		}
	}
	return nil
}

// NormalizeTools returns a copy of doc in which every solution's tools are
// trimmed, lowercased and de-duplicated, keeping first-seen order. doc is
// not modified.
func NormalizeTools(doc *Portfolio) *Portfolio {
	out := doc.Clone()
	for i := range out.Projects {
		out.Projects[i].Solution.Tools = NormalizeToolList(out.Projects[i].Solution.Tools)
	}
	return out
}

// NormalizeToolList trims, lowercases and de-duplicates tools, keeping the
// order of first occurrence.
func NormalizeToolList(tools []string) []string {
	seen := make(map[string]bool, len(tools))
	out := make([]string, 0, len(tools))
	for _, t := range tools {
		n := strings.ToLower(strings.TrimSpace(t))
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
