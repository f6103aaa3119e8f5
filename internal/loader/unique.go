package loader

import (
	"github.com/papapumpkin/starfolio/internal/portfolio"
)

// ValidateCrossPortfolioUniqueness checks that project, problem, solution
// and impact ids are unique across the whole visible corpus. The error names
// the company that declared the id first and the one that repeated it.
func ValidateCrossPortfolioUniqueness(docs []*portfolio.Portfolio) error {
	projects := newOwnerIndex(portfolio.RuleCrossDuplicateProjectID, "Project")
	problems := newOwnerIndex(portfolio.RuleCrossDuplicateProblemID, "Problem")
	solutions := newOwnerIndex(portfolio.RuleCrossDuplicateSolutionID, "Solution")
	impacts := newOwnerIndex(portfolio.RuleCrossDuplicateImpactID, "Impact")

	for _, doc := range docs {
		for _, p := range doc.Projects {
			if err := projects.claim(p.ID, doc); err != nil {
				return err
			}
			if err := problems.claim(p.Problem.ID, doc); err != nil {
				return err
			}
			if err := solutions.claim(p.Solution.ID, doc); err != nil {
				return err
			}
		}
		for _, imp := range doc.Impacts {
			if err := impacts.claim(imp.ID, doc); err != nil {
				return err
			}
		}
	}
	return nil
}

// ownerIndex records which company first declared each id of one class.
type ownerIndex struct {
	rule   portfolio.Rule
	noun   string
	owners map[string]*portfolio.Portfolio
}

func newOwnerIndex(rule portfolio.Rule, noun string) *ownerIndex {
	return &ownerIndex{rule: rule, noun: noun, owners: make(map[string]*portfolio.Portfolio)}
}

func (x *ownerIndex) claim(id string, doc *portfolio.Portfolio) error {
	prev, ok := x.owners[id]
	if !ok {
		x.owners[id] = doc
		return nil
	}
	return portfolio.NewError(x.rule, doc.SourceFile,
		portfolio.Details{
			ID:        id,
			Companies: []string{prev.Company.ID, doc.Company.ID},
			Files:     []string{prev.SourceFile, doc.SourceFile},
		},
		"%s ID %q exists in both %q and %q", x.noun, id, prev.Company.ID, doc.Company.ID)
}
