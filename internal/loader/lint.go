package loader

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/papapumpkin/starfolio/internal/portfolio"
)

// Code identifies a kind of soft finding.
type Code string

// Warning codes.
const (
	CodeUnknownOrderCompany Code = "UNKNOWN_ORDER_COMPANY"
	CodeUnknownHiddenLane   Code = "UNKNOWN_HIDDEN_LANE"

	CodeCatalogDuplicateTool  Code = "CATALOG_DUPLICATE_TOOL"
	CodeCatalogUnsortedTools  Code = "CATALOG_UNSORTED_TOOLS"
	CodeCatalogDuplicateTheme Code = "CATALOG_DUPLICATE_THEME"

	CodeUnknownTool  Code = "UNKNOWN_TOOL"
	CodeUnknownTheme Code = "UNKNOWN_THEME"

	CodeUntrackedCompany       Code = "UNTRACKED_COMPANY"
	CodeUntrackedLane          Code = "UNTRACKED_LANE"
	CodeListedAndHiddenCompany Code = "LISTED_AND_HIDDEN_COMPANY"
	CodeUnknownLaneCompany     Code = "UNKNOWN_LANE_COMPANY"
)

// Warning is a finding that does not abort a load.
type Warning struct {
	Code      Code   `yaml:"code" json:"code"`
	Source    string `yaml:"source,omitempty" json:"source,omitempty"`
	Message   string `yaml:"message" json:"message"`
	CompanyID string `yaml:"company_id,omitempty" json:"company_id,omitempty"`
	ProjectID string `yaml:"project_id,omitempty" json:"project_id,omitempty"`
	ID        string `yaml:"id,omitempty" json:"id,omitempty"`
}

func (w Warning) fields() []zap.Field {
	fields := []zap.Field{zap.String("code", string(w.Code))}
	if w.Source != "" {
		fields = append(fields, zap.String("source", w.Source))
	}
	if w.CompanyID != "" {
		fields = append(fields, zap.String("company", w.CompanyID))
	}
	if w.ProjectID != "" {
		fields = append(fields, zap.String("project", w.ProjectID))
	}
	if w.ID != "" {
		fields = append(fields, zap.String("id", w.ID))
	}
	return fields
}

func logWarnings(logger *zap.Logger, warnings []Warning) {
	for _, w := range warnings {
		logger.Warn(w.Message, w.fields()...)
	}
}

// LintCatalog reports duplicate tool ids, tools not sorted by id, and
// duplicate theme ids. Tool order follows English collation, so "aws"
// sorts before "Zoom".
func LintCatalog(c *portfolio.Catalog) []Warning {
	var out []Warning
	coll := collate.New(language.English)
	seenTools := make(map[string]bool, len(c.Tools))
	for i, t := range c.Tools {
		if seenTools[t.ID] {
			out = append(out, Warning{
				Code: CodeCatalogDuplicateTool, Source: c.SourceFile, ID: t.ID,
				Message: fmt.Sprintf("tool %q is declared more than once", t.ID),
			})
		}
		seenTools[t.ID] = true
		if i > 0 && coll.CompareString(c.Tools[i-1].ID, t.ID) > 0 {
			out = append(out, Warning{
				Code: CodeCatalogUnsortedTools, Source: c.SourceFile, ID: t.ID,
				Message: fmt.Sprintf("tool %q is out of order after %q", t.ID, c.Tools[i-1].ID),
			})
		}
	}

	seenThemes := make(map[string]bool, len(c.Themes))
	for _, th := range c.Themes {
		if seenThemes[th.ID] {
			out = append(out, Warning{
				Code: CodeCatalogDuplicateTheme, Source: c.SourceFile, ID: th.ID,
				Message: fmt.Sprintf("theme %q is declared more than once", th.ID),
			})
		}
		seenThemes[th.ID] = true
	}
	return out
}

// LintMembership reports project themes and solution tools that the catalog
// does not declare.
func LintMembership(docs []*portfolio.Portfolio, c *portfolio.Catalog) []Warning {
	tools := c.ToolIDs()
	themes := c.ThemeIDs()

	var out []Warning
	for _, doc := range docs {
		for _, p := range doc.Projects {
			for _, th := range p.Themes {
				if !themes[th] {
					out = append(out, Warning{
						Code: CodeUnknownTheme, Source: doc.SourceFile,
						CompanyID: doc.Company.ID, ProjectID: p.ID, ID: th,
						Message: fmt.Sprintf("project %q uses theme %q, which is not in the catalog", p.ID, th),
					})
				}
			}
			for _, tool := range p.Solution.Tools {
				if !tools[tool] {
					out = append(out, Warning{
						Code: CodeUnknownTool, Source: doc.SourceFile,
						CompanyID: doc.Company.ID, ProjectID: p.ID, ID: tool,
						Message: fmt.Sprintf("project %q uses tool %q, which is not in the catalog", p.ID, tool),
					})
				}
			}
		}
	}
	return out
}

func membershipError(c *portfolio.Catalog, findings []Warning) error {
	if len(findings) == 0 {
		return nil
	}
	lines := make([]string, len(findings))
	ids := make([]string, 0, len(findings))
	seen := make(map[string]bool)
	for i, f := range findings {
		lines[i] = f.Message
		if !seen[f.ID] {
			seen[f.ID] = true
			ids = append(ids, f.ID)
		}
	}
	return portfolio.NewError(portfolio.RuleCatalogMembership, c.SourceFile,
		portfolio.Details{IDs: ids, Violations: lines},
		"%d reference(s) missing from the catalog: %s", len(findings), strings.Join(ids, ", "))
}

// LintOrder reports gaps in the order config's coverage of the discovered
// documents: companies neither listed nor hidden, projects missing from their
// company's lane list, companies both listed and hidden, and non-empty lane
// lists for companies without a document.
func LintOrder(docs []*portfolio.Portfolio, cfg *portfolio.OrderConfig) []Warning {
	byID := indexByCompany(docs)
	hiddenCompanies := cfg.HiddenCompanies()
	hiddenLanes := cfg.HiddenLanes()
	listed := make(map[string]bool, len(cfg.Companies))
	for _, cid := range cfg.Companies {
		listed[cid] = true
	}

	var out []Warning
	for _, doc := range docs {
		cid := doc.Company.ID
		if !listed[cid] && !hiddenCompanies[cid] {
			out = append(out, Warning{
				Code: CodeUntrackedCompany, Source: doc.SourceFile, CompanyID: cid,
				Message: fmt.Sprintf("company %q is neither listed nor hidden in the order config", cid),
			})
		}
	}

	for _, cid := range sortedKeys(cfg.Lanes) {
		lanes := cfg.Lanes[cid]
		if len(lanes) == 0 {
			continue
		}
		doc := byID[cid]
		if doc == nil {
			out = append(out, Warning{
				Code: CodeUnknownLaneCompany, Source: cfg.SourceFile, CompanyID: cid,
				Message: fmt.Sprintf("lanes.%s orders projects for a company with no document", cid),
			})
			continue
		}
		inOrder := make(map[string]bool, len(lanes))
		for _, pid := range lanes {
			inOrder[pid] = true
		}
		for _, pid := range doc.ProjectIDs() {
			if !inOrder[pid] && !hiddenLanes[pid] {
				out = append(out, Warning{
					Code: CodeUntrackedLane, Source: doc.SourceFile, CompanyID: cid, ProjectID: pid,
					Message: fmt.Sprintf("project %q is missing from lanes.%s and hide.lanes", pid, cid),
				})
			}
		}
	}

	for _, cid := range cfg.Companies {
		if hiddenCompanies[cid] {
			out = append(out, Warning{
				Code: CodeListedAndHiddenCompany, Source: cfg.SourceFile, CompanyID: cid,
				Message: fmt.Sprintf("company %q is both listed and hidden", cid),
			})
		}
	}
	return out
}
