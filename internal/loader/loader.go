// Package loader discovers the company documents, the catalog and the order
// config, validates each, and aggregates them into the ordered, filtered
// corpus the layout engine consumes.
//
// A load is fail-fast: the first invalid document, edge or order entry aborts
// it with a *portfolio.ValidationError. Soft findings are returned as
// Warnings and logged.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/papapumpkin/starfolio/internal/config"
	"github.com/papapumpkin/starfolio/internal/logging"
	"github.com/papapumpkin/starfolio/internal/portfolio"
)

// Loader reads one content tree. Construct it with New.
type Loader struct {
	DataDir       string
	CatalogFile   string
	OrderPath     string
	Exclude       []string
	StrictCatalog bool
	Content       portfolio.ContentIndex
	Logger        *zap.Logger

	parser *portfolio.Parser
}

// New creates a Loader for the directories named in cfg. index is consulted
// for deep-dive existence checks; logger may be nil.
func New(cfg config.Config, index portfolio.ContentIndex, logger *zap.Logger) *Loader {
	return &Loader{
		DataDir:       cfg.DataDir,
		CatalogFile:   cfg.CatalogFile,
		OrderPath:     cfg.OrderFile,
		Exclude:       slices.Clone(cfg.Exclude),
		StrictCatalog: cfg.StrictCatalog,
		Content:       index,
		Logger:        logging.OrNop(logger),
		parser:        portfolio.NewParser(),
	}
}

// Discover returns the company document filenames in DataDir, sorted. The
// catalog, the order file and any excluded names are skipped.
func (l *Loader) Discover() ([]string, error) {
	entries, err := os.ReadDir(l.DataDir)
	if err != nil {
		return nil, fmt.Errorf("reading data directory: %w", err)
	}

	reserved := map[string]bool{l.CatalogFile: true}
	for _, name := range l.Exclude {
		reserved[name] = true
	}
	orderPath := filepath.Clean(l.OrderPath)

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !IsDocument(name) || reserved[name] {
			continue
		}
		if l.OrderPath != "" && filepath.Clean(filepath.Join(l.DataDir, name)) == orderPath {
			continue
		}
		names = append(names, name)
	}
	// os.ReadDir already sorts by name; keep the guarantee explicit.
	slices.Sort(names)
	return names, nil
}

// IsDocument reports whether name has a YAML extension.
func IsDocument(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// LoadCatalog reads and validates the catalog document.
func (l *Loader) LoadCatalog() (*portfolio.Catalog, error) {
	data, err := os.ReadFile(filepath.Join(l.DataDir, l.CatalogFile))
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return l.parser.ParseCatalog(data, l.CatalogFile)
}

// LoadPortfolio reads one company document from DataDir and runs the full
// per-document validation chain.
func (l *Loader) LoadPortfolio(name string) (*portfolio.Portfolio, error) {
	data, err := os.ReadFile(filepath.Join(l.DataDir, name))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return l.parser.ParsePortfolio(data, name, l.Content)
}

// LoadPortfolios loads every discovered document, in discovery order. Two
// documents declaring the same company id fail with DUPLICATE_COMPANY_ID.
func (l *Loader) LoadPortfolios() ([]*portfolio.Portfolio, error) {
	names, err := l.Discover()
	if err != nil {
		return nil, err
	}

	docs := make([]*portfolio.Portfolio, 0, len(names))
	fileFor := make(map[string]string, len(names))
	for _, name := range names {
		doc, err := l.LoadPortfolio(name)
		if err != nil {
			return nil, err
		}
		id := doc.Company.ID
		if prev, ok := fileFor[id]; ok {
			return nil, portfolio.NewError(portfolio.RuleDuplicateCompanyID, name,
				portfolio.Details{ID: id, Files: []string{prev, name}},
				"Company ID %q is declared by both %q and %q", id, prev, name)
		}
		fileFor[id] = name
		l.Logger.Debug("loaded portfolio",
			zap.String("file", name),
			zap.String("company", id),
			zap.Int("projects", len(doc.Projects)))
		docs = append(docs, doc)
	}
	return docs, nil
}

// LoadOrderConfig reads the order config. A missing file is not an error:
// the default configuration is returned.
func (l *Loader) LoadOrderConfig() (*portfolio.OrderConfig, error) {
	if l.OrderPath == "" {
		return portfolio.DefaultOrderConfig(), nil
	}
	data, err := os.ReadFile(l.OrderPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.Logger.Debug("no order config, using discovery order", zap.String("path", l.OrderPath))
			return portfolio.DefaultOrderConfig(), nil
		}
		return nil, fmt.Errorf("reading order config: %w", err)
	}
	return l.parser.ParseOrderConfig(data, filepath.Base(l.OrderPath))
}

// Result is the output of a complete load.
type Result struct {
	// Portfolios is the ordered, filtered corpus.
	Portfolios []*portfolio.Portfolio
	Catalog    *portfolio.Catalog
	Order      *portfolio.OrderConfig
	// Discovered holds every loaded document before ordering and hiding,
	// in discovery order.
	Discovered []*portfolio.Portfolio
	Warnings   []Warning
}

// LoadAll runs the whole pipeline: catalog, documents, order config
// validation, ordering and filtering, then corpus-wide uniqueness. When
// StrictCatalog is set, catalog membership is enforced as well.
func (l *Loader) LoadAll() (*Result, error) {
	catalog, err := l.LoadCatalog()
	if err != nil {
		return nil, err
	}
	docs, err := l.LoadPortfolios()
	if err != nil {
		return nil, err
	}
	order, err := l.LoadOrderConfig()
	if err != nil {
		return nil, err
	}
	warnings, err := ValidateOrderConfig(order, docs)
	if err != nil {
		return nil, err
	}

	visible := ApplyOrdering(docs, order)
	if err := ValidateCrossPortfolioUniqueness(visible); err != nil {
		return nil, err
	}

	if l.StrictCatalog {
		if err := membershipError(catalog, LintMembership(visible, catalog)); err != nil {
			return nil, err
		}
	}

	logWarnings(l.Logger, warnings)
	l.Logger.Info("portfolios loaded",
		zap.Int("discovered", len(docs)),
		zap.Int("visible", len(visible)),
		zap.Int("warnings", len(warnings)))

	return &Result{
		Portfolios: visible,
		Catalog:    catalog,
		Order:      order,
		Discovered: docs,
		Warnings:   warnings,
	}, nil
}

// FindProject locates the visible project whose deep-dive slug or id equals
// slug. ok is false when no project claims it.
func (r *Result) FindProject(slug string) (owner *portfolio.Portfolio, proj *portfolio.Project, ok bool) {
	for _, p := range r.Portfolios {
		for i := range p.Projects {
			pr := &p.Projects[i]
			if pr.DeepDive.Slug == slug || pr.ID == slug {
				return p, pr, true
			}
		}
	}
	return nil, nil, false
}

// Lint runs every consistency check over the result: catalog hygiene,
// catalog membership of the visible corpus, and order config coverage of
// the discovered documents.
func (r *Result) Lint() []Warning {
	var out []Warning
	out = append(out, LintCatalog(r.Catalog)...)
	out = append(out, LintMembership(r.Portfolios, r.Catalog)...)
	out = append(out, LintOrder(r.Discovered, r.Order)...)
	return out
}
