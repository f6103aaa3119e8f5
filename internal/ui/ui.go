package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/papapumpkin/starfolio/internal/layout"
	"github.com/papapumpkin/starfolio/internal/loader"
	"github.com/papapumpkin/starfolio/internal/portfolio"
)

// UI is the reporting surface the commands write to.
type UI interface {
	Info(msg string)
	Error(err error)
	LoadSummary(res *loader.Result)
	Warnings(ws []loader.Warning)
	Layout(l layout.StarLayout)
	Slugs(rows []SlugOwner)
	BuildDone(paths []string)
	Reloaded(res *loader.Result, err error)
}

// SlugOwner pairs a deep-dive slug with the project that claims it. Both ids
// are empty for an unclaimed document.
type SlugOwner struct {
	Slug      string
	CompanyID string
	ProjectID string
}

// Printer renders reports with lipgloss styles.
type Printer struct {
	w io.Writer
	s styles
}

var _ UI = (*Printer)(nil)

// NewWriter returns a Printer writing to w. Colors are enabled only when w is
// a terminal.
func NewWriter(w io.Writer) *Printer {
	return &Printer{w: w, s: newStyles(lipgloss.NewRenderer(w))}
}

// Info prints a muted informational line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, p.s.muted.Render(msg))
}

// Error prints err. A validation error is shown with its rule, source,
// message and details so authors can fix the document without reading code.
func (p *Printer) Error(err error) {
	var ve *portfolio.ValidationError
	if !errors.As(err, &ve) {
		fmt.Fprintf(p.w, "%s %s\n", p.s.fail.Render(iconFailed+" error:"), err)
		return
	}

	header := p.s.fail.Render(iconFailed+" validation failed") + " " + p.s.rule.Render(string(ve.Rule))
	fmt.Fprintln(p.w, header)
	if ve.SourceFile != "" {
		fmt.Fprintf(p.w, "  %s %s\n", p.s.muted.Render("source:"), ve.SourceFile)
	}
	fmt.Fprintf(p.w, "  %s %s\n", p.s.muted.Render("message:"), ve.Message)

	details, mErr := yaml.Marshal(ve.Details)
	if mErr != nil || strings.TrimSpace(string(details)) == "{}" {
		return
	}
	fmt.Fprintf(p.w, "  %s\n", p.s.muted.Render("details:"))
	for _, line := range strings.Split(strings.TrimRight(string(details), "\n"), "\n") {
		fmt.Fprintf(p.w, "    %s\n", line)
	}
}

// LoadSummary prints counts for a successful load.
func (p *Printer) LoadSummary(res *loader.Result) {
	var projects, impacts int
	for _, doc := range res.Portfolios {
		projects += len(doc.Projects)
		impacts += len(doc.Impacts)
	}
	hidden := len(res.Discovered) - len(res.Portfolios)

	fmt.Fprintf(p.w, "%s %d companies, %d projects, %d impacts\n",
		p.s.ok.Render(iconDone+" portfolio valid:"), len(res.Portfolios), projects, impacts)
	if hidden > 0 {
		fmt.Fprintf(p.w, "  %s\n", p.s.muted.Render(fmt.Sprintf("%d hidden company document(s)", hidden)))
	}
	if res.Catalog != nil {
		fmt.Fprintf(p.w, "  %s\n", p.s.muted.Render(fmt.Sprintf("catalog: %d themes, %d tools",
			len(res.Catalog.Themes), len(res.Catalog.Tools))))
	}
	for _, doc := range res.Portfolios {
		fmt.Fprintf(p.w, "  %s %s %s\n", p.s.id.Render(doc.Company.ID),
			p.s.muted.Render(iconArrow), strings.Join(doc.ProjectIDs(), ", "))
	}
}

// Warnings prints soft findings, one per line.
func (p *Printer) Warnings(ws []loader.Warning) {
	if len(ws) == 0 {
		fmt.Fprintln(p.w, p.s.ok.Render(iconDone+" no warnings"))
		return
	}
	fmt.Fprintln(p.w, p.s.warn.Render(fmt.Sprintf("%s %d warning(s)", iconWarn, len(ws))))
	for _, w := range ws {
		line := fmt.Sprintf("  %s %s", p.s.warn.Render(string(w.Code)), w.Message)
		if w.Source != "" {
			line += " " + p.s.muted.Render("("+w.Source+")")
		}
		fmt.Fprintln(p.w, line)
	}
}

// Slugs lists deep-dive documents and their owners.
func (p *Printer) Slugs(rows []SlugOwner) {
	if len(rows) == 0 {
		fmt.Fprintln(p.w, p.s.muted.Render("(no deep-dive documents)"))
		return
	}
	width := 0
	for _, r := range rows {
		width = max(width, len(r.Slug))
	}
	for _, r := range rows {
		owner := p.s.muted.Render("(unclaimed)")
		if r.ProjectID != "" {
			owner = r.CompanyID + "/" + r.ProjectID
		}
		fmt.Fprintf(p.w, "  %s  %s\n", p.s.id.Render(fmt.Sprintf("%-*s", width, r.Slug)), owner)
	}
}

// BuildDone reports the files a build wrote.
func (p *Printer) BuildDone(paths []string) {
	fmt.Fprintln(p.w, p.s.ok.Render(fmt.Sprintf("%s wrote %d file(s)", iconDone, len(paths))))
	for _, path := range paths {
		fmt.Fprintf(p.w, "  %s\n", path)
	}
}

// Reloaded reports the outcome of a watch-triggered reload. On failure the
// previous snapshot stays live, which the message says.
func (p *Printer) Reloaded(res *loader.Result, err error) {
	if err != nil {
		p.Error(err)
		fmt.Fprintln(p.w, p.s.muted.Render("  keeping previous snapshot"))
		return
	}
	p.LoadSummary(res)
}
