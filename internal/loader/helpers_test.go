package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/papapumpkin/starfolio/internal/config"
	"github.com/papapumpkin/starfolio/internal/content"
)

const testCatalog = `themes:
  - {id: observability, label: Observability}
  - {id: reliability, label: Reliability}
tools:
  - {id: aws, label: AWS, category: cloud}
  - {id: prometheus, label: Prometheus, category: observability}
  - {id: terraform, label: Terraform, category: iac}
`

// companyYAML renders a valid company document. Every project pid gets its
// own problem, solution and impact, named pb-<pid>, sl-<pid> and im-<pid>.
func companyYAML(id string, projects ...string) string {
	var projs, impacts, edges []string
	for _, pid := range projects {
		projs = append(projs, fmt.Sprintf("  - id: %s\n    title: Project %s\n    themes: [reliability]\n"+
			"    problem: {id: pb-%s, statement: The problem statement for %s.}\n"+
			"    solution: {id: sl-%s, statement: The solution statement for %s., tools: [AWS, terraform]}\n"+
			"    impact_ids: [im-%s]\n", pid, pid, pid, pid, pid, pid, pid))
		impacts = append(impacts, fmt.Sprintf("  - {id: im-%s, label: Impact %s, type: reliability}\n", pid, pid))
		edges = append(edges,
			fmt.Sprintf("  - {from: %s, to: %s, rel: owns}\n", id, pid),
			fmt.Sprintf("  - {from: %s, to: pb-%s, rel: has_problem}\n", pid, pid),
			fmt.Sprintf("  - {from: sl-%s, to: im-%s, rel: drives}\n", pid, pid))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "company:\n  id: %s\n  label: %s Inc\n  role: Engineer\n  period: 2020 - 2021\n", id, id)
	writeList(&b, "projects", projs)
	writeList(&b, "impacts", impacts)
	writeList(&b, "edges", edges)
	return b.String()
}

func writeList(b *strings.Builder, key string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(b, "%s: []\n", key)
		return
	}
	fmt.Fprintf(b, "%s:\n", key)
	for _, it := range items {
		b.WriteString(it)
	}
}

// fixture is a content tree laid out in a temp directory.
type fixture struct {
	root string
	cfg  config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		root: root,
		cfg: config.Config{
			DataDir:     filepath.Join(root, "data"),
			ContentDir:  filepath.Join(root, "content"),
			ContentExt:  ".mdx",
			OrderFile:   filepath.Join(root, "portfolio.order.yaml"),
			CatalogFile: "catalog.yaml",
		},
	}
	for _, dir := range []string{f.cfg.DataDir, f.cfg.ContentDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	f.writeData(t, "catalog.yaml", testCatalog)
	return f
}

func (f *fixture) writeData(t *testing.T, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(f.cfg.DataDir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) writeOrder(t *testing.T, body string) {
	t.Helper()
	if err := os.WriteFile(f.cfg.OrderFile, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) writeContent(t *testing.T, slug, body string) {
	t.Helper()
	path := filepath.Join(f.cfg.ContentDir, slug+f.cfg.ContentExt)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) loader() *Loader {
	return New(f.cfg, content.Open(f.cfg.ContentDir, f.cfg.ContentExt), nil)
}
