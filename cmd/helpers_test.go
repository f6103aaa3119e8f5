package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/papapumpkin/starfolio/internal/config"
	"github.com/papapumpkin/starfolio/internal/ui"
)

const testCatalog = `themes:
  - {id: reliability, label: Reliability}
tools:
  - {id: aws, label: AWS, category: cloud}
`

const acmeDoc = `company: {id: acme, label: Acme Corp, role: SRE, period: 2021 - 2024}
projects:
  - id: prj-dash
    title: Dashboards
    problem: {id: pb-dash, statement: Nobody could see the fleet.}
    solution: {id: sl-dash, statement: Built one dashboard per service., tools: [AWS]}
    impact_ids: [im-dash]
    deepDive: {enabled: true, slug: dashboards}
impacts:
  - {id: im-dash, label: Visibility, type: observability, metrics: ["MTTD -50%"]}
edges:
  - {from: acme, to: prj-dash, rel: owns}
`

const globexDoc = `company: {id: globex, label: Globex, role: Engineer, period: 2019 - 2021}
projects:
  - id: prj-ci
    title: CI rebuild
    problem: {id: pb-ci, statement: Builds took an hour.}
    solution: {id: sl-ci, statement: Cached every layer.}
    impact_ids: [im-ci]
impacts:
  - {id: im-ci, label: Speed, type: reliability}
edges: []
`

// newTestEnv lays out a two-company tree with one claimed and one orphan
// deep dive, and returns an env printing into out.
func newTestEnv(t *testing.T, out *bytes.Buffer) *env {
	t.Helper()
	root := t.TempDir()
	cfg := config.Config{
		DataDir:     filepath.Join(root, "data"),
		ContentDir:  filepath.Join(root, "content"),
		ContentExt:  ".mdx",
		OrderFile:   filepath.Join(root, "portfolio.order.yaml"),
		CatalogFile: "catalog.yaml",
		OutDir:      filepath.Join(root, "out"),
	}
	files := map[string]string{
		filepath.Join(cfg.DataDir, "catalog.yaml"):      testCatalog,
		filepath.Join(cfg.DataDir, "acme.yaml"):         acmeDoc,
		filepath.Join(cfg.DataDir, "globex.yaml"):       globexDoc,
		filepath.Join(cfg.ContentDir, "dashboards.mdx"): "---\ntitle: Fleet dashboards\ntools: [Grafana]\n---\nBody text.\n",
		filepath.Join(cfg.ContentDir, "scratch.mdx"):    "Just notes.\n",
		cfg.OrderFile: "version: 1\ncompanies: [globex, acme]\n",
	}
	for path, body := range files {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return buildEnv(cfg, zap.NewNop(), ui.NewWriter(out))
}
