package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/starfolio/internal/content"
	"github.com/papapumpkin/starfolio/internal/layout"
	"github.com/papapumpkin/starfolio/internal/loader"
	"github.com/papapumpkin/starfolio/internal/portfolio"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write the computed layouts and deep-dive pages as JSON",
	Args:  cobra.NoArgs,
	RunE:  runWithEnv(runBuild),
}

// layoutsJSON is the document written to layouts.json.
type layoutsJSON struct {
	Layouts []layout.StarLayout `json:"layouts"`
	Catalog *portfolio.Catalog  `json:"catalog"`
}

func runBuild(e *env, cmd *cobra.Command, _ []string) error {
	res, err := e.load()
	if err != nil {
		return err
	}
	outDir := e.cfg.OutDir
	if o, _ := cmd.Flags().GetString("out"); o != "" {
		outDir = o
	}
	paths, err := writeBuild(outDir, res, e.store)
	if err != nil {
		e.printer.Error(err)
		return err
	}
	e.record(buildEvent(paths))
	e.printer.BuildDone(paths)
	return nil
}

// writeBuild writes layouts.json and deepdives.json into outDir and returns
// their paths.
func writeBuild(outDir string, res *loader.Result, store *content.Store) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	pages, err := deepDivePages(store, res)
	if err != nil {
		return nil, err
	}

	outputs := []struct {
		name string
		v    any
	}{
		{"layouts.json", layoutsJSON{Layouts: layout.ComputeLayouts(res.Portfolios), Catalog: res.Catalog}},
		{"deepdives.json", pages},
	}

	paths := make([]string, 0, len(outputs))
	for _, o := range outputs {
		data, err := json.MarshalIndent(o.v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", o.name, err)
		}
		path := filepath.Join(outDir, o.name)
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", o.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// deepDivePages builds one page per content document, in slug order.
func deepDivePages(store *content.Store, res *loader.Result) ([]layout.DeepDivePage, error) {
	slugs, err := store.ListSlugs()
	if err != nil {
		return nil, fmt.Errorf("listing deep dives: %w", err)
	}
	pages := make([]layout.DeepDivePage, 0, len(slugs))
	for _, slug := range slugs {
		doc, err := store.GetBySlug(slug)
		if err != nil {
			return nil, fmt.Errorf("reading deep dive %q: %w", slug, err)
		}
		if doc == nil {
			continue
		}
		owner, proj, _ := res.FindProject(slug)
		pages = append(pages, layout.NewDeepDivePage(doc, owner, proj))
	}
	return pages, nil
}

func init() {
	buildCmd.Flags().String("out", "", "output directory (overrides out_dir)")
	rootCmd.AddCommand(buildCmd)
}
