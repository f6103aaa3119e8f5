package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/starfolio/internal/content"
	"github.com/papapumpkin/starfolio/internal/loader"
	"github.com/papapumpkin/starfolio/internal/ui"
)

var slugsCmd = &cobra.Command{
	Use:   "slugs",
	Short: "List deep-dive documents and the project that owns each",
	Args:  cobra.NoArgs,
	RunE:  runWithEnv(runSlugs),
}

func runSlugs(e *env, _ *cobra.Command, _ []string) error {
	res, err := e.load()
	if err != nil {
		return err
	}
	rows, err := slugOwners(e.store, res)
	if err != nil {
		return err
	}
	e.printer.Slugs(rows)
	return nil
}

// slugOwners resolves every content slug to its owning project.
func slugOwners(store *content.Store, res *loader.Result) ([]ui.SlugOwner, error) {
	slugs, err := store.ListSlugs()
	if err != nil {
		return nil, fmt.Errorf("listing deep dives: %w", err)
	}
	rows := make([]ui.SlugOwner, 0, len(slugs))
	for _, slug := range slugs {
		row := ui.SlugOwner{Slug: slug}
		if owner, proj, ok := res.FindProject(slug); ok {
			row.CompanyID = owner.Company.ID
			row.ProjectID = proj.ID
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func init() {
	rootCmd.AddCommand(slugsCmd)
}
