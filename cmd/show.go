package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/starfolio/internal/layout"
	"github.com/papapumpkin/starfolio/internal/loader"
)

var showCmd = &cobra.Command{
	Use:   "show [company]",
	Short: "Print the computed lanes for one or all companies",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWithEnv(runShow),
}

func runShow(e *env, _ *cobra.Command, args []string) error {
	res, err := e.load()
	if err != nil {
		return err
	}

	company := ""
	if len(args) == 1 {
		company = args[0]
	}
	layouts, err := selectLayouts(res, company)
	if err != nil {
		return err
	}
	for _, l := range layouts {
		e.printer.Layout(l)
	}
	return nil
}

// selectLayouts computes the layouts of the visible corpus, or of one
// company when company is non-empty.
func selectLayouts(res *loader.Result, company string) ([]layout.StarLayout, error) {
	if company == "" {
		return layout.ComputeLayouts(res.Portfolios), nil
	}
	for _, doc := range res.Portfolios {
		if doc.Company.ID == company {
			return []layout.StarLayout{layout.ComputeLayout(doc)}, nil
		}
	}
	return nil, fmt.Errorf("company %q is not in the visible portfolio", company)
}

func init() {
	rootCmd.AddCommand(showCmd)
}
