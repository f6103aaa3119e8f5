package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check catalog hygiene, catalog membership and order config coverage",
	Args:  cobra.NoArgs,
	RunE:  runWithEnv(runLint),
}

func runLint(e *env, cmd *cobra.Command, _ []string) error {
	res, err := e.load()
	if err != nil {
		return err
	}

	warnings := append(res.Warnings, res.Lint()...)
	e.printer.Warnings(warnings)

	strict, _ := cmd.Flags().GetBool("strict")
	if strict && len(warnings) > 0 {
		return fmt.Errorf("lint failed with %d warning(s)", len(warnings))
	}
	return nil
}

func init() {
	lintCmd.Flags().Bool("strict", false, "treat warnings as errors")
	rootCmd.AddCommand(lintCmd)
}
