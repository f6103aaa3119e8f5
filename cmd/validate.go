package cmd

import (
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate every portfolio document",
	Args:  cobra.NoArgs,
	RunE:  runWithEnv(runValidate),
}

func runValidate(e *env, _ *cobra.Command, _ []string) error {
	res, err := e.load()
	if err != nil {
		return err
	}
	e.printer.LoadSummary(res)
	if len(res.Warnings) > 0 {
		e.printer.Warnings(res.Warnings)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
