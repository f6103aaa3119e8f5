package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:          "starfolio",
	Short:        "Portfolio content pipeline",
	Long:         "Starfolio validates the portfolio data documents, orders and filters them, and computes the lane layouts the site renders.",
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default .starfolio.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.String("data-dir", "", "directory holding the company documents and catalog")
	flags.String("content-dir", "", "directory holding the deep-dive documents")
	flags.String("order-file", "", "path of the order/visibility config")
	flags.Bool("strict-catalog", false, "fail when a project references a tool or theme missing from the catalog")
	flags.String("events-file", "", "append load and build events to this JSONL file")

	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("data_dir", flags.Lookup("data-dir"))
	_ = viper.BindPFlag("content_dir", flags.Lookup("content-dir"))
	_ = viper.BindPFlag("order_file", flags.Lookup("order-file"))
	_ = viper.BindPFlag("strict_catalog", flags.Lookup("strict-catalog"))
	_ = viper.BindPFlag("events_file", flags.Lookup("events-file"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".starfolio")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("STARFOLIO")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
