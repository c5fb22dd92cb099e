// Package main is the entry point for the docshift CLI, a PDF-to-Word
// converter that also pulls chart-looking images out of the source document.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the docshift CLI.
var rootCmd = &cobra.Command{
	Use:   "docshift",
	Short: "Convert PDF documents to Word with chart extraction",
	Long: `docshift converts PDF documents into Word (.docx) files and exports
embedded images that look like charts as PNG files next to the input.

Each run produces a Word file, zero or more chart PNGs, and a process log,
all colocated with the input PDF and named from its base name. Past runs
are recorded in a local history catalog.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docshift.yaml or ~/.config/docshift/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docshift")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docshift"))
		}
	}

	viper.SetEnvPrefix("DOCSHIFT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
