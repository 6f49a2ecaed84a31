// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var configPath string // directory holding main.toml

var rootCmd = &cobra.Command{
	Use:   "dgsettings",
	Short: "dgsettings serves the Delta Green settings menus",
	Long: `dgsettings is a settings host for the Delta Green game system.
It renders one form per settings menu from a declared schema and
stores the submitted values in memory, a SQL database or a key-value table.`,
	Args: cobra.OnlyValidArgs,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "Directory of main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
