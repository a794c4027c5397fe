package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:               "reslib",
	Short:             "Convert game resources between their binary and JSON forms",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupApp,
}

func main() {
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(structCmd)
	rootCmd.AddCommand(propertyCmd)
	rootCmd.AddCommand(packCmd)

	addGlobalFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// addGlobalFlags registers the flags shared by all subcommands.
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "path to reslib.toml (default: search upwards from the working directory)")
	cmd.PersistentFlags().String("game", "", "target game (HM2016|HM2|HM3)")
	cmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	cmd.PersistentFlags().Int("workers", 0, "number of parallel conversions")
}
