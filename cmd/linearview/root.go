package main

import (
	"github.com/spf13/cobra"

	"github.com/monmaru/linearview/library/log"
)

var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "linearview",
	Short: "Flatten slide decks into a single scrollable page",
	Long: `linearview turns a slide deck made of stacked <section> elements into one
linear, dark-themed HTML page with a "Slide N" link back to every slide.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if verbose {
			log.SetLevel(log.Debug)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("linearview version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every slide as it is converted")
	rootCmd.AddCommand(versionCmd)
}
