package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bloom",
	Short: "Turns track analyses into gardens",
	Long: `bloom nests the bars and pitch segments of a track's audio analysis
under its sections, one flower per section and one note per segment.`,
	SilenceUsage: true,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
