package cmd

import (
	"github.com/spf13/cobra"
)

var studyCmd = &cobra.Command{
	Use:   "study [deck]",
	Short: "Start a study session",
	Long:  "Start a study session on the named deck (by title or file name). Without an argument, opens the deck picker.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return runApp(cmd, name)
	},
}

func init() {
	studyCmd.Flags().String("mode", "mixed", "Question mode: choice, typed or mixed")
	studyCmd.Flags().Bool("bidirectional", true, "Quiz both directions (disable with --bidirectional=false)")
}
