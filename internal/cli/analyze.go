package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avelis/tokmeter/internal/analyzer"
	"github.com/avelis/tokmeter/internal/display"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze one file's size, token counts and context-window fit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := analyzer.Analyze(args[0])
		if err != nil {
			return runtimeErr(err)
		}
		fmt.Fprintln(os.Stdout, display.RenderAnalysis(stats))
		return nil
	},
}
