package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const version = "0.3.0"

// Exit codes.
const (
	ExitSuccess      = 0
	ExitRuntimeError = 1
	ExitUsageError   = 2
)

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:   "tokmeter",
	Short: "Collect project source into a token-annotated report",
	Long:  "Tokmeter collects source files from a project tree into a consolidated report with size and token statistics, caching results so unchanged projects are not rescanned.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Run executes the root command and returns an exit code.
func Run() int {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error.
		if exitCode != ExitSuccess {
			return exitCode
		}
		return ExitUsageError
	}
	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

func runtimeErr(err error) error {
	exitCode = ExitRuntimeError
	return err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print tokmeter version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "tokmeter version %s\n", version)
	},
}
