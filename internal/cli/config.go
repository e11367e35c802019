package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avelis/tokmeter/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or initialize tokmeter configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(nil)
		if err != nil {
			return runtimeErr(err)
		}
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return runtimeErr(err)
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Save(config.Default()); err != nil {
			return runtimeErr(err)
		}
		path, err := config.ConfigPath()
		if err != nil {
			return runtimeErr(err)
		}
		fmt.Fprintf(os.Stdout, "Config written to %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
