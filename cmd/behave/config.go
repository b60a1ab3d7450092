package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/behave/internal/config"
	"github.com/aretw0/behave/internal/presentation/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the workspace configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		return encode(cmd.OutOrStdout(), format, cfg)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration key and save the file",
	Long: fmt.Sprintf(`Sets one key in .behave/config.yaml. Environment overrides are not
written back. Keys: %v`, config.Keys),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		cfg, err := config.Load(dir)
		if err != nil {
			return err
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(dir, cfg); err != nil {
			return err
		}
		tui.NewStatus(cmd.ErrOrStderr()).Success("%s = %s", args[0], args[1])
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		fmt.Fprintln(cmd.OutOrStdout(), config.Path(dir))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd, configPathCmd)
	configShowCmd.Flags().String("format", "yaml", "Output format: yaml or json")
}
