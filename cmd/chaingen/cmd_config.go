package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the configuration",
	}
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the configuration in effect, as YAML",
		Long: `Print the configuration in effect: the file given with --config (or the
defaults, if it doesn't exist), with the environment and --seed applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(a.cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the configuration in effect to the --config file",
		Example: `  chaingen config init
  chaingen --seed 7 -c runs/long.yaml config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(a.cfgPath); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite it", a.cfgPath)
			}
			if err := a.cfg.Save(a.cfgPath); err != nil {
				return err
			}
			a.log.Info("configuration written", zap.String("path", a.cfgPath))
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "configuration written to %s\n", a.cfgPath)
			return err
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.AddCommand(showCmd, initCmd)
	return cmd
}
