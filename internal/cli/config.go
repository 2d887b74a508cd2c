package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/problem-catalog/internal/model"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the configuration file",
	}

	cmd.AddCommand(
		newConfigInitCmd(opts),
		newConfigPathCmd(opts),
	)
	return cmd
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Long: `Write the configuration in effect to the config file, so defaults and
flag overrides such as --db become persistent. An existing file is kept
unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.cfgPath); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", opts.cfgPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking config file: %w", err)
			}

			if err := model.SaveConfig(opts.cfgPath, opts.cfg); err != nil {
				return err
			}
			opts.printer.Success("config written to %s", opts.cfgPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newConfigPathCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.printer.Print("%s", opts.cfgPath)
			return nil
		},
	}
}
