package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/menta2k/collage-kit/internal/config"
	"github.com/menta2k/collage-kit/internal/utils"
)

func newConfigCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Manage the collage-kit configuration file",
	}
	c.AddCommand(newConfigInitCmd(a))
	return c
}

func newConfigInitCmd(a *app) *cobra.Command {
	var (
		path  string
		force bool
	)

	c := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Long: `Write the default configuration as JSON, to --path or to the default
config location. An existing file is kept unless --force is given.

Examples:
  collage-kit config init
  collage-kit config init --path ./collage.json --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				path = config.GetConfigPath()
			}
			if utils.FileExists(path) && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
			if err := config.Default().SaveToFile(path); err != nil {
				return err
			}
			a.logger.Info().Str("path", path).Msg("config written")
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	c.Flags().StringVar(&path, "path", "", "destination file (default "+config.GetConfigPath()+")")
	c.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return c
}
