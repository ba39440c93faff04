package cli

import (
	"github.com/spf13/cobra"

	"github.com/glorpus-work/tldrc/internal/logger"
	"github.com/glorpus-work/tldrc/pkg/config"
)

// NewConfigCmd creates the config command with subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(
		newConfigPathCmd(),
		newConfigInitCmd(),
		newConfigShowCmd(),
	)

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println(effectiveConfigPath())
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long:  "Write a configuration file with the default settings. An existing file is never overwritten.",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			path := effectiveConfigPath()
			if err := config.GenerateDefault(path); err != nil {
				return err
			}
			logger.Infof("created config file at '%s'", path)
			return nil
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := cfg.ToYAML()
			if err != nil {
				return err
			}
			cmd.Print(string(data))
			return nil
		},
	}
}
