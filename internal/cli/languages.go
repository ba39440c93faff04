package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewLanguagesCmd creates the languages command.
func NewLanguagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List cached languages",
		Long:  "List the language codes currently present in the cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, m, err := loadConfigAndManager()
			if err != nil {
				return err
			}

			langs, err := m.Languages()
			if err != nil {
				return err
			}
			cmd.Println(strings.Join(langs, "\n"))
			return nil
		},
	}

	return cmd
}

// NewPlatformsCmd creates the platforms command.
func NewPlatformsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "platforms",
		Short: "List cached platforms",
		Long:  "List the platform directories discovered in the cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, m, err := loadConfigAndManager()
			if err != nil {
				return err
			}

			platforms, err := m.Platforms()
			if err != nil {
				return err
			}
			cmd.Println(strings.Join(platforms, "\n"))
			return nil
		},
	}

	return cmd
}
