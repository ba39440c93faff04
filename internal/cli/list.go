package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached pages",
		Long:  "List the English pages cached for a platform, or for all platforms with --all",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, m, err := loadConfigAndManager()
			if err != nil {
				return err
			}

			var pages []string
			if all {
				pages, err = m.ListAll()
			} else {
				p := platform
				if p == "" {
					p = currentPlatform()
				}
				pages, err = m.ListFor(p)
			}
			if err != nil {
				return err
			}

			cmd.Println(strings.Join(pages, "\n"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "list pages for every platform")
	cmd.Flags().StringVarP(&platform, "platform", "p", "", "platform to list (default: the current one)")

	return cmd
}
