package cli

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/glorpus-work/tldrc/internal/logger"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the page cache",
		Long:  "Remove all cached pages to free up disk space",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, m, err := loadConfigAndManager()
			if err != nil {
				return err
			}

			freed, err := m.Clean()
			if err != nil {
				return err
			}
			if freed > 0 {
				logger.Infof("freed %s", humanize.IBytes(uint64(freed)))
			}
			return nil
		},
	}

	return cmd
}
